// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

/*
Package schema renders column definitions for CREATE TABLE and ALTER TABLE
statements.

A [Column] is built by chaining calls and rendered with [Column.Render]:

	schema.NewColumn("VARCHAR", 255).NotNull().Unique().Default("x").Render(false)
	// VARCHAR(255) NOT NULL UNIQUE DEFAULT 'x'

The clauses are always written in the order type, length, NOT NULL, UNIQUE,
DEFAULT, CHECK. Each clause is produced by a [Renderer], dialects that need
different output, for example when altering a table, replace the Renderer.

# Literals

Default values and check expressions are written into the SQL as they are.
String defaults are quoted but embedded quotes are not escaped. Only use
constant values chosen by the programmer, never user input.
*/
package schema
