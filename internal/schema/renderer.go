// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package schema

// Renderer writes the clauses following the type in a column definition.
// Every clause returns the empty string when it does not apply and starts
// with a space otherwise, except the length clause which follows the type
// directly.
//
// Dialects embed BaseRenderer and override the clauses they write
// differently.
type Renderer interface {
	LengthClause(c *Column, alter bool) string
	NotNullClause(c *Column, alter bool) string
	UniqueClause(c *Column, alter bool) string
	DefaultClause(c *Column, alter bool) string
	CheckClause(c *Column, alter bool) string
}

// BaseRenderer writes the same clauses for CREATE and ALTER statements.
type BaseRenderer struct{}

var _ Renderer = BaseRenderer{}

func (BaseRenderer) LengthClause(c *Column, alter bool) string {
	if c.lengthSQL == "" {
		return ""
	}
	return "(" + c.lengthSQL + ")"
}

func (BaseRenderer) NotNullClause(c *Column, alter bool) string {
	if c.notNull {
		return " NOT NULL"
	}
	return ""
}

func (BaseRenderer) UniqueClause(c *Column, alter bool) string {
	if c.unique {
		return " UNIQUE"
	}
	return ""
}

func (BaseRenderer) DefaultClause(c *Column, alter bool) string {
	if c.def == nil {
		return ""
	}
	return " DEFAULT " + c.def.SQL()
}

func (BaseRenderer) CheckClause(c *Column, alter bool) string {
	if !c.hasCheck {
		return ""
	}
	return " CHECK (" + c.check + ")"
}

// SQLiteRenderer renders columns for SQLite. SQLite cannot add a column with
// a UNIQUE constraint to an existing table, the constraint is left out when
// altering and must be added with a unique index instead.
type SQLiteRenderer struct {
	BaseRenderer
}

func (r SQLiteRenderer) UniqueClause(c *Column, alter bool) string {
	if alter {
		return ""
	}
	return r.BaseRenderer.UniqueClause(c, alter)
}
