// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Column accumulates the definition of a table column. All setters return
// the receiver so calls can be chained.
type Column struct {
	typ string
	// length is the size or precision as passed to NewColumn.
	length any
	// lengthSQL is the normalised text of length written between the
	// parentheses. It is empty if no length is written.
	lengthSQL string
	notNull   bool
	unique    bool
	check     string
	hasCheck  bool
	def       Literal

	renderer Renderer
}

// NewColumn returns a column of the given type, such as INTEGER or VARCHAR.
// The length is the size or precision of the type. It may be nil, an integer,
// a string or a slice whose elements are joined with commas, e.g.
// []string{"10", "2"} for DECIMAL(10,2).
func NewColumn(typ string, length any) *Column {
	return &Column{
		typ:       typ,
		length:    length,
		lengthSQL: lengthSQL(length),
		renderer:  BaseRenderer{},
	}
}

func lengthSQL(length any) string {
	switch l := length.(type) {
	case nil:
		return ""
	case string:
		return l
	case int:
		return strconv.Itoa(l)
	case []string:
		return strings.Join(l, ",")
	case []int:
		parts := make([]string, len(l))
		for i, n := range l {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, ",")
	case []any:
		parts := make([]string, len(l))
		for i, p := range l {
			parts[i] = fmt.Sprint(p)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(l)
	}
}

// NotNull adds a NOT NULL constraint.
func (c *Column) NotNull() *Column {
	c.notNull = true
	return c
}

// Unique adds a UNIQUE constraint.
func (c *Column) Unique() *Column {
	c.unique = true
	return c
}

// Check sets the boolean SQL expression of a CHECK constraint. The
// expression is not escaped.
func (c *Column) Check(sql string) *Column {
	c.check = sql
	c.hasCheck = true
	return c
}

// Default sets the default value. The value is converted with LiteralOf. A
// nil value removes the default.
func (c *Column) Default(v any) *Column {
	c.def = LiteralOf(v)
	return c
}

// DefaultExpression sets an SQL expression, such as CURRENT_TIMESTAMP, as the
// default value.
func (c *Column) DefaultExpression(sql string) *Column {
	c.def = RawLiteral(sql)
	return c
}

// WithRenderer sets the Renderer used for the clauses of the column.
func (c *Column) WithRenderer(r Renderer) *Column {
	c.renderer = r
	return c
}

// Type returns the column type.
func (c *Column) Type() string {
	return c.typ
}

// Length returns the length as it was passed to NewColumn.
func (c *Column) Length() any {
	return c.length
}

// LengthSQL returns the length as written between the parentheses of the
// type, or the empty string if there is none.
func (c *Column) LengthSQL() string {
	return c.lengthSQL
}

// IsNotNull reports whether the column has a NOT NULL constraint.
func (c *Column) IsNotNull() bool {
	return c.notNull
}

// IsUnique reports whether the column has a UNIQUE constraint.
func (c *Column) IsUnique() bool {
	return c.unique
}

// CheckSQL returns the CHECK expression and whether one is set.
func (c *Column) CheckSQL() (string, bool) {
	return c.check, c.hasCheck
}

// DefaultLiteral returns the default value, or nil.
func (c *Column) DefaultLiteral() Literal {
	return c.def
}

// Render returns the column definition. The alter flag is passed to each
// clause of the Renderer and is true when the definition is for an ALTER
// TABLE statement.
func (c *Column) Render(alter bool) string {
	r := c.renderer
	if r == nil {
		r = BaseRenderer{}
	}
	return c.typ +
		r.LengthClause(c, alter) +
		r.NotNullClause(c, alter) +
		r.UniqueClause(c, alter) +
		r.DefaultClause(c, alter) +
		r.CheckClause(c, alter)
}

// String returns the column definition for a CREATE TABLE statement.
func (c *Column) String() string {
	return c.Render(false)
}
