// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import "fmt"

// Expression is a value that a Builder can render as SQL.
type Expression interface {
	// String returns a description of the expression for debugging and
	// testing purposes.
	String() string

	// expression is a marker method.
	expression()
}

// Query is a sub-query. Its rows supply the content of an array or a JSON
// value. Queries are rendered by a QueryCompiler.
type Query interface {
	// Statement returns the SQL of the query and the parameters it
	// references.
	Statement() (string, map[string]any)
}

// Array describes a typed SQL array. ArrayExpr is the standard
// implementation; other implementations must embed it.
type Array interface {
	Expression

	// ElementType returns the declared type of the array elements, or the
	// empty string when the database should infer it.
	ElementType() string

	// Value returns the content of the array. This is either a sequence of
	// elements, a Query, or nil.
	Value() any

	// Dimension returns the nesting depth of the array.
	Dimension() int

	// Unnest returns an array of the same kind and element type with the
	// given value and a dimension one lower than the receiver.
	Unnest(value any) Array
}

// ArrayExpr is a typed array value.
type ArrayExpr struct {
	elemType  string
	value     any
	dimension int
}

var _ Array = (*ArrayExpr)(nil)

// NewArray returns an array expression. A dimension lower than one is
// treated as one.
func NewArray(value any, elemType string, dimension int) *ArrayExpr {
	if dimension < 1 {
		dimension = 1
	}
	return &ArrayExpr{elemType: elemType, value: value, dimension: dimension}
}

func (a *ArrayExpr) ElementType() string {
	return a.elemType
}

func (a *ArrayExpr) Value() any {
	return a.value
}

func (a *ArrayExpr) Dimension() int {
	return a.dimension
}

func (a *ArrayExpr) Unnest(value any) Array {
	return NewArray(value, a.elemType, a.dimension-1)
}

func (a *ArrayExpr) String() string {
	return fmt.Sprintf("Array[%v %s %d]", a.value, a.elemType, a.dimension)
}

func (a *ArrayExpr) expression() {}

// JSON element types. Array elements of these types are wrapped in a
// JSONExpr before they are bound.
const (
	TypeJSON  = "json"
	TypeJSONB = "jsonb"
)

// JSONExpr is a value that is sent to the database JSON encoded.
type JSONExpr struct {
	value any
	typ   string
}

// NewJSON returns a JSON expression. If typ is not empty the bound value is
// cast to it.
func NewJSON(value any, typ string) *JSONExpr {
	return &JSONExpr{value: value, typ: typ}
}

func (j *JSONExpr) Value() any {
	return j.value
}

func (j *JSONExpr) Type() string {
	return j.typ
}

func (j *JSONExpr) String() string {
	return fmt.Sprintf("JSON[%v %s]", j.value, j.typ)
}

func (j *JSONExpr) expression() {}

// RawExpr is a piece of SQL that is written out verbatim. Any placeholders
// it contains are bound from its own parameters.
type RawExpr struct {
	sql    string
	params map[string]any
}

// NewRaw returns a raw SQL expression.
func NewRaw(sql string, params map[string]any) *RawExpr {
	return &RawExpr{sql: sql, params: params}
}

func (r *RawExpr) SQL() string {
	return r.sql
}

func (r *RawExpr) Params() map[string]any {
	return r.params
}

func (r *RawExpr) String() string {
	return "Raw[" + r.sql + "]"
}

func (r *RawExpr) expression() {}

// SelectQuery is a Query written as plain SQL.
type SelectQuery struct {
	sql    string
	params map[string]any
}

var _ Query = (*SelectQuery)(nil)

// NewSelect returns a sub-query with the given SQL and parameters.
func NewSelect(sql string, params map[string]any) *SelectQuery {
	return &SelectQuery{sql: sql, params: params}
}

func (q *SelectQuery) Statement() (string, map[string]any) {
	return q.sql, q.params
}

func (q *SelectQuery) String() string {
	return "Select[" + q.sql + "]"
}
