// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlbuild

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/canonical/sqlbuild/internal/expr"
	"github.com/canonical/sqlbuild/internal/schema"
)

// M is a convenience type for the parameters of raw SQL and sub-queries.
// Parameter names include their leading colon.
//
// Example:
//
//	sqlbuild.Raw("age > :age", sqlbuild.M{":age": 18})
type M map[string]any

type (
	// Expression is a value that can be built into SQL.
	Expression = expr.Expression
	// Array is a typed array expression.
	Array = expr.Array
	// ArrayExpr is the standard Array. Other implementations of Array must
	// embed it.
	ArrayExpr = expr.ArrayExpr
	// Query is a sub-query.
	Query = expr.Query
	// SelectQuery is the Query returned by Select.
	SelectQuery = expr.SelectQuery
	// QueryCompiler renders sub-queries.
	QueryCompiler = expr.QueryCompiler
	// QueryCompilerFunc adapts a function to the QueryCompiler interface.
	QueryCompilerFunc = expr.QueryCompilerFunc
	// Params is an ordered map from placeholder names to values.
	Params = expr.Params
)

// NewArray returns an array expression with elements of type elemType.
// The value is the content of the array: a sequence of elements, a Query or
// nil. The dimension is the nesting depth of the array, one for a flat array.
func NewArray(value any, elemType string, dimension int) *ArrayExpr {
	return expr.NewArray(value, elemType, dimension)
}

// JSON returns an expression that binds the JSON encoding of value. If typ
// is not empty the placeholder is cast to it.
func JSON(value any, typ string) Expression {
	return expr.NewJSON(value, typ)
}

// Raw returns an expression that writes sql verbatim and binds params.
func Raw(sql string, params M) Expression {
	return expr.NewRaw(sql, params)
}

// Select returns a sub-query written in plain SQL.
func Select(sql string, params M) Query {
	return expr.NewSelect(sql, params)
}

// Option configures a Builder.
type Option = expr.Option

// WithQueryCompiler sets the compiler used to render sub-queries. By
// default sub-queries are written as they are and their parameters merged.
func WithQueryCompiler(qc QueryCompiler) Option {
	return expr.WithQueryCompiler(qc)
}

// Builder builds expressions into fragments. It is safe to use from multiple
// goroutines.
type Builder struct {
	b *expr.Builder
}

// NewBuilder returns a Builder for PostgreSQL style arrays.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{b: expr.NewBuilder(opts...)}
}

var defaultBuilder = NewBuilder()

// Build builds e with the default Builder.
func Build(e Expression) (*Fragment, error) {
	return defaultBuilder.Build(e)
}

// Compose joins parts into a single fragment with the default Builder.
// See [Builder.Compose].
func Compose(parts ...any) (*Fragment, error) {
	return defaultBuilder.Compose(parts...)
}

// Build returns the SQL for e and the parameters it binds.
func (b *Builder) Build(e Expression) (*Fragment, error) {
	params := expr.NewParams()
	sql, err := b.b.Build(e, params)
	if err != nil {
		return nil, err
	}
	return &Fragment{SQL: sql, params: params}, nil
}

// Compose joins parts into a single fragment. Strings are written as they
// are, expressions are built, columns are rendered for CREATE TABLE and any
// other value is bound to a placeholder. Sub-queries are written in
// parentheses. Fragments are spliced in: their SQL is written and their
// parameters merged, with placeholders renamed where a name is already
// bound. All the parts share one set of parameters.
//
// Example:
//
//	sqlbuild.Compose("SELECT name FROM person WHERE id = ANY(", sqlbuild.NewArray(ids, "integer", 1), ")")
func (b *Builder) Compose(parts ...any) (*Fragment, error) {
	params := expr.NewParams()
	var sb strings.Builder
	for i, part := range parts {
		switch part := part.(type) {
		case string:
			sb.WriteString(part)
		case Expression:
			sql, err := b.b.Build(part, params)
			if err != nil {
				return nil, fmt.Errorf("cannot compose part %d: %w", i, err)
			}
			sb.WriteString(sql)
		case Query:
			sql, err := b.b.BuildQuery(part, params)
			if err != nil {
				return nil, fmt.Errorf("cannot compose part %d: %w", i, err)
			}
			sb.WriteString("(" + sql + ")")
		case *Fragment:
			if part == nil {
				return nil, fmt.Errorf("cannot compose part %d: nil fragment", i)
			}
			var fparams map[string]any
			if part.params != nil {
				fparams = part.params.Map()
			}
			sb.WriteString(params.Merge(part.SQL, fparams))
		case *ColumnBuilder:
			if part == nil {
				return nil, fmt.Errorf("cannot compose part %d: nil column", i)
			}
			sb.WriteString(part.Render(false))
		default:
			sb.WriteString(params.Add(part))
		}
	}
	return &Fragment{SQL: sb.String(), params: params}, nil
}

// Fragment is built SQL together with the parameters it references.
type Fragment struct {
	// SQL is the generated SQL. Its placeholders have the form :name.
	SQL    string
	params *expr.Params
}

// Params returns the parameters of the fragment in the order they were
// bound.
func (f *Fragment) Params() *Params {
	return f.params
}

// Args returns the parameters as sql.Named values, ready to be passed to
// database/sql. Drivers such as SQLite accept the :name placeholders
// directly.
func (f *Fragment) Args() []any {
	args := make([]any, 0, f.params.Len())
	for name, v := range f.params.All() {
		args = append(args, sql.Named(argName(name), v))
	}
	return args
}

// argName strips the placeholder marker from a parameter name.
func argName(name string) string {
	return strings.TrimLeft(name, ":@$")
}

// Column returns a builder for a column of the given type. See
// [schema.NewColumn] for the accepted lengths.
func Column(typ string, length any) *ColumnBuilder {
	return schema.NewColumn(typ, length)
}

type (
	// ColumnBuilder accumulates a column definition.
	ColumnBuilder = schema.Column
	// ColumnRenderer renders the clauses of a column definition.
	ColumnRenderer = schema.Renderer
	// BaseColumnRenderer renders clauses the same way for CREATE and ALTER.
	BaseColumnRenderer = schema.BaseRenderer
	// SQLiteColumnRenderer renders clauses accepted by SQLite.
	SQLiteColumnRenderer = schema.SQLiteRenderer
)

// NewParams returns an empty parameter map.
func NewParams() *Params {
	return expr.NewParams()
}
