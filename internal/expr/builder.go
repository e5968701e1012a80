// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import (
	"fmt"

	"github.com/canonical/sqlbuild/internal/typeinfo"
)

// QueryCompiler renders sub-queries. CompileQuery returns the SQL of q and
// adds the parameters it references to params.
type QueryCompiler interface {
	CompileQuery(q Query, params *Params) (string, error)
}

// QueryCompilerFunc adapts a function to the QueryCompiler interface.
type QueryCompilerFunc func(q Query, params *Params) (string, error)

func (f QueryCompilerFunc) CompileQuery(q Query, params *Params) (string, error) {
	return f(q, params)
}

// statementCompiler is the default QueryCompiler. It writes the statement of
// the query and merges the query parameters. Query placeholders whose names
// are already bound are renamed.
type statementCompiler struct{}

func (statementCompiler) CompileQuery(q Query, params *Params) (string, error) {
	sql, qparams := q.Statement()
	return params.Merge(sql, qparams), nil
}

// Builder renders expressions as SQL. A Builder holds no state between
// builds and can be shared, the Params passed to Build cannot.
type Builder struct {
	queries QueryCompiler
}

// Option configures a Builder.
type Option func(*Builder)

// WithQueryCompiler sets the compiler used for sub-queries.
func WithQueryCompiler(qc QueryCompiler) Option {
	return func(b *Builder) {
		b.queries = qc
	}
}

// NewBuilder returns a Builder for dialects with native array types, such
// as PostgreSQL.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{queries: statementCompiler{}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the SQL for e. Values bound by e, and by any expression
// nested in it, are added to params.
func (b *Builder) Build(e Expression, params *Params) (string, error) {
	if typeinfo.IsNil(e) {
		return "", fmt.Errorf("cannot build nil expression")
	}
	switch e := e.(type) {
	case Array:
		return b.buildArray(e, params)
	case *JSONExpr:
		return b.buildJSON(e, params)
	case *RawExpr:
		return params.Merge(e.sql, e.params), nil
	default:
		return "", fmt.Errorf("internal error: unknown expression type %T", e)
	}
}

// BuildQuery returns the SQL for the sub-query q. The parameters of q are
// added to params.
func (b *Builder) BuildQuery(q Query, params *Params) (string, error) {
	return b.compileQuery(q, params)
}

// compileQuery renders a sub-query with the configured QueryCompiler.
func (b *Builder) compileQuery(q Query, params *Params) (string, error) {
	if typeinfo.IsNil(q) {
		return "", fmt.Errorf("cannot compile nil sub-query")
	}
	sql, err := b.queries.CompileQuery(q, params)
	if err != nil {
		return "", fmt.Errorf("cannot compile sub-query: %w", err)
	}
	return sql, nil
}
