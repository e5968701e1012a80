// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlbuild

import (
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/canonical/sqlbuild/internal/parse"
)

// Pgx returns the fragment in the form expected by pgx. Each :name
// placeholder bound in the fragment is rewritten to @name and the parameters
// are returned as pgx.NamedArgs, which pgx replaces with positional
// parameters when the query is run:
//
//	sql, args := f.Pgx()
//	rows, err := conn.Query(ctx, sql, args)
//
// Casts (::type), quoted strings and quoted identifiers are left untouched.
func (f *Fragment) Pgx() (string, pgx.NamedArgs) {
	args := pgx.NamedArgs{}
	for name, v := range f.params.All() {
		args[argName(name)] = v
	}
	return rewritePlaceholders(f.SQL, f.params, "@"), args
}

// rewritePlaceholders replaces the ':' of every placeholder bound in params
// with marker.
func rewritePlaceholders(sql string, params *Params, marker string) string {
	var sb strings.Builder
	sb.Grow(len(sql))
	for _, part := range parse.NewParser().Parse(sql) {
		if ph, ok := part.(*parse.PlaceholderPart); ok {
			if _, bound := params.Get(ph.Name); bound {
				sb.WriteString(marker)
				sb.WriteString(ph.Name[1:])
				continue
			}
		}
		sb.WriteString(part.SQL())
	}
	return sb.String()
}
