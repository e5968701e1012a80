// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import (
	"encoding/json"
	"fmt"

	"github.com/canonical/sqlbuild/internal/typeinfo"
)

// buildJSON renders j as a placeholder bound to the JSON encoding of its
// value. Sub-queries are written in parentheses and arrays are converted
// with array_to_json.
func (b *Builder) buildJSON(j *JSONExpr, params *Params) (string, error) {
	var sql string
	switch v := j.value.(type) {
	case Query:
		qsql, err := b.compileQuery(v, params)
		if err != nil {
			return "", err
		}
		return "(" + qsql + ")" + jsonTypecast(j), nil
	case Array:
		if typeinfo.IsNil(v) {
			return "", fmt.Errorf("cannot build nil array")
		}
		asql, err := b.buildArray(v, params)
		if err != nil {
			return "", err
		}
		sql = "array_to_json(" + asql + ")"
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("cannot encode JSON value: %w", err)
		}
		sql = params.Add(string(encoded))
	}
	return sql + jsonTypecast(j), nil
}

func jsonTypecast(j *JSONExpr) string {
	if j.typ == "" {
		return ""
	}
	return "::" + j.typ
}
