// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import (
	"fmt"
	"strings"

	"github.com/canonical/sqlbuild/internal/typeinfo"
)

// emptyArray is the PostgreSQL literal for an array without elements.
const emptyArray = "'{}'"

// buildArray renders a as an ARRAY[...] constructor followed by a type cast.
// Arrays with dimension greater than one are built from their elements, each
// unnested into an array one dimension lower. The elements of a one
// dimensional array are bound as parameters unless they are sub-queries or
// expressions.
//
// Nil values, including nil sub-queries, and values that are neither
// sequences nor queries produce the empty array.
func (b *Builder) buildArray(a Array, params *Params) (string, error) {
	value := a.Value()
	if typeinfo.IsNil(value) {
		return emptyArray, nil
	}

	if q, ok := value.(Query); ok {
		sql, err := b.compileQuery(q, params)
		if err != nil {
			return "", err
		}
		return subqueryArray(sql, a), nil
	}

	var placeholders []string
	if elems, ok := typeinfo.Elements(value); ok {
		if a.Dimension() > 1 {
			for i, elem := range elems {
				sql, err := b.buildArray(a.Unnest(elem), params)
				if err != nil {
					return "", fmt.Errorf("cannot build array element %d: %w", i, err)
				}
				placeholders = append(placeholders, sql)
			}
		} else {
			for i, elem := range elems {
				elem = nullElement(elem)
				if q, ok := elem.(Query); ok {
					sql, err := b.compileQuery(q, params)
					if err != nil {
						return "", fmt.Errorf("cannot build array element %d: %w", i, err)
					}
					placeholders = append(placeholders, subqueryArray(sql, a))
					continue
				}

				elem = typecastElement(a, elem)
				if e, ok := elem.(Expression); ok {
					sql, err := b.Build(e, params)
					if err != nil {
						return "", fmt.Errorf("cannot build array element %d: %w", i, err)
					}
					placeholders = append(placeholders, sql)
					continue
				}

				placeholders = append(placeholders, params.Add(elem))
			}
		}
	}

	if len(placeholders) == 0 {
		return emptyArray, nil
	}

	var sb sqlBuilder
	sb.write("ARRAY[")
	sb.writeCommaSeparatedList(placeholders)
	sb.write("]")
	sb.write(typehint(a))
	return sb.getSQL(), nil
}

// nullElement returns nil for nil sub-queries and nil expressions, which are
// bound as NULL. Other elements are returned as they are.
func nullElement(elem any) any {
	switch elem.(type) {
	case Query, Expression:
		if typeinfo.IsNil(elem) {
			return nil
		}
	}
	return elem
}

// typecastElement wraps elements of JSON typed arrays in a JSONExpr.
// Expressions and elements of other types are returned as they are.
func typecastElement(a Array, elem any) any {
	if _, ok := elem.(Expression); ok {
		return elem
	}
	switch a.ElementType() {
	case TypeJSON, TypeJSONB:
		return NewJSON(elem, "")
	}
	return elem
}

// subqueryArray returns the SQL for an array filled by a sub-query.
func subqueryArray(sql string, a Array) string {
	return "ARRAY(" + sql + ")" + typehint(a)
}

// typehint returns the cast suffix for a, e.g. "::integer[][]" for a two
// dimensional integer array. Arrays without an element type are not cast.
func typehint(a Array) string {
	if a.ElementType() == "" {
		return ""
	}
	return "::" + a.ElementType() + strings.Repeat("[]", a.Dimension())
}
