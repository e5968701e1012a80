// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import (
	"iter"
	"sort"
	"strconv"
	"strings"

	"github.com/canonical/sqlbuild/internal/parse"
)

// ParamPrefix starts the name of every placeholder generated by Params.Add.
const ParamPrefix = ":qp"

// Params is an ordered mapping from placeholder names to the values bound to
// them. Iteration follows insertion order.
type Params struct {
	names  []string
	values map[string]any
}

// NewParams returns an empty Params.
func NewParams() *Params {
	return &Params{values: map[string]any{}}
}

// Len returns the number of bound parameters.
func (p *Params) Len() int {
	return len(p.names)
}

// Add binds v to a new placeholder and returns the placeholder name. The
// name is ParamPrefix followed by the number of parameters bound so far, or
// by the next free number if that name is taken.
func (p *Params) Add(v any) string {
	for n := p.Len(); ; n++ {
		name := ParamPrefix + strconv.Itoa(n)
		if _, ok := p.values[name]; !ok {
			p.Set(name, v)
			return name
		}
	}
}

// Set binds v to name. If name is already bound its value is replaced and it
// keeps its position.
func (p *Params) Set(name string, v any) {
	if p.values == nil {
		p.values = map[string]any{}
	}
	if _, ok := p.values[name]; !ok {
		p.names = append(p.names, name)
	}
	p.values[name] = v
}

// Get returns the value bound to name.
func (p *Params) Get(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Names returns the placeholder names in insertion order.
func (p *Params) Names() []string {
	return append([]string(nil), p.names...)
}

// All iterates over the placeholder names and values in insertion order.
func (p *Params) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, name := range p.names {
			if !yield(name, p.values[name]) {
				return
			}
		}
	}
}

// Merge binds the parameters m referenced by sql and returns sql. Names that
// are not bound yet are kept. A name that is already bound is given a fresh
// placeholder by Add and renamed in the returned SQL, so values bound before
// the merge are never replaced. Names are processed in sorted order so that
// the result does not depend on map iteration order.
func (p *Params) Merge(sql string, m map[string]any) string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	var clashes []string
	for _, name := range names {
		if _, ok := p.values[name]; ok {
			clashes = append(clashes, name)
			continue
		}
		p.Set(name, m[name])
	}
	if len(clashes) == 0 {
		return sql
	}

	renamed := make(map[string]string, len(clashes))
	for _, name := range clashes {
		renamed[name] = p.Add(m[name])
	}
	return renamePlaceholders(sql, renamed)
}

// renamePlaceholders replaces the placeholders of sql found in renamed.
func renamePlaceholders(sql string, renamed map[string]string) string {
	var sb strings.Builder
	sb.Grow(len(sql))
	for _, part := range parse.NewParser().Parse(sql) {
		if ph, ok := part.(*parse.PlaceholderPart); ok {
			if name, ok := renamed[ph.Name]; ok {
				sb.WriteString(name)
				continue
			}
		}
		sb.WriteString(part.SQL())
	}
	return sb.String()
}

// Map returns a copy of the parameters as a plain map.
func (p *Params) Map() map[string]any {
	m := make(map[string]any, len(p.names))
	for name, v := range p.values {
		m[name] = v
	}
	return m
}
