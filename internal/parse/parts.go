// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package parse

// Part is a section of parsed SQL. The parsed SQL is represented as a list
// of parts which, written out in order, reproduce it exactly.
type Part interface {
	// String returns the part's representation for debugging purposes.
	String() string

	// SQL returns the text of the part.
	SQL() string

	// part is a marker method.
	part()
}

// PlaceholderPart is a named placeholder such as :qp0.
type PlaceholderPart struct {
	// Name is the placeholder including its leading colon.
	Name string
}

func (p *PlaceholderPart) String() string {
	return "Placeholder[" + p.Name + "]"
}

func (p *PlaceholderPart) SQL() string {
	return p.Name
}

func (p *PlaceholderPart) part() {}

// BypassPart is SQL that contains no placeholders.
type BypassPart struct {
	Chunk string
}

func (p *BypassPart) String() string {
	return "Bypass[" + p.Chunk + "]"
}

func (p *BypassPart) SQL() string {
	return p.Chunk
}

func (p *BypassPart) part() {}
