// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Package parse finds the named placeholders in SQL text. Quoted strings,
// quoted identifiers and casts such as ::integer[] are never mistaken for
// placeholders.
package parse

// Parser splits SQL into placeholder and bypass parts.
type Parser struct {
	// input is the SQL being parsed.
	input string

	// lastParsedPos is the character position of the end of the last parsed
	// part.
	lastParsedPos int

	// pos is the current character position of the parser.
	pos int

	parts []Part
}

// NewParser returns a reference to a new parser.
func NewParser() *Parser {
	return &Parser{}
}

// init initializes the parser.
func (p *Parser) init(input string) {
	p.input = input
	p.lastParsedPos = 0
	p.pos = 0
	p.parts = nil
}

// Parse returns the parts of input. An unterminated quote runs to the end of
// the input.
func (p *Parser) Parse(input string) []Part {
	p.init(input)
	for p.pos < len(p.input) {
		switch {
		case p.skipQuoted('\'') || p.skipQuoted('"'):
		case p.skipString("::"):
		case p.peekByte(':'):
			if name, ok := p.parsePlaceholder(); ok {
				p.add(&PlaceholderPart{Name: name})
			}
		default:
			p.pos++
		}
	}
	p.add(nil)
	return p.parts
}

// Placeholders returns the names of the placeholders in input in the order
// they appear.
func Placeholders(input string) []string {
	var names []string
	for _, part := range NewParser().Parse(input) {
		if ph, ok := part.(*PlaceholderPart); ok {
			names = append(names, ph.Name)
		}
	}
	return names
}

// add appends the text between the last part and the start of part as a
// bypass part, followed by part itself if it is not nil.
func (p *Parser) add(part Part) {
	end := p.pos
	if ph, ok := part.(*PlaceholderPart); ok {
		end -= len(ph.Name)
	}
	if end > p.lastParsedPos {
		p.parts = append(p.parts, &BypassPart{Chunk: p.input[p.lastParsedPos:end]})
	}
	if part != nil {
		p.parts = append(p.parts, part)
	}
	p.lastParsedPos = p.pos
}

// parsePlaceholder parses a colon followed by a name. On success the parser
// is advanced past the placeholder. A lone colon is skipped.
func (p *Parser) parsePlaceholder() (string, bool) {
	start := p.pos
	p.pos++
	for p.pos < len(p.input) && isNameByte(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start+1 {
		return "", false
	}
	return p.input[start:p.pos], true
}

// skipQuoted advances the parser past a string delimited by quote if one
// starts at the current position. A doubled quote inside the string is
// handled as two adjacent strings.
func (p *Parser) skipQuoted(quote byte) bool {
	if !p.skipByte(quote) {
		return false
	}
	for p.pos < len(p.input) {
		if p.skipByte(quote) {
			return true
		}
		p.pos++
	}
	return true
}

// peekByte returns true if the current byte equals the one passed as
// parameter.
func (p *Parser) peekByte(b byte) bool {
	return p.pos < len(p.input) && p.input[p.pos] == b
}

// skipByte jumps over the current byte if it matches the byte passed as a
// parameter. Returns true in that case, false otherwise.
func (p *Parser) skipByte(b byte) bool {
	if p.peekByte(b) {
		p.pos++
		return true
	}
	return false
}

// skipString jumps over s if the input continues with it.
func (p *Parser) skipString(s string) bool {
	if len(p.input)-p.pos < len(s) || p.input[p.pos:p.pos+len(s)] != s {
		return false
	}
	p.pos += len(s)
	return true
}

func isNameByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
