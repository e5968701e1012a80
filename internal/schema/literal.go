// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package schema

import (
	"fmt"
	"strconv"
)

// Literal is a value written directly into a column definition. The set of
// literals is closed: IntLiteral, FloatLiteral, BoolLiteral, StringLiteral
// and RawLiteral.
type Literal interface {
	// SQL returns the literal as it appears in SQL.
	SQL() string

	// literal is a marker method.
	literal()
}

// IntLiteral is written as a decimal number.
type IntLiteral int64

func (l IntLiteral) SQL() string {
	return strconv.FormatInt(int64(l), 10)
}

func (IntLiteral) literal() {}

// FloatLiteral is written with a '.' decimal separator whatever the locale.
type FloatLiteral float64

func (l FloatLiteral) SQL() string {
	return strconv.FormatFloat(float64(l), 'g', -1, 64)
}

func (FloatLiteral) literal() {}

// BoolLiteral is written as TRUE or FALSE.
type BoolLiteral bool

func (l BoolLiteral) SQL() string {
	if l {
		return "TRUE"
	}
	return "FALSE"
}

func (BoolLiteral) literal() {}

// StringLiteral is written in single quotes. Quotes inside the string are not
// escaped.
type StringLiteral string

func (l StringLiteral) SQL() string {
	return "'" + string(l) + "'"
}

func (StringLiteral) literal() {}

// RawLiteral is an SQL expression written as it is, such as
// CURRENT_TIMESTAMP.
type RawLiteral string

func (l RawLiteral) SQL() string {
	return string(l)
}

func (RawLiteral) literal() {}

// LiteralOf returns the literal for a Go value. Integers, floats and booleans
// map to their literal kinds, a Literal is returned unchanged and any other
// value becomes a StringLiteral of its default formatting. LiteralOf returns
// nil for nil.
func LiteralOf(v any) Literal {
	switch v := v.(type) {
	case nil:
		return nil
	case Literal:
		return v
	case int:
		return IntLiteral(v)
	case int8:
		return IntLiteral(v)
	case int16:
		return IntLiteral(v)
	case int32:
		return IntLiteral(v)
	case int64:
		return IntLiteral(v)
	case uint8:
		return IntLiteral(v)
	case uint16:
		return IntLiteral(v)
	case uint32:
		return IntLiteral(v)
	case uint:
		return uintLiteral(uint64(v))
	case uint64:
		return uintLiteral(v)
	case float32:
		// Format with float32 precision so that 3.14 stays 3.14.
		f, _ := strconv.ParseFloat(strconv.FormatFloat(float64(v), 'g', -1, 32), 64)
		return FloatLiteral(f)
	case float64:
		return FloatLiteral(v)
	case bool:
		return BoolLiteral(v)
	case string:
		return StringLiteral(v)
	default:
		return StringLiteral(fmt.Sprint(v))
	}
}

// uintLiteral returns an IntLiteral, or a RawLiteral holding the decimal
// digits when v does not fit in an int64.
func uintLiteral(v uint64) Literal {
	if v > 1<<63-1 {
		return RawLiteral(strconv.FormatUint(v, 10))
	}
	return IntLiteral(v)
}
