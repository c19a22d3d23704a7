/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package expr

import (
	"math"
	"strconv"
)

// Value represents a runtime value
type Value struct {
	typ     ValueType
	numVal  float64
	strVal  string
	boolVal bool
}

// ValueType is the runtime kind of a Value
type ValueType int

const (
	TypeNil    ValueType = iota // Nil value; the zero Value is nil
	TypeNumber                  // Double-precision number
	TypeString                  // String value
	TypeBool                    // Boolean value
)

// String returns a human-readable name for the type
func (t ValueType) String() string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	default:
		return "nil"
	}
}

// NewNumber creates a numeric value
func NewNumber(n float64) Value {
	return Value{typ: TypeNumber, numVal: n}
}

// NewString creates a string value
func NewString(s string) Value {
	return Value{typ: TypeString, strVal: s}
}

// NewBool creates a boolean value
func NewBool(b bool) Value {
	return Value{typ: TypeBool, boolVal: b}
}

// NilValue returns a nil value
func NilValue() Value {
	return Value{typ: TypeNil}
}

// Type returns the runtime kind of the value
func (v Value) Type() ValueType { return v.typ }

// IsNumber checks if value is a number
func (v Value) IsNumber() bool { return v.typ == TypeNumber }

// IsString checks if value is a string
func (v Value) IsString() bool { return v.typ == TypeString }

// IsBool checks if value is a boolean
func (v Value) IsBool() bool { return v.typ == TypeBool }

// IsNil checks if value is nil
func (v Value) IsNil() bool { return v.typ == TypeNil }

// AsNumber returns the numeric value, or 0 for non-numbers
func (v Value) AsNumber() float64 {
	if v.typ == TypeNumber {
		return v.numVal
	}
	return 0
}

// AsBool returns the boolean value, or false for non-booleans
func (v Value) AsBool() bool {
	return v.typ == TypeBool && v.boolVal
}

// IsIntegral reports whether the value is a finite number with no
// fractional part
func (v Value) IsIntegral() bool {
	return v.typ == TypeNumber && !math.IsInf(v.numVal, 0) && v.numVal == math.Trunc(v.numVal)
}

// AsString returns the textual form used by print and by the tokenize
// literal column. Integral numbers print without a decimal point.
func (v Value) AsString() string {
	switch v.typ {
	case TypeString:
		return v.strVal
	case TypeNumber:
		if v.IsIntegral() {
			if v.numVal == 0 {
				// Covers negative zero.
				return "0"
			}
			return strconv.FormatFloat(v.numVal, 'f', 0, 64)
		}
		return formatNumber(v.numVal)
	case TypeBool:
		if v.boolVal {
			return "true"
		}
		return "false"
	default:
		return "nil"
	}
}

// String implements fmt.Stringer
func (v Value) String() string {
	return v.AsString()
}

// Truthy implements the language's truthiness: nil and false are false,
// everything else is true.
func (v Value) Truthy() bool {
	switch v.typ {
	case TypeNil:
		return false
	case TypeBool:
		return v.boolVal
	default:
		return true
	}
}

// Equal compares two values structurally. Values of differing kinds are
// never equal.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeNumber:
		return v.numVal == other.numVal
	case TypeString:
		return v.strVal == other.strVal
	case TypeBool:
		return v.boolVal == other.boolVal
	default:
		return true
	}
}

// formatNumber renders non-integral numbers, spelling the non-finite
// values inf, -inf and nan.
func formatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	case math.IsNaN(n):
		return "nan"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
