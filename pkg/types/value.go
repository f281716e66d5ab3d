// Package types provides the core value and schema types for the engine.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnType is the declared type of a table column.
type ColumnType int

const (
	// TypeInt stores 64-bit signed integers
	TypeInt ColumnType = iota

	// TypeText stores UTF-8 strings
	TypeText

	// TypeFloat stores 64-bit floating point numbers
	TypeFloat
)

// String returns the canonical SQL name of the column type.
func (t ColumnType) String() string {
	switch t {
	case TypeInt:
		return "INT"
	case TypeText:
		return "TEXT"
	case TypeFloat:
		return "FLOAT"
	default:
		return "UNKNOWN"
	}
}

// ColumnTypeFromName resolves a type name from CREATE TABLE syntax.
// The canonical names are INT, TEXT, and FLOAT; the common aliases
// are accepted and normalized.
func ColumnTypeFromName(name string) (ColumnType, error) {
	switch strings.ToUpper(name) {
	case "INT", "INTEGER":
		return TypeInt, nil
	case "TEXT", "VARCHAR", "CHAR", "STRING":
		return TypeText, nil
	case "FLOAT", "REAL", "DOUBLE":
		return TypeFloat, nil
	default:
		return 0, fmt.Errorf("unknown column type %q", name)
	}
}

// ValueKind identifies which variant a Value holds.
type ValueKind int

const (
	KindInt ValueKind = iota
	KindText
	KindFloat
)

// String returns the name of the value kind.
func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "INT"
	case KindText:
		return "TEXT"
	case KindFloat:
		return "FLOAT"
	default:
		return "UNKNOWN"
	}
}

// Value is a closed tagged variant holding one typed cell value.
// Exactly one of the payload fields is meaningful, selected by Kind.
// Value is comparable, so coerced values can key index maps directly.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Text  string
}

// NewInt returns an integer Value.
func NewInt(v int64) Value {
	return Value{Kind: KindInt, Int: v}
}

// NewText returns a text Value.
func NewText(v string) Value {
	return Value{Kind: KindText, Text: v}
}

// NewFloat returns a float Value.
func NewFloat(v float64) Value {
	return Value{Kind: KindFloat, Float: v}
}

// String returns the SQL literal rendition of the value.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindText:
		return "'" + strings.ReplaceAll(v.Text, "'", "''") + "'"
	default:
		return "?"
	}
}

// Display returns the value formatted for result output, without
// literal quoting.
func (v Value) Display() string {
	if v.Kind == KindText {
		return v.Text
	}
	return v.String()
}

// Native returns the value as its native Go representation, for JSON
// encoding in the web layer.
func (v Value) Native() interface{} {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	default:
		return v.Text
	}
}

// Equal reports whether two values compare equal. Integers and floats
// compare numerically across kinds, so a join between an INT column and
// a FLOAT column behaves the way the literal values suggest.
func (v Value) Equal(other Value) bool {
	if v.Kind == other.Kind {
		return v == other
	}
	if v.Kind == KindInt && other.Kind == KindFloat {
		return float64(v.Int) == other.Float
	}
	if v.Kind == KindFloat && other.Kind == KindInt {
		return v.Float == float64(other.Int)
	}
	return false
}

// Coerce validates a literal value against a declared column type and
// returns the stored representation. Coercion is strict: an integer
// column takes only integer literals, a float column takes integer or
// decimal literals, and a text column takes only string literals.
// There is no cross-type coercion beyond widening INT to FLOAT.
func Coerce(lit Value, declared ColumnType) (Value, error) {
	switch declared {
	case TypeInt:
		if lit.Kind == KindInt {
			return lit, nil
		}
	case TypeFloat:
		if lit.Kind == KindFloat {
			return lit, nil
		}
		if lit.Kind == KindInt {
			return NewFloat(float64(lit.Int)), nil
		}
	case TypeText:
		if lit.Kind == KindText {
			return lit, nil
		}
	}
	return Value{}, fmt.Errorf("cannot use %s literal %s as %s", lit.Kind, lit, declared)
}
