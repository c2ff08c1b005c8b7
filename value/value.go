// Package value implements the Runtime Value data model (spec.md §3): a
// tagged sum of null | bool | int | double | string | char | callable.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// kind tags which field of Value is meaningful.
type kind int

const (
	KindNull kind = iota
	KindBool
	KindInt
	KindDouble
	KindString
	KindChar
	KindCallable
)

// Value is the runtime representation every expression evaluates to.
type Value struct {
	kind kind
	b    bool
	i    int64
	f    float64
	s    string
	c    rune
	call Callable
}

var Null = Value{kind: KindNull}

func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func Int(i int64) Value      { return Value{kind: KindInt, i: i} }
func Double(f float64) Value { return Value{kind: KindDouble, f: f} }
func String(s string) Value  { return Value{kind: KindString, s: s} }
func Char(c rune) Value      { return Value{kind: KindChar, c: c} }
func Call(c Callable) Value  { return Value{kind: KindCallable, call: c} }

func (v Value) IsNull() bool     { return v.kind == KindNull }
func (v Value) IsBool() bool     { return v.kind == KindBool }
func (v Value) IsInt() bool      { return v.kind == KindInt }
func (v Value) IsDouble() bool   { return v.kind == KindDouble }
func (v Value) IsString() bool   { return v.kind == KindString }
func (v Value) IsChar() bool     { return v.kind == KindChar }
func (v Value) IsCallable() bool { return v.kind == KindCallable }

func (v Value) AsBool() bool        { return v.b }
func (v Value) AsInt() int64        { return v.i }
func (v Value) AsDouble() float64   { return v.f }
func (v Value) AsString() string    { return v.s }
func (v Value) AsChar() rune        { return v.c }
func (v Value) AsCallable() Callable { return v.call }

// TypeName names the runtime tag for error messages ("int", "string", ...).
func (v Value) TypeName() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindChar:
		return "char"
	case KindCallable:
		return "function"
	default:
		return "<unknown>"
	}
}

// Unlimited marks a Callable's Arity as accepting any number of arguments
// (used by the variadic native print).
const Unlimited = -1

// Callable is a polymorphic capability exposing an arity and a call
// operation. Native functions and user-defined functions both implement
// it (spec.md §3). Implementations close over whatever interpreter state
// they need (a captured environment, an output writer) at construction
// time, so Call itself needs nothing beyond the arguments — this keeps
// the value package free of a dependency on the interpreter package.
type Callable interface {
	Arity() int // Unlimited for variadic callables
	Name() string
	Call(line int, args []Value) (Value, error)
}

// Stringify renders a Value the way the native print formats its
// arguments (spec.md §6). trimTrailingZeros selects which of FormatDouble's
// two renderings a double uses; config.Config.TrimTrailingZeros controls it
// for the running interpreter.
func Stringify(v Value, trimTrailingZeros bool) string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindDouble:
		return FormatDouble(v.f, trimTrailingZeros)
	case KindString:
		return v.s
	case KindChar:
		return string(v.c)
	case KindCallable:
		return fmt.Sprintf("<fn %s>", v.call.Name())
	default:
		return "<unknown>"
	}
}

// FormatDouble renders a float64 fixed-point with up to 6 fractional
// digits. With trimTrailingZeros, trailing zeros are stripped and a
// trailing "0" re-appended if the result ends in a bare decimal point — so
// 2.0 prints as "2.0" and 3.1415 prints as "3.1415" (spec.md §6). Without
// it, all 6 fractional digits are kept (2.0 prints as "2.000000").
func FormatDouble(f float64, trimTrailingZeros bool) string {
	s := strconv.FormatFloat(f, 'f', 6, 64)
	if !trimTrailingZeros {
		return s
	}
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}
