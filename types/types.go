// Package types implements the Static Type data model (spec.md §3): a
// tagged sum of Primitive, Function, and (internal) Union variants, plus
// the subtyping relation and its reflexive/contravariant/union rules.
package types

import (
	"fmt"
	"strings"
)

// Type is implemented by every static-type variant.
type Type interface {
	String() string
	typeNode()
}

// Primitive is one of the base kinds: null, bool, int, double, string,
// char, void.
type Primitive int

const (
	Null Primitive = iota
	Bool
	Int
	Double
	String
	Char
	Void
)

func (p Primitive) typeNode() {}

func (p Primitive) String() string {
	switch p {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Double:
		return "double"
	case String:
		return "string"
	case Char:
		return "char"
	case Void:
		return "void"
	default:
		return "<unknown primitive>"
	}
}

// Function is {return: Type, params: [Type]}.
type Function struct {
	Return Type
	Params []Type
}

func (f Function) typeNode() {}

func (f Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s(%s)", f.Return.String(), strings.Join(parts, ", "))
}

// Union is an ordered list of alternative types; internal only — it is
// never written in source, only produced by the ternary expression and
// by the native print's variadic parameter type.
type Union struct {
	Alts []Type
}

func (u Union) typeNode() {}

func (u Union) String() string {
	parts := make([]string, len(u.Alts))
	for i, a := range u.Alts {
		parts[i] = a.String()
	}
	return "Union{" + strings.Join(parts, ", ") + "}"
}

// NewUnion builds a Union, flattening any nested Union members so
// repeated ternary-typing never nests unions arbitrarily deep.
func NewUnion(alts ...Type) Type {
	var flat []Type
	for _, a := range alts {
		if u, ok := a.(Union); ok {
			flat = append(flat, u.Alts...)
		} else {
			flat = append(flat, a)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return Union{Alts: flat}
}

// Equal reports structural equality, used where subtyping collapses to
// identity (e.g. primitive-to-primitive).
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case Primitive:
		b, ok := b.(Primitive)
		return ok && a == b
	case Function:
		b, ok := b.(Function)
		if !ok || len(a.Params) != len(b.Params) || !Equal(a.Return, b.Return) {
			return false
		}
		for i := range a.Params {
			if !Equal(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return true
	case Union:
		b, ok := b.(Union)
		if !ok || len(a.Alts) != len(b.Alts) {
			return false
		}
		for i := range a.Alts {
			if !Equal(a.Alts[i], b.Alts[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// IsSubtype implements the `<:` relation from spec.md §3:
//   - reflexive for equal primitives
//   - null <: T for every non-function primitive T
//   - Function(R1,P1*) <: Function(R2,P2*) iff R1<:R2, |P1|=|P2|, P2i<:P1i
//   - Union(A*) <: Union(B*) iff every Ai <: some Bj
//   - a non-union T <: Union(B*) iff T <: some Bj
func IsSubtype(sub, super Type) bool {
	if unionSuper, ok := super.(Union); ok {
		if unionSub, ok := sub.(Union); ok {
			for _, a := range unionSub.Alts {
				if !IsSubtype(a, unionSuper) {
					return false
				}
			}
			return true
		}
		for _, b := range unionSuper.Alts {
			if IsSubtype(sub, b) {
				return true
			}
		}
		return false
	}
	if _, ok := sub.(Union); ok {
		// a Union is never a subtype of a non-union super; NewUnion
		// already unwraps a single alternative, so a one-member union
		// never reaches this point. spec.md does not define
		// Union <: non-Union.
		return false
	}

	if p, ok := sub.(Primitive); ok && p == Null {
		if _, superIsFunction := super.(Function); superIsFunction {
			return false
		}
		return true
	}

	if subFn, ok := sub.(Function); ok {
		superFn, ok := super.(Function)
		if !ok || len(subFn.Params) != len(superFn.Params) {
			return false
		}
		if !IsSubtype(subFn.Return, superFn.Return) {
			return false
		}
		for i := range subFn.Params {
			// contravariant: superFn.Params[i] <: subFn.Params[i]
			if !IsSubtype(superFn.Params[i], subFn.Params[i]) {
				return false
			}
		}
		return true
	}

	return Equal(sub, super)
}
