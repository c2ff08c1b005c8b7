package interpreter

import (
	"sourcelang/ast"
	"sourcelang/value"
)

// evalBinary implements every binary operator's runtime semantics.
// Logical && and || short-circuit: the right operand is only evaluated
// when it can affect the result. Int division and modulo by zero are
// Runtime Errors (spec.md §9's open-question resolution); double
// division follows IEEE-754 and produces +/-Inf or NaN instead of
// erroring.
func (i *Interpreter) evalBinary(e *ast.BinaryExpr) (value.Value, error) {
	if e.OpLexeme == "&&" || e.OpLexeme == "||" {
		return i.evalLogical(e)
	}

	left, err := i.eval(e.Left)
	if err != nil {
		return value.Null, err
	}
	right, err := i.eval(e.Right)
	if err != nil {
		return value.Null, err
	}

	switch e.OpLexeme {
	case "+":
		return i.evalAdd(e, left, right)
	case "-", "*", "/", "%":
		return i.evalArith(e, left, right)
	case "<", "<=", ">", ">=":
		return i.evalComparison(e, left, right)
	case "==":
		return value.Bool(valuesEqual(left, right)), nil
	case "!=":
		return value.Bool(!valuesEqual(left, right)), nil
	case "&", "|", "^", "<<", ">>":
		return evalBitwise(e.OpLexeme, left, right), nil
	default:
		return value.Null, i.internalErrf("interpreter: unhandled binary operator '%s'", e.OpLexeme)
	}
}

func (i *Interpreter) evalLogical(e *ast.BinaryExpr) (value.Value, error) {
	left, err := i.eval(e.Left)
	if err != nil {
		return value.Null, err
	}
	if e.OpLexeme == "&&" && !left.AsBool() {
		return value.Bool(false), nil
	}
	if e.OpLexeme == "||" && left.AsBool() {
		return value.Bool(true), nil
	}
	right, err := i.eval(e.Right)
	if err != nil {
		return value.Null, err
	}
	return value.Bool(right.AsBool()), nil
}

func (i *Interpreter) evalAdd(e *ast.BinaryExpr, left, right value.Value) (value.Value, error) {
	if left.IsString() || right.IsString() {
		return value.String(i.Stringify(left) + i.Stringify(right)), nil
	}
	return i.evalArith(e, left, right)
}

func (i *Interpreter) evalArith(e *ast.BinaryExpr, left, right value.Value) (value.Value, error) {
	if left.IsDouble() || right.IsDouble() {
		l, r := asDouble(left), asDouble(right)
		switch e.OpLexeme {
		case "+":
			return value.Double(l + r), nil
		case "-":
			return value.Double(l - r), nil
		case "*":
			return value.Double(l * r), nil
		case "/":
			return value.Double(l / r), nil
		case "%":
			return value.Double(mod(l, r)), nil
		}
	}
	l, r := left.AsInt(), right.AsInt()
	switch e.OpLexeme {
	case "+":
		return value.Int(l + r), nil
	case "-":
		return value.Int(l - r), nil
	case "*":
		return value.Int(l * r), nil
	case "/":
		if r == 0 {
			return value.Null, i.runtimeErrf(e.Line(), "division by zero")
		}
		return value.Int(l / r), nil
	case "%":
		if r == 0 {
			return value.Null, i.runtimeErrf(e.Line(), "modulo by zero")
		}
		return value.Int(l % r), nil
	}
	return value.Null, i.internalErrf("interpreter: unhandled arithmetic operator '%s'", e.OpLexeme)
}

func mod(l, r float64) float64 {
	m := l - r*float64(int64(l/r))
	return m
}

func asDouble(v value.Value) float64 {
	if v.IsInt() {
		return float64(v.AsInt())
	}
	return v.AsDouble()
}

// evalComparison orders numeric operands as doubles and string/char
// operands lexicographically over codepoints (spec.md §4.4), matching
// original_source's ast_interpreter.cpp, which compares std::string/char
// operands with the native comparison operators rather than coercing them
// through a numeric conversion first.
func (i *Interpreter) evalComparison(e *ast.BinaryExpr, left, right value.Value) (value.Value, error) {
	op := e.OpLexeme
	if left.IsString() && right.IsString() {
		return compareOrdered(op, left.AsString(), right.AsString()), nil
	}
	if left.IsChar() && right.IsChar() {
		return compareOrdered(op, left.AsChar(), right.AsChar()), nil
	}
	if !isOrderable(left) || !isOrderable(right) {
		return value.Null, i.runtimeErrf(e.Line(), "'%s' requires numeric, string, or char operands, got %s and %s", op, left.TypeName(), right.TypeName())
	}
	l, r := asDouble(left), asDouble(right)
	switch op {
	case "<":
		return value.Bool(l < r), nil
	case "<=":
		return value.Bool(l <= r), nil
	case ">":
		return value.Bool(l > r), nil
	case ">=":
		return value.Bool(l >= r), nil
	}
	return value.Null, i.internalErrf("interpreter: unhandled comparison operator '%s'", op)
}

func isOrderable(v value.Value) bool {
	return v.IsInt() || v.IsDouble()
}

type ordered interface {
	string | rune
}

func compareOrdered[T ordered](op string, l, r T) value.Value {
	switch op {
	case "<":
		return value.Bool(l < r)
	case "<=":
		return value.Bool(l <= r)
	case ">":
		return value.Bool(l > r)
	case ">=":
		return value.Bool(l >= r)
	}
	return value.Bool(false)
}

func evalBitwise(op string, left, right value.Value) value.Value {
	l, r := left.AsInt(), right.AsInt()
	switch op {
	case "&":
		return value.Int(l & r)
	case "|":
		return value.Int(l | r)
	case "^":
		return value.Int(l ^ r)
	case "<<":
		return value.Int(l << uint64(r))
	case ">>":
		return value.Int(l >> uint64(r))
	}
	return value.Int(0)
}

// valuesEqual implements ==/!= across the runtime value domain: null
// equals only null, and cross-kind comparisons (other than the int/double
// numeric tower) are simply unequal rather than an error, since the
// checker already rejected genuinely incomparable static types.
func valuesEqual(a, b value.Value) bool {
	if a.IsNull() || b.IsNull() {
		return a.IsNull() && b.IsNull()
	}
	if (a.IsInt() || a.IsDouble()) && (b.IsInt() || b.IsDouble()) {
		return asDouble(a) == asDouble(b)
	}
	if a.IsBool() && b.IsBool() {
		return a.AsBool() == b.AsBool()
	}
	if a.IsString() && b.IsString() {
		return a.AsString() == b.AsString()
	}
	if a.IsChar() && b.IsChar() {
		return a.AsChar() == b.AsChar()
	}
	return false
}
