package interpreter

import (
	"sourcelang/ast"
	"sourcelang/value"
)

func (i *Interpreter) eval(e ast.Expr) (value.Value, error) {
	switch e := e.(type) {
	case *ast.NullLiteralExpr:
		return value.Null, nil
	case *ast.BoolLiteralExpr:
		return value.Bool(e.Value), nil
	case *ast.IntLiteralExpr:
		return value.Int(e.Value), nil
	case *ast.DoubleLiteralExpr:
		return value.Double(e.Value), nil
	case *ast.StringLiteralExpr:
		return value.String(e.Value), nil
	case *ast.CharLiteralExpr:
		return value.Char(e.Value), nil
	case *ast.GroupingExpr:
		return i.eval(e.Inner)
	case *ast.VariableExpr:
		return i.evalVariable(e)
	case *ast.AssignExpr:
		return i.evalAssign(e)
	case *ast.UnaryExpr:
		return i.evalUnary(e)
	case *ast.BinaryExpr:
		return i.evalBinary(e)
	case *ast.TernaryExpr:
		return i.evalTernary(e)
	case *ast.CallExpr:
		return i.evalCall(e)
	default:
		return value.Null, i.internalErrf("interpreter: unhandled expression %T", e)
	}
}

func (i *Interpreter) evalVariable(e *ast.VariableExpr) (value.Value, error) {
	v, ok := i.env.Get(e.Name)
	if !ok {
		return value.Null, i.runtimeErrf(e.Line(), "undefined variable '%s'", e.Name)
	}
	return v, nil
}

func (i *Interpreter) evalAssign(e *ast.AssignExpr) (value.Value, error) {
	v, err := i.eval(e.Value)
	if err != nil {
		return value.Null, err
	}
	if !i.env.Assign(e.Name, v) {
		return value.Null, i.runtimeErrf(e.Line(), "undefined variable '%s'", e.Name)
	}
	return v, nil
}

func (i *Interpreter) evalUnary(e *ast.UnaryExpr) (value.Value, error) {
	right, err := i.eval(e.Right)
	if err != nil {
		return value.Null, err
	}
	switch e.OpLexeme {
	case "-":
		if right.IsInt() {
			return value.Int(-right.AsInt()), nil
		}
		return value.Double(-right.AsDouble()), nil
	case "!":
		return value.Bool(!right.AsBool()), nil
	case "~":
		return value.Int(^right.AsInt()), nil
	default:
		return value.Null, i.internalErrf("interpreter: unhandled unary operator '%s'", e.OpLexeme)
	}
}

// evalTernary repeats the checker's bool-condition requirement defensively
// at runtime (spec.md §4.4, §7) rather than trusting the static check,
// the same way execIf/execWhile/execFor do for their conditions.
func (i *Interpreter) evalTernary(e *ast.TernaryExpr) (value.Value, error) {
	cond, err := i.eval(e.Cond)
	if err != nil {
		return value.Null, err
	}
	if err := i.requireBool(cond, e.Cond.Line()); err != nil {
		return value.Null, err
	}
	if cond.AsBool() {
		return i.eval(e.Then)
	}
	return i.eval(e.Else)
}

func (i *Interpreter) evalCall(e *ast.CallExpr) (value.Value, error) {
	calleeVal, err := i.eval(e.Callee)
	if err != nil {
		return value.Null, err
	}
	if !calleeVal.IsCallable() {
		return value.Null, i.runtimeErrf(e.Line(), "value of type %s is not callable", calleeVal.TypeName())
	}
	callee := calleeVal.AsCallable()

	args := make([]value.Value, len(e.Args))
	for idx, a := range e.Args {
		v, err := i.eval(a)
		if err != nil {
			return value.Null, err
		}
		args[idx] = v
	}

	if callee.Arity() != value.Unlimited && callee.Arity() != len(args) {
		return value.Null, i.runtimeErrf(e.Line(), "'%s' expects %d argument(s), got %d", callee.Name(), callee.Arity(), len(args))
	}
	return callee.Call(e.Line(), args)
}
