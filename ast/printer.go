package ast

import "fmt"

// Print renders an expression AST the way quoi's nodes already render
// themselves with String(), but as a standalone function so the checker
// and tests can print an Expr without caring which concrete node it is.
// It mirrors the original implementation's partial "AST printer for
// expressions" (original_source's ast_printer.hpp covers expressions
// only — statements are not printed).
func Print(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	switch n := e.(type) {
	case *GroupingExpr:
		return fmt.Sprintf("(group %s)", Print(n.Inner))
	case *UnaryExpr:
		return fmt.Sprintf("(%s %s)", n.OpLexeme, Print(n.Right))
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", n.OpLexeme, Print(n.Left), Print(n.Right))
	case *TernaryExpr:
		return fmt.Sprintf("(?: %s %s %s)", Print(n.Cond), Print(n.Then), Print(n.Else))
	case *AssignExpr:
		return fmt.Sprintf("(= %s %s)", n.Name, Print(n.Value))
	case *CallExpr:
		args := ""
		for _, a := range n.Args {
			args += " " + Print(a)
		}
		return fmt.Sprintf("(call %s%s)", Print(n.Callee), args)
	default:
		// literals and variable reads already render themselves faithfully
		return e.String()
	}
}
