// Package parser implements a hand-written recursive-descent parser with
// panic-mode error recovery (spec.md §4.2), advancing over a token slice
// the same way quoi's parser walked a token slice with a ptr/tok pair,
// but built around precedence-climbing expression methods instead of a
// Pratt table.
package parser

import (
	"sourcelang/ast"
	"sourcelang/diag"
	"sourcelang/token"
)

// Parser consumes a finished token stream (including its terminating
// END_OF_FILE) and builds a Program, reporting syntax errors to sink.
type Parser struct {
	tokens []token.Token
	ptr    int
	sink   *diag.Sink
}

func New(tokens []token.Token, sink *diag.Sink) *Parser {
	return &Parser{tokens: tokens, sink: sink}
}

// parseError is raised internally by panic-mode recovery: it unwinds to
// the nearest synchronize point without turning every caller's error
// path into an explicit return.
type parseError struct{}

func (p *Parser) cur() token.Token  { return p.tokens[p.ptr] }
func (p *Parser) isAtEnd() bool     { return p.cur().Kind == token.END_OF_FILE }
func (p *Parser) prev() token.Token {
	if p.ptr == 0 {
		return p.cur()
	}
	return p.tokens[p.ptr-1]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if !p.isAtEnd() {
		p.ptr++
	}
	return t
}

func (p *Parser) check(kind token.Kind) bool {
	return p.cur().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// reportHere files a syntax error. Per spec.md §4.2, the "<where>" clause
// points at the previous token when one exists, so the caret lands on
// what the user actually wrote rather than on whatever follows it.
func (p *Parser) reportHere(format string, args ...interface{}) {
	tok := p.cur()
	line := tok.Line
	if p.ptr > 0 {
		tok = p.prev()
		line = tok.Line
	}
	p.sink.ParseErrorAt(tok, line, format, args...)
}

func (p *Parser) fail(format string, args ...interface{}) {
	p.reportHere(format, args...)
	panic(parseError{})
}

func (p *Parser) consume(kind token.Kind, format string, args ...interface{}) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.fail(format, args...)
	return token.Token{}
}

// synchronize discards tokens until it has crossed a ';' or reached a
// token that starts a new statement, so one syntax error reports once
// instead of cascading.
func (p *Parser) synchronize() {
	start := p.ptr
	for !p.isAtEnd() {
		if p.ptr > start && p.prev().Kind == token.SEMICOLON {
			return
		}
		switch p.cur().Kind {
		case token.IF, token.FOR, token.WHILE, token.RETURN, token.BREAK, token.CONTINUE,
			token.BOOL_TY, token.INT_TY, token.DOUBLE_TY, token.CHAR_TY, token.STRING_TY, token.VOID_TY,
			token.LEFT_BRACE:
			return
		}
		p.advance()
	}
}

// Parse runs the parser to completion, returning every top-level
// declaration it could recover to. Callers should check sink.HadError()
// before trusting the result.
func (p *Parser) Parse() *ast.Program {
	var stmts []ast.Stat
	for !p.isAtEnd() {
		if s := p.declarationRecovering(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return &ast.Program{Stmts: stmts}
}

func (p *Parser) declarationRecovering() ast.Stat {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			p.synchronize()
		}
	}()
	return p.declaration()
}

var typeKinds = map[token.Kind]string{
	token.BOOL_TY:   "bool",
	token.INT_TY:    "int",
	token.DOUBLE_TY: "double",
	token.CHAR_TY:   "char",
	token.STRING_TY: "string",
	token.VOID_TY:   "void",
}

func (p *Parser) declaration() ast.Stat {
	if name, ok := typeKinds[p.cur().Kind]; ok {
		typeTok := p.advance()
		nameTok := p.consume(token.IDENTIFIER, "expected a name after type '%s'", name)
		if p.check(token.LEFT_PAREN) {
			return p.funcDeclTail(typeTok, name, nameTok)
		}
		return p.varDeclTail(typeTok, name, nameTok)
	}
	return p.statement()
}

func (p *Parser) typeName() ast.WithType {
	line := p.cur().Line
	name, ok := typeKinds[p.cur().Kind]
	if !ok {
		p.fail("expected a type name, got '%s'", p.cur().Lexeme)
	}
	p.advance()
	return ast.WithType{Pos: ast.Pos{Ln: line}, Name: name}
}

func (p *Parser) varDeclTail(typeTok token.Token, typeName string, nameTok token.Token) ast.Stat {
	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	}
	p.consume(token.SEMICOLON, "expected ';' after variable declaration")
	return &ast.VarDeclStat{
		Pos:  ast.Pos{Ln: typeTok.Line},
		Type: ast.WithType{Pos: ast.Pos{Ln: typeTok.Line}, Name: typeName},
		Name: nameTok.Lexeme,
		Init: init,
	}
}

func (p *Parser) funcDeclTail(typeTok token.Token, retName string, nameTok token.Token) ast.Stat {
	p.consume(token.LEFT_PAREN, "expected '(' after function name")
	var params []ast.Param
	if !p.check(token.RIGHT_PAREN) {
		for {
			pt := p.typeName()
			pn := p.consume(token.IDENTIFIER, "expected a parameter name")
			params = append(params, ast.Param{Type: pt, Name: pn.Lexeme})
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "expected ')' after parameter list")
	p.consume(token.LEFT_BRACE, "expected '{' to begin function body")
	body := p.blockTail(p.prev().Line)
	return &ast.FuncDeclStat{
		Pos:        ast.Pos{Ln: typeTok.Line},
		ReturnType: ast.WithType{Pos: ast.Pos{Ln: typeTok.Line}, Name: retName},
		Name:       nameTok.Lexeme,
		Params:     params,
		Body:       body,
	}
}

// ---- statements ----

func (p *Parser) statement() ast.Stat {
	switch {
	case p.check(token.LEFT_BRACE):
		line := p.advance().Line
		return p.blockTail(line)
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.BREAK):
		line := p.prev().Line
		p.consume(token.SEMICOLON, "expected ';' after 'break'")
		return &ast.BreakStat{Pos: ast.Pos{Ln: line}}
	case p.match(token.CONTINUE):
		line := p.prev().Line
		p.consume(token.SEMICOLON, "expected ';' after 'continue'")
		return &ast.ContinueStat{Pos: ast.Pos{Ln: line}}
	case p.match(token.RETURN):
		return p.returnStatement()
	default:
		return p.exprStatement()
	}
}

func (p *Parser) blockTail(line int) *ast.BlockStat {
	var stmts []ast.Stat
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		if s := p.declarationRecovering(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(token.RIGHT_BRACE, "expected '}' to close block")
	return &ast.BlockStat{Pos: ast.Pos{Ln: line}, Stmts: stmts}
}

func (p *Parser) ifStatement() ast.Stat {
	line := p.prev().Line
	p.consume(token.LEFT_PAREN, "expected '(' after 'if'")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "expected ')' after if condition")
	then := p.statement()
	var els ast.Stat
	if p.match(token.ELSE) {
		els = p.statement()
	}
	return &ast.IfStat{Pos: ast.Pos{Ln: line}, Cond: cond, Then: then, Else: els}
}

func (p *Parser) whileStatement() ast.Stat {
	line := p.prev().Line
	p.consume(token.LEFT_PAREN, "expected '(' after 'while'")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "expected ')' after while condition")
	body := p.statement()
	return &ast.WhileStat{Pos: ast.Pos{Ln: line}, Cond: cond, Body: body}
}

func (p *Parser) forStatement() ast.Stat {
	line := p.prev().Line
	p.consume(token.LEFT_PAREN, "expected '(' after 'for'")

	var init ast.Stat
	switch {
	case p.match(token.SEMICOLON):
		// no initializer
	default:
		if name, ok := typeKinds[p.cur().Kind]; ok {
			typeTok := p.advance()
			nameTok := p.consume(token.IDENTIFIER, "expected a name after type '%s'", name)
			init = p.varDeclTail(typeTok, name, nameTok)
		} else {
			init = p.exprStatement()
		}
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "expected ';' after for-loop condition")

	var incr ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		incr = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "expected ')' after for clauses")

	body := p.statement()
	return &ast.ForStat{Pos: ast.Pos{Ln: line}, Init: init, Cond: cond, Incr: incr, Body: body}
}

func (p *Parser) returnStatement() ast.Stat {
	line := p.prev().Line
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "expected ';' after return statement")
	return &ast.ReturnStat{Pos: ast.Pos{Ln: line}, Value: value}
}

func (p *Parser) exprStatement() ast.Stat {
	line := p.cur().Line
	e := p.expression()
	p.consume(token.SEMICOLON, "expected ';' after expression")
	return &ast.ExprStat{Pos: ast.Pos{Ln: line}, X: e}
}

// ---- expressions: assignment > ternary > logical > bitwise > equality
// > comparison > bitshift > term > factor > unary > call > primary ----

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	expr := p.ternary()
	if p.match(token.EQUAL) {
		line := p.prev().Line
		value := p.assignment()
		v, ok := expr.(*ast.VariableExpr)
		if !ok {
			// invalid lvalue: report but do not panic — keep going with the
			// right-hand side as an ordinary expression, per spec.md §4.2.
			p.sink.ParseErrorAt(p.prev(), line, "invalid assignment target")
			return value
		}
		return &ast.AssignExpr{Pos: ast.Pos{Ln: line}, Name: v.Name, Value: value}
	}
	return expr
}

// ternary is right-associative and binds looser than comparison: its
// condition and "then" branch parse at the logical level, one precedence
// tier above the comparison chain, and its "else" branch recurses into
// ternary itself so chained `a ? b : c ? d : e` nests on the right.
func (p *Parser) ternary() ast.Expr {
	cond := p.logical()
	if p.match(token.QUESTION_MARK) {
		line := p.prev().Line
		then := p.logical()
		p.consume(token.COLON, "expected ':' in ternary expression")
		els := p.ternary()
		return &ast.TernaryExpr{Pos: ast.Pos{Ln: line}, Cond: cond, Then: then, Else: els}
	}
	return cond
}

func (p *Parser) logical() ast.Expr {
	expr := p.bitwise()
	for p.check(token.AMPERSAND_AMPERSAND) || p.check(token.PIPE_PIPE) {
		op := p.advance()
		right := p.bitwise()
		expr = &ast.BinaryExpr{Pos: ast.Pos{Ln: op.Line}, Left: expr, Op: op.Kind, OpLexeme: op.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) bitwise() ast.Expr {
	expr := p.equality()
	for p.check(token.AMPERSAND) || p.check(token.PIPE) || p.check(token.CARET) {
		op := p.advance()
		right := p.equality()
		expr = &ast.BinaryExpr{Pos: ast.Pos{Ln: op.Line}, Left: expr, Op: op.Kind, OpLexeme: op.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.check(token.EQUAL_EQUAL) || p.check(token.BANG_EQUAL) {
		op := p.advance()
		right := p.comparison()
		expr = &ast.BinaryExpr{Pos: ast.Pos{Ln: op.Line}, Left: expr, Op: op.Kind, OpLexeme: op.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.bitshift()
	for p.check(token.LESS) || p.check(token.LESS_EQUAL) || p.check(token.GREATER) || p.check(token.GREATER_EQUAL) {
		op := p.advance()
		right := p.bitshift()
		expr = &ast.BinaryExpr{Pos: ast.Pos{Ln: op.Line}, Left: expr, Op: op.Kind, OpLexeme: op.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) bitshift() ast.Expr {
	expr := p.term()
	for p.check(token.LESS_LESS) || p.check(token.GREATER_GREATER) {
		op := p.advance()
		right := p.term()
		expr = &ast.BinaryExpr{Pos: ast.Pos{Ln: op.Line}, Left: expr, Op: op.Kind, OpLexeme: op.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.check(token.PLUS) || p.check(token.MINUS) {
		op := p.advance()
		right := p.factor()
		expr = &ast.BinaryExpr{Pos: ast.Pos{Ln: op.Line}, Left: expr, Op: op.Kind, OpLexeme: op.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.check(token.STAR) || p.check(token.SLASH) || p.check(token.PERCENT) {
		op := p.advance()
		right := p.unary()
		expr = &ast.BinaryExpr{Pos: ast.Pos{Ln: op.Line}, Left: expr, Op: op.Kind, OpLexeme: op.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.check(token.BANG) || p.check(token.MINUS) || p.check(token.TILDE) {
		op := p.advance()
		right := p.unary()
		return &ast.UnaryExpr{Pos: ast.Pos{Ln: op.Line}, Op: op.Kind, OpLexeme: op.Lexeme, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for p.check(token.LEFT_PAREN) {
		line := p.advance().Line
		var args []ast.Expr
		if !p.check(token.RIGHT_PAREN) {
			for {
				args = append(args, p.expression())
				if !p.match(token.COMMA) {
					break
				}
			}
		}
		p.consume(token.RIGHT_PAREN, "expected ')' after argument list")
		expr = &ast.CallExpr{Pos: ast.Pos{Ln: line}, Callee: expr, Args: args}
	}
	return expr
}

func (p *Parser) primary() ast.Expr {
	tok := p.cur()
	switch {
	case p.match(token.NULL):
		return &ast.NullLiteralExpr{Pos: ast.Pos{Ln: tok.Line}}
	case p.match(token.TRUE_LIT):
		return &ast.BoolLiteralExpr{Pos: ast.Pos{Ln: tok.Line}, Value: true}
	case p.match(token.FALSE_LIT):
		return &ast.BoolLiteralExpr{Pos: ast.Pos{Ln: tok.Line}, Value: false}
	case p.match(token.INTEGER_LIT):
		return &ast.IntLiteralExpr{Pos: ast.Pos{Ln: tok.Line}, Value: tok.Literal.Int()}
	case p.match(token.DOUBLE_LIT):
		return &ast.DoubleLiteralExpr{Pos: ast.Pos{Ln: tok.Line}, Value: tok.Literal.Double()}
	case p.match(token.STRING_LIT):
		return &ast.StringLiteralExpr{Pos: ast.Pos{Ln: tok.Line}, Value: tok.Literal.StringVal()}
	case p.match(token.CHARACTER_LIT):
		return &ast.CharLiteralExpr{Pos: ast.Pos{Ln: tok.Line}, Value: tok.Literal.Char()}
	case p.match(token.IDENTIFIER):
		return &ast.VariableExpr{Pos: ast.Pos{Ln: tok.Line}, Name: tok.Lexeme}
	case p.match(token.LEFT_PAREN):
		inner := p.expression()
		p.consume(token.RIGHT_PAREN, "expected ')' after expression")
		return &ast.GroupingExpr{Pos: ast.Pos{Ln: tok.Line}, Inner: inner}
	default:
		p.fail("expected an expression")
		return nil
	}
}
