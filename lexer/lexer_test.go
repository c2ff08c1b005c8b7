package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sourcelang/diag"
	"sourcelang/token"
)

func tokenize(t *testing.T, src string) ([]token.Token, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	return Tokenize(src, sink), sink
}

func TestLexerPunctuationAndOperators(t *testing.T) {
	toks, sink := tokenize(t, "( ) { } , . ; : ? ~ ^ % + - * / ! != = == < <= << > >= >> & && | ||")
	require.False(t, sink.HadError())
	want := []token.Kind{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.COMMA, token.DOT, token.SEMICOLON, token.COLON, token.QUESTION_MARK,
		token.TILDE, token.CARET, token.PERCENT, token.PLUS, token.MINUS, token.STAR, token.SLASH,
		token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL,
		token.LESS, token.LESS_EQUAL, token.LESS_LESS,
		token.GREATER, token.GREATER_EQUAL, token.GREATER_GREATER,
		token.AMPERSAND, token.AMPERSAND_AMPERSAND, token.PIPE, token.PIPE_PIPE,
		token.END_OF_FILE,
	}
	require.Len(t, toks, len(want))
	for i, k := range want {
		assert.Equal(t, k, toks[i].Kind, "token %d", i)
	}
}

func TestLexerLiterals(t *testing.T) {
	toks, sink := tokenize(t, `123 3.1415 "hi there" 'a' '\n' true false null`)
	require.False(t, sink.HadError())
	require.Equal(t, token.INTEGER_LIT, toks[0].Kind)
	assert.Equal(t, int64(123), toks[0].Literal.Int())
	require.Equal(t, token.DOUBLE_LIT, toks[1].Kind)
	assert.InDelta(t, 3.1415, toks[1].Literal.Double(), 1e-9)
	require.Equal(t, token.STRING_LIT, toks[2].Kind)
	assert.Equal(t, "hi there", toks[2].Literal.StringVal())
	require.Equal(t, token.CHARACTER_LIT, toks[3].Kind)
	assert.Equal(t, 'a', toks[3].Literal.Char())
	require.Equal(t, token.CHARACTER_LIT, toks[4].Kind)
	assert.Equal(t, '\n', toks[4].Literal.Char())
	assert.Equal(t, token.TRUE_LIT, toks[5].Kind)
	assert.True(t, toks[5].Literal.Bool())
	assert.Equal(t, token.FALSE_LIT, toks[6].Kind)
	assert.Equal(t, token.NULL, toks[7].Kind)
}

func TestLexerKeywordsAndIdentifiers(t *testing.T) {
	toks, sink := tokenize(t, "int double string bool char void if else for while break continue return myVar_1")
	require.False(t, sink.HadError())
	want := []token.Kind{
		token.INT_TY, token.DOUBLE_TY, token.STRING_TY, token.BOOL_TY, token.CHAR_TY, token.VOID_TY,
		token.IF, token.ELSE, token.FOR, token.WHILE, token.BREAK, token.CONTINUE, token.RETURN,
		token.IDENTIFIER, token.END_OF_FILE,
	}
	require.Len(t, toks, len(want))
	for i, k := range want {
		assert.Equal(t, k, toks[i].Kind, "token %d", i)
	}
	assert.Equal(t, "myVar_1", toks[len(toks)-2].Lexeme)
}

func TestLexerSkipsCommentsAndTracksLines(t *testing.T) {
	src := "int x = 1; // a comment\nint y = 2;"
	toks, sink := tokenize(t, src)
	require.False(t, sink.HadError())
	// first statement tokens are all on line 1
	assert.Equal(t, 1, toks[0].Line)
	// "int" at the start of the second statement is on line 2
	found := false
	for _, tok := range toks {
		if tok.Kind == token.INT_TY && tok.Line == 2 {
			found = true
		}
	}
	assert.True(t, found, "expected a token on line 2")
}

func TestLexerErrorConditions(t *testing.T) {
	cases := []string{
		`"unterminated`,
		`''`,
		`'ab'`,
		`'\q'`,
		"@",
	}
	for _, src := range cases {
		_, sink := tokenize(t, src)
		assert.True(t, sink.HadError(), "expected error for %q", src)
	}
}
