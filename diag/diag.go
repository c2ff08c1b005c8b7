// Package diag implements the diagnostic sink shared by every stage of the
// pipeline. It is instantiated once per run (never a package global) so
// that tests can give each case a fresh sink, the way quoi's lexer/parser
// each carried their own Errs slice.
package diag

import (
	"fmt"
	"strings"

	"sourcelang/token"
)

// Kind is one of the four error kinds spec'd for the pipeline, plus the
// internal-compiler-error guard used for broken invariants.
type Kind int

const (
	ParseError Kind = iota
	LogicError
	TypeError
	RuntimeError
	InternalError
)

func (k Kind) label() string {
	switch k {
	case ParseError:
		return "Error"
	case LogicError:
		return "Logic Error"
	case TypeError:
		return "Type Error"
	case RuntimeError:
		return "Runtime Error"
	case InternalError:
		return "Internal Compiler Error"
	default:
		return "Error"
	}
}

// Diagnostic is a single recorded error: a kind, a 1-based line, an
// optional offending token (for the "<where>" clause), and a message.
type Diagnostic struct {
	Kind    Kind
	Line    int
	Tok     *token.Token
	Message string
}

func (d Diagnostic) String() string {
	if d.Kind == InternalError {
		return fmt.Sprintf("[%s]: %s", d.Kind.label(), d.Message)
	}
	where := ""
	if d.Kind == ParseError {
		switch {
		case d.Tok != nil && d.Tok.Kind == token.END_OF_FILE:
			where = " at end of file"
		case d.Tok != nil:
			where = fmt.Sprintf(" at '%s'", d.Tok.Lexeme)
		}
	}
	return fmt.Sprintf("[line %d] %s%s: %s", d.Line, d.Kind.label(), where, d.Message)
}

// Sink accumulates diagnostics for one pipeline run.
type Sink struct {
	diagnostics []Diagnostic
}

func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) report(d Diagnostic) {
	s.diagnostics = append(s.diagnostics, d)
}

// ParseErrorAt records a syntax error. tok, when non-nil, supplies the
// "<where>" clause; per spec.md §4.2 callers pass the previous token when
// one exists so the caret falls on what the user actually wrote.
func (s *Sink) ParseErrorAt(tok token.Token, line int, format string, args ...interface{}) {
	t := tok
	s.report(Diagnostic{Kind: ParseError, Line: line, Tok: &t, Message: fmt.Sprintf(format, args...)})
}

func (s *Sink) Logicf(line int, format string, args ...interface{}) {
	s.report(Diagnostic{Kind: LogicError, Line: line, Message: fmt.Sprintf(format, args...)})
}

func (s *Sink) Typef(line int, format string, args ...interface{}) {
	s.report(Diagnostic{Kind: TypeError, Line: line, Message: fmt.Sprintf(format, args...)})
}

func (s *Sink) Runtimef(line int, format string, args ...interface{}) {
	s.report(Diagnostic{Kind: RuntimeError, Line: line, Message: fmt.Sprintf(format, args...)})
}

func (s *Sink) Internalf(format string, args ...interface{}) {
	s.report(Diagnostic{Kind: InternalError, Message: fmt.Sprintf(format, args...)})
}

func (s *Sink) HadError() bool {
	return len(s.diagnostics) > 0
}

func (s *Sink) HadKind(k Kind) bool {
	for _, d := range s.diagnostics {
		if d.Kind == k {
			return true
		}
	}
	return false
}

func (s *Sink) Diagnostics() []Diagnostic {
	return s.diagnostics
}

// Render prints every diagnostic the way the driver does (§6 of the spec):
// one "[line N] <Kind><where>: <message>" per line.
func (s *Sink) Render() string {
	var b strings.Builder
	for _, d := range s.diagnostics {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Reset clears the sink so a REPL can reuse it across lines without a
// diagnostic from one line bleeding into the next line's report.
func (s *Sink) Reset() {
	s.diagnostics = nil
}
