// File: analyzer.go
// Title: IPPcode18 Source Analyzer
// Description: Context driven tokenizer. Each call to NextToken consumes at
//              most one source line and returns exactly one token or fails.
//              The analyzer alternates strictly
//              Header -> (Opcode -> Argument* -> EOL)* -> EOF and publishes
//              comment and line-of-code events through its embedded Trigger.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package analyzer

import (
	"errors"
	"io"
	"strings"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
	"github.com/msto63/ippcode/pkg/ippcode/event"
	"github.com/msto63/ippcode/pkg/ippcode/lang"
	"github.com/msto63/ippcode/pkg/ippcode/token"
)

// trimSet matches the characters removed from both ends of every line
const trimSet = " \t\n\r\x00\x0B"

// Context is the analyzer state. It is one of AwaitingHeader,
// AwaitingOpcode or AwaitingArgument.
type Context interface {
	isContext()
}

// AwaitingHeader is the initial context
type AwaitingHeader struct{}

// AwaitingOpcode expects an instruction line, a blank line or the end of input
type AwaitingOpcode struct{}

// AwaitingArgument expects the next operand of Operation
type AwaitingArgument struct {
	Operation string
}

func (AwaitingHeader) isContext()   {}
func (AwaitingOpcode) isContext()   {}
func (AwaitingArgument) isContext() {}

// Analyzer tokenizes one source. It is not safe for concurrent use.
type Analyzer struct {
	event.Trigger

	grammar  *lang.Grammar
	source   LineSource
	context  Context
	line     int
	pending  []string
	argIndex int
}

// New creates an analyzer reading r
func New(g *lang.Grammar, r io.Reader) *Analyzer {
	return NewFromSource(g, NewLineReader(r))
}

// NewFromSource creates an analyzer over a line source
func NewFromSource(g *lang.Grammar, src LineSource) *Analyzer {
	return &Analyzer{
		grammar: g,
		source:  src,
		context: AwaitingHeader{},
	}
}

// Context returns the current context
func (a *Analyzer) Context() Context { return a.context }

// SetContext replaces the current context. Analysis of a fragment without
// header starts with SetContext(AwaitingOpcode{}).
func (a *Analyzer) SetContext(c Context) { a.context = c }

// Line returns the number of physical lines consumed so far
func (a *Analyzer) Line() int { return a.line }

// ArgumentOrder returns the 1-based position of the last argument token
func (a *Analyzer) ArgumentOrder() int { return a.argIndex }

// NextToken returns the next token. Once the input is exhausted it keeps
// returning an EOF token.
func (a *Analyzer) NextToken() (token.Token, error) {
	switch c := a.context.(type) {
	case AwaitingHeader:
		return a.headerToken()
	case AwaitingOpcode:
		return a.opcodeToken()
	case AwaitingArgument:
		return a.argumentToken(c.Operation)
	default:
		return token.Token{}, ippcerr.Wrap(ErrInvalidContext, "analyzer").
			WithCode(ippcerr.CodeInvalidContext).
			WithDetail("context", c)
	}
}

// Tokenize returns all tokens up to and including EOF
func (a *Analyzer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := a.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

func (a *Analyzer) headerToken() (token.Token, error) {
	raw, eof, err := a.readLine()
	if err != nil {
		return token.Token{}, err
	}
	if eof {
		return token.Token{}, newEOFError(a.line, "header")
	}

	line := a.clean(raw)
	a.context = AwaitingOpcode{}

	if line != a.grammar.Header() {
		return token.Token{}, newSourceError(LexicalError, a.line, "header", line)
	}
	return token.New(token.Header, line), nil
}

func (a *Analyzer) opcodeToken() (token.Token, error) {
	raw, eof, err := a.readLine()
	if err != nil {
		return token.Token{}, err
	}
	if eof {
		return token.New(token.EOF, ""), nil
	}

	line := a.clean(raw)
	if line == "" {
		return token.New(token.EOL, ""), nil
	}

	parts := a.grammar.SplitInstruction(line)
	if !a.grammar.IsValidOperation(parts[0]) {
		return token.Token{}, newSourceError(LexicalError, a.line, "opcode", parts[0])
	}

	op := strings.ToUpper(parts[0])
	a.pending = parts[1:]
	a.argIndex = 0
	a.context = AwaitingArgument{Operation: op}
	a.Notify(event.LineOfCode)
	return token.New(token.Opcode, op), nil
}

func (a *Analyzer) argumentToken(op string) (token.Token, error) {
	a.argIndex++
	kind, expected := a.grammar.ArgumentKindAt(op, a.argIndex)
	remaining := len(a.pending) > 0

	switch {
	case !expected && !remaining:
		a.context = AwaitingOpcode{}
		return token.New(token.EOL, ""), nil
	case !expected:
		return token.Token{}, newSourceError(SyntaxError, a.line, "end of line", a.pending[0])
	case !remaining:
		return token.Token{}, newSourceError(SyntaxError, a.line, "argument", "")
	}

	raw := a.pending[0]
	tok, err := a.grammar.Classify(kind, raw)
	if errors.Is(err, lang.ErrInvalidArgument) {
		return token.Token{}, newSourceError(LexicalError, a.line, "valid argument", raw)
	}
	if err != nil {
		return token.Token{}, err
	}
	a.pending = a.pending[1:]
	return tok, nil
}

// readLine consumes one physical line. eof is true when the input is
// exhausted; the line counter is not advanced in that case.
func (a *Analyzer) readLine() (line string, eof bool, err error) {
	line, err = a.source.NextLine()
	if errors.Is(err, io.EOF) {
		return "", true, nil
	}
	if err != nil {
		return "", false, ippcerr.Wrap(err, "read source").
			WithCode(ippcerr.CodeInputOpen).
			WithDetail("line", a.line+1)
	}
	a.line++
	return line, false, nil
}

// clean strips the comment and surrounding whitespace from a raw line,
// publishing a comment event when a marker was present
func (a *Analyzer) clean(raw string) string {
	code, commented := a.grammar.StripComment(raw)
	if commented {
		a.Notify(event.Comment)
	}
	return strings.Trim(code, trimSet)
}
