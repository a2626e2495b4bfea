// File: grammar.go
// Title: IPPcode18 Grammar Table
// Description: Static description of the source language: header literal,
//              comment marker, instruction table and the regular grammar of
//              each operand kind. Operand classification is driven by an
//              ordered list of (pattern, token kind) alternatives; the first
//              alternative that matches decides the token kind and payload.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package lang

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
	"github.com/msto63/ippcode/pkg/ippcode/token"
)

// ArgKind is the grammatical category expected at an operand position
type ArgKind int

const (
	ArgNone ArgKind = iota
	ArgVariable
	ArgSymbol
	ArgLabel
	ArgType
)

// String returns the short name of the operand kind
func (k ArgKind) String() string {
	switch k {
	case ArgNone:
		return "none"
	case ArgVariable:
		return "var"
	case ArgSymbol:
		return "symb"
	case ArgLabel:
		return "label"
	case ArgType:
		return "type"
	default:
		return fmt.Sprintf("ArgKind(%d)", int(k))
	}
}

// ErrInvalidArgument is returned by Classify when the text does not match
// the grammar of the requested kind
var ErrInvalidArgument = errors.New("invalid argument")

// Instruction is an entry of the instruction table
type Instruction struct {
	Name string
	Args []ArgKind
}

// Definition is the data a Grammar is built from
type Definition struct {
	Header        string
	CommentMarker string
	Language      string
	Instructions  []Instruction
}

// alternative is one way an operand kind can match
type alternative struct {
	re    *regexp.Regexp
	kind  token.Kind
	group int // capture group holding the payload, 0 for the whole match
}

// Grammar is an immutable language description. It is safe for
// concurrent use.
type Grammar struct {
	header        string
	commentMarker string
	language      string
	order         []string
	instructions  map[string][]ArgKind
	patterns      map[ArgKind][]alternative
}

const (
	identifier = `[a-zA-Z_\-$&%*][a-zA-Z0-9_\-$&%*]*`
	variable   = `(?:GF|LF|TF)@` + identifier
)

var instructionSplitter = regexp.MustCompile(`[ \t\n\v\f\r]+`)

// New builds a grammar from a definition. Operation names are stored
// upper-case.
func New(def Definition) (*Grammar, error) {
	if def.Header == "" {
		return nil, ippcerr.New("grammar header must not be empty").WithCode(ippcerr.CodeConfigError)
	}
	if def.CommentMarker == "" {
		return nil, ippcerr.New("comment marker must not be empty").WithCode(ippcerr.CodeConfigError)
	}

	g := &Grammar{
		header:        def.Header,
		commentMarker: def.CommentMarker,
		language:      def.Language,
		instructions:  make(map[string][]ArgKind, len(def.Instructions)),
	}
	for _, in := range def.Instructions {
		name := strings.ToUpper(in.Name)
		if _, dup := g.instructions[name]; dup {
			return nil, ippcerr.Newf("duplicate instruction %s", name).WithCode(ippcerr.CodeConfigError)
		}
		args := make([]ArgKind, len(in.Args))
		copy(args, in.Args)
		g.instructions[name] = args
		g.order = append(g.order, name)
	}

	excluded := escapeForClass(def.CommentMarker)
	g.patterns = map[ArgKind][]alternative{
		ArgVariable: {
			{re: anchored(variable), kind: token.ArgVar},
		},
		ArgSymbol: {
			{re: anchored(variable), kind: token.ArgVar},
			{re: anchored(`int@([+-]?[0-9]+)`), kind: token.ArgInt, group: 1},
			{re: anchored(`bool@(true|false)`), kind: token.ArgBool, group: 1},
			{re: anchored(`string@((?:[^\t\n\v\f\r \\` + excluded + `]|\\[0-9]{3})*)`), kind: token.ArgString, group: 1},
		},
		ArgLabel: {
			{re: anchored(identifier), kind: token.ArgLabel},
		},
		ArgType: {
			{re: anchored(`(int|string|bool)`), kind: token.ArgType, group: 1},
		},
	}
	return g, nil
}

func anchored(expr string) *regexp.Regexp {
	return regexp.MustCompile(`^` + expr + `$`)
}

// escapeForClass writes every rune of s as a \x{...} escape usable inside
// a character class
func escapeForClass(s string) string {
	var b strings.Builder
	for _, r := range s {
		fmt.Fprintf(&b, `\x{%x}`, r)
	}
	return b.String()
}

var (
	defaultOnce    sync.Once
	defaultGrammar *Grammar
)

// IPPcode18 returns the shared IPPcode18 grammar
func IPPcode18() *Grammar {
	defaultOnce.Do(func() {
		g, err := New(Definition{
			Header:        IPPcode18Header,
			CommentMarker: IPPcode18CommentMarker,
			Language:      IPPcode18Language,
			Instructions:  ippcode18Instructions,
		})
		if err != nil {
			panic(err)
		}
		defaultGrammar = g
	})
	return defaultGrammar
}

// Header returns the required first line
func (g *Grammar) Header() string { return g.header }

// CommentMarker returns the string that starts a comment
func (g *Grammar) CommentMarker() string { return g.commentMarker }

// Language returns the value of the program element's language attribute
func (g *Grammar) Language() string { return g.language }

// Operations returns the operation names in table order
func (g *Grammar) Operations() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// SortedOperations returns the operation names in lexical order
func (g *Grammar) SortedOperations() []string {
	out := g.Operations()
	sort.Strings(out)
	return out
}

// IsValidOperation reports whether name is an operation, ignoring case.
// Surrounding whitespace makes a name invalid.
func (g *Grammar) IsValidOperation(name string) bool {
	_, ok := g.instructions[strings.ToUpper(name)]
	return ok
}

// Arity returns the number of operands of an operation, or -1 if the
// operation is unknown
func (g *Grammar) Arity(op string) int {
	args, ok := g.instructions[strings.ToUpper(op)]
	if !ok {
		return -1
	}
	return len(args)
}

// ArgumentKindAt returns the kind expected at 1-based position n of op.
// The boolean is false when n exceeds the arity or op is unknown.
func (g *Grammar) ArgumentKindAt(op string, n int) (ArgKind, bool) {
	args, ok := g.instructions[strings.ToUpper(op)]
	if !ok || n < 1 || n > len(args) {
		return ArgNone, false
	}
	return args[n-1], true
}

// IsValidArgument reports whether raw matches the grammar of kind
func (g *Grammar) IsValidArgument(kind ArgKind, raw string) bool {
	_, err := g.Classify(kind, raw)
	return err == nil
}

// Classify validates raw against the grammar of kind and returns the token
// it stands for. A symbol resolves to a variable, int, bool or string
// token; string payloads keep their escape sequences undecoded.
func (g *Grammar) Classify(kind ArgKind, raw string) (token.Token, error) {
	alternatives, ok := g.patterns[kind]
	if !ok {
		return token.Token{}, ippcerr.Newf("no grammar for argument kind %s", kind).
			WithCode(ippcerr.CodeInternal)
	}
	for _, alt := range alternatives {
		m := alt.re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		return token.New(alt.kind, m[alt.group]), nil
	}
	return token.Token{}, ErrInvalidArgument
}

// SplitInstruction splits a trimmed instruction line into the operation
// name and its raw operands
func (g *Grammar) SplitInstruction(line string) []string {
	return instructionSplitter.Split(line, -1)
}

// StripComment cuts line at the first comment marker. The boolean reports
// whether a marker was present.
func (g *Grammar) StripComment(line string) (string, bool) {
	if i := strings.Index(line, g.commentMarker); i >= 0 {
		return line[:i], true
	}
	return line, false
}
