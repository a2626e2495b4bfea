// File: token.go
// Title: IPPcode18 Lexical Tokens
// Description: Token values produced by the source analyzer. A token is a
//              kind tag plus an optional string payload; two tokens with the
//              same kind and payload are interchangeable.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package token

import "fmt"

// Kind represents the type of a lexical token
type Kind int

const (
	// Structural tokens
	Header Kind = iota
	Opcode
	EOL
	EOF

	// Argument tokens
	ArgVar    // GF@x
	ArgInt    // int@-5
	ArgBool   // bool@true
	ArgString // string@a\032b
	ArgLabel  // loop
	ArgType   // int, string, bool
)

var kindNames = map[Kind]string{
	Header:    "HEADER",
	Opcode:    "OPCODE",
	EOL:       "EOL",
	EOF:       "EOF",
	ArgVar:    "var",
	ArgInt:    "int",
	ArgBool:   "bool",
	ArgString: "string",
	ArgLabel:  "label",
	ArgType:   "type",
}

// String returns the kind name. For argument kinds this is the value of
// the type attribute in the generated document.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsArgument reports whether tokens of this kind are instruction operands
func (k Kind) IsArgument() bool {
	return k >= ArgVar && k <= ArgType
}

// Token is a single lexical token
type Token struct {
	Kind Kind   // Token kind
	Data string // Payload; empty for EOL and EOF
}

// New creates a token
func New(kind Kind, data string) Token {
	return Token{Kind: kind, Data: data}
}

// String returns a debugging representation, e.g. var(GF@x) or EOL
func (t Token) String() string {
	if t.Data == "" && !t.Kind.IsArgument() {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", t.Kind, t.Data)
}
