// File: builder.go
// Title: Program Document Builder
// Description: Builds the program document from instruction and argument
//              calls in source order. Instructions get a global 1-based order
//              number; argument elements are named after their position.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19

package xmlout

import (
	"strconv"

	"github.com/msto63/ippcode/pkg/ippcode/lang"
	"github.com/msto63/ippcode/pkg/ippcode/token"
)

// Element and attribute names of the program document
const (
	ElementProgram     = "program"
	ElementInstruction = "instruction"
	ElementArgPrefix   = "arg"

	AttrLanguage = "language"
	AttrOrder    = "order"
	AttrOpcode   = "opcode"
	AttrType     = "type"

	XMLVersion  = "1.0"
	XMLEncoding = "UTF-8"
)

// Options configures a Builder
type Options struct {
	Language string // value of the program element's language attribute
	Indent   string // indentation per nesting level
}

// DefaultOptions returns the options for IPPcode18 output
func DefaultOptions() Options {
	return Options{Language: lang.IPPcode18Language, Indent: "  "}
}

type builderState int

const (
	stateNew builderState = iota
	stateProgram
	stateInstruction
	stateClosed
)

// Builder assembles one program document. Calls out of order panic with a
// CONTRACT_VIOLATION error.
type Builder struct {
	opts  Options
	w     *Writer
	state builderState
	order int
}

// NewBuilder creates a builder; call Open before anything else
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts, w: NewWriter(opts.Indent), order: 1}
}

// Open starts the document and the program element
func (b *Builder) Open() {
	b.expect(stateNew, "Open")
	b.w.StartDocument(XMLVersion, XMLEncoding)
	b.w.StartElement(ElementProgram)
	b.w.Attribute(AttrLanguage, b.opts.Language)
	b.order = 1
	b.state = stateProgram
}

// StartInstruction opens an instruction element with the next order number
func (b *Builder) StartInstruction(opcode string) {
	b.expect(stateProgram, "StartInstruction")
	b.w.StartElement(ElementInstruction)
	b.w.Attribute(AttrOrder, strconv.Itoa(b.order))
	b.w.Attribute(AttrOpcode, opcode)
	b.order++
	b.state = stateInstruction
}

// AddArgument adds argument element arg<position> to the open instruction
func (b *Builder) AddArgument(position int, kind token.Kind, text string) {
	b.expect(stateInstruction, "AddArgument")
	if position < 1 {
		violation("argument position " + strconv.Itoa(position) + " out of range")
	}
	if !kind.IsArgument() {
		violation("token kind " + kind.String() + " is not an argument")
	}
	b.w.StartElement(ElementArgPrefix + strconv.Itoa(position))
	b.w.Attribute(AttrType, kind.String())
	b.w.Text(text)
	b.w.EndElement()
}

// EndInstruction closes the open instruction element
func (b *Builder) EndInstruction() {
	b.expect(stateInstruction, "EndInstruction")
	b.w.EndElement()
	b.state = stateProgram
}

// Close ends the program element and the document
func (b *Builder) Close() {
	b.expect(stateProgram, "Close")
	b.w.EndElement()
	b.w.EndDocument()
	b.state = stateClosed
}

// Serialize returns the finished document
func (b *Builder) Serialize() string {
	b.expect(stateClosed, "Serialize")
	return b.w.String()
}

// InstructionOpen reports whether an instruction element is open
func (b *Builder) InstructionOpen() bool {
	return b.state == stateInstruction
}

// Instructions returns the number of instructions started so far
func (b *Builder) Instructions() int {
	return b.order - 1
}

func (b *Builder) expect(s builderState, call string) {
	if b.state != s {
		violation(call + " called " + b.state.describe())
	}
}

func (s builderState) describe() string {
	switch s {
	case stateNew:
		return "before Open"
	case stateProgram:
		return "with no instruction open"
	case stateInstruction:
		return "while an instruction is open"
	default:
		return "after Close"
	}
}
