// File: writer.go
// Title: Push-Style XML Writer
// Description: A streaming XML writer with open-element, attribute, text and
//              close-element primitives. Elements without content are written
//              self-closed; elements with child elements get their closing tag
//              on its own indented line.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19

package xmlout

import (
	"bytes"
	"strings"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
)

type frame struct {
	name     string
	children bool
}

// Writer writes one XML document into memory. Misuse panics with a
// CONTRACT_VIOLATION error.
type Writer struct {
	buf     bytes.Buffer
	indent  string
	stack   []frame
	tagOpen bool // start tag written without its closing '>'
	started bool
	ended   bool
}

// NewWriter returns a writer indenting nested elements with indent
func NewWriter(indent string) *Writer {
	return &Writer{indent: indent}
}

// StartDocument writes the XML declaration
func (w *Writer) StartDocument(version, encoding string) {
	if w.started {
		violation("document already started")
	}
	w.started = true
	w.buf.WriteString(`<?xml version="`)
	w.buf.WriteString(escapeAttribute(version))
	w.buf.WriteString(`" encoding="`)
	w.buf.WriteString(escapeAttribute(encoding))
	w.buf.WriteString("\"?>\n")
}

// StartElement opens an element as child of the current one
func (w *Writer) StartElement(name string) {
	if !w.started || w.ended {
		violation("element outside of document")
	}
	if name == "" {
		violation("empty element name")
	}
	if len(w.stack) > 0 {
		w.closeStartTag()
		w.stack[len(w.stack)-1].children = true
		w.buf.WriteByte('\n')
		w.buf.WriteString(strings.Repeat(w.indent, len(w.stack)))
	} else if w.buf.Len() > 0 && !bytes.HasSuffix(w.buf.Bytes(), []byte("\n")) {
		violation("document has a root element already")
	}
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	w.stack = append(w.stack, frame{name: name})
	w.tagOpen = true
}

// Attribute adds an attribute to the element just started
func (w *Writer) Attribute(name, value string) {
	if !w.tagOpen {
		violation("attribute " + name + " outside of a start tag")
	}
	w.buf.WriteByte(' ')
	w.buf.WriteString(name)
	w.buf.WriteString(`="`)
	w.buf.WriteString(escapeAttribute(value))
	w.buf.WriteByte('"')
}

// Text writes character data into the current element. Empty text still
// ends the start tag, so the element is not self-closed.
func (w *Writer) Text(s string) {
	if len(w.stack) == 0 {
		violation("text outside of an element")
	}
	w.closeStartTag()
	w.buf.WriteString(escapeText(s))
}

// EndElement closes the current element
func (w *Writer) EndElement() {
	if len(w.stack) == 0 {
		violation("no element to end")
	}
	top := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]

	switch {
	case w.tagOpen:
		w.buf.WriteString("/>")
		w.tagOpen = false
	case top.children:
		w.buf.WriteByte('\n')
		w.buf.WriteString(strings.Repeat(w.indent, len(w.stack)))
		fallthrough
	default:
		w.buf.WriteString("</")
		w.buf.WriteString(top.name)
		w.buf.WriteByte('>')
	}
}

// EndDocument closes every open element and terminates the last line
func (w *Writer) EndDocument() {
	if !w.started || w.ended {
		violation("document not open")
	}
	for len(w.stack) > 0 {
		w.EndElement()
	}
	w.buf.WriteByte('\n')
	w.ended = true
}

// Depth returns the number of open elements
func (w *Writer) Depth() int { return len(w.stack) }

// Bytes returns the document written so far
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// String returns the document written so far
func (w *Writer) String() string { return w.buf.String() }

func (w *Writer) closeStartTag() {
	if w.tagOpen {
		w.buf.WriteByte('>')
		w.tagOpen = false
	}
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\t", "&#9;", "\n", "&#10;", "\r", "&#13;",
	)
)

func escapeText(s string) string      { return textEscaper.Replace(s) }
func escapeAttribute(s string) string { return attrEscaper.Replace(s) }

func violation(msg string) {
	panic(ippcerr.New(msg).WithCode(ippcerr.CodeContractViolation).WithOperation("xml"))
}
