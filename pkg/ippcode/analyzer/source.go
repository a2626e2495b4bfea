// File: source.go
// Title: Line Source
// Description: Supplies raw source lines to the analyzer. An input that ends
//              with a newline yields one final empty line; an empty input
//              yields no lines at all.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19

package analyzer

import (
	"bufio"
	"errors"
	"io"
)

// LineSource supplies source lines. NextLine returns io.EOF once the input
// is exhausted, and keeps returning it.
type LineSource interface {
	NextLine() (string, error)
}

// LineReader is a LineSource over an io.Reader
type LineReader struct {
	r          *bufio.Reader
	endedInNL  bool
	terminated bool
	err        error
}

// NewLineReader wraps r
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// NextLine returns the next line including its terminating newline, if any
func (lr *LineReader) NextLine() (string, error) {
	if lr.terminated {
		return "", lr.err
	}

	line, err := lr.r.ReadString('\n')
	if err == nil {
		lr.endedInNL = true
		return line, nil
	}

	lr.terminated = true
	if !errors.Is(err, io.EOF) {
		lr.err = err
		return "", err
	}

	lr.err = io.EOF
	if line != "" || lr.endedInNL {
		return line, nil
	}
	return "", io.EOF
}

// SliceSource is a LineSource over prepared lines
type SliceSource struct {
	lines []string
}

// NewSliceSource returns a source yielding lines in order
func NewSliceSource(lines ...string) *SliceSource {
	return &SliceSource{lines: lines}
}

// NextLine implements LineSource
func (s *SliceSource) NextLine() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}
