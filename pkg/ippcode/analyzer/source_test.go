package analyzer

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"
)

func readAll(t *testing.T, src LineSource) []string {
	t.Helper()
	var lines []string
	for {
		line, err := src.NextLine()
		if errors.Is(err, io.EOF) {
			return lines
		}
		if err != nil {
			t.Fatalf("NextLine() error = %v", err)
		}
		lines = append(lines, line)
	}
}

func TestLineReader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty input", "", nil},
		{"no trailing newline", "X", []string{"X"}},
		{"trailing newline", "X\n", []string{"X\n", ""}},
		{"single newline", "\n", []string{"\n", ""}},
		{"two lines", "a\nb", []string{"a\n", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a\r\n", "b\r\n", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readAll(t, NewLineReader(strings.NewReader(tt.input)))
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("lines = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestLineReader_EOFIsSticky(t *testing.T) {
	lr := NewLineReader(strings.NewReader("X"))
	if _, err := lr.NextLine(); err != nil {
		t.Fatalf("first NextLine() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := lr.NextLine(); !errors.Is(err, io.EOF) {
			t.Fatalf("NextLine() #%d error = %v, want io.EOF", i, err)
		}
	}
}

func TestLineReader_ReadError(t *testing.T) {
	boom := errors.New("boom")
	lr := NewLineReader(iotest.ErrReader(boom))
	if _, err := lr.NextLine(); !errors.Is(err, boom) {
		t.Fatalf("NextLine() error = %v, want boom", err)
	}
	if _, err := lr.NextLine(); !errors.Is(err, boom) {
		t.Fatalf("second NextLine() error = %v, want boom", err)
	}
}

func TestSliceSource(t *testing.T) {
	got := readAll(t, NewSliceSource("a", "", "b"))
	if !reflect.DeepEqual(got, []string{"a", "", "b"}) {
		t.Errorf("lines = %q", got)
	}
}
