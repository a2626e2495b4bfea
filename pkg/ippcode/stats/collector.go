// File: collector.go
// Title: Source Statistics Collector
// Description: Counts comments and lines of code by listening to analyzer
//              events, and writes the statistics file of the parse command.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19

package stats

import (
	"fmt"
	"io"

	"github.com/msto63/ippcode/pkg/ippcode/event"
)

// Collector counts analyzer events. Unknown events are ignored.
type Collector struct {
	comments    int
	linesOfCode int
}

// NewCollector returns a collector with both counters at zero
func NewCollector() *Collector {
	return &Collector{}
}

// OnEvent implements event.Listener
func (c *Collector) OnEvent(e event.Event) {
	switch e {
	case event.Comment:
		c.comments++
	case event.LineOfCode:
		c.linesOfCode++
	}
}

// Comments returns the number of lines that carried a comment
func (c *Collector) Comments() int { return c.comments }

// LinesOfCode returns the number of instruction lines
func (c *Collector) LinesOfCode() int { return c.linesOfCode }

// Metric selects one line of the statistics file
type Metric int

const (
	MetricLinesOfCode Metric = iota
	MetricComments
)

// String returns the metric name
func (m Metric) String() string {
	switch m {
	case MetricLinesOfCode:
		return "loc"
	case MetricComments:
		return "comments"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// Value returns the counter selected by m
func (c *Collector) Value(m Metric) (int, error) {
	switch m {
	case MetricLinesOfCode:
		return c.linesOfCode, nil
	case MetricComments:
		return c.comments, nil
	default:
		return 0, fmt.Errorf("unknown metric %v", m)
	}
}

// Source is anything that can answer a metric, e.g. a Collector or a
// remote translation result
type Source interface {
	Value(m Metric) (int, error)
}

// Write writes one number per line, in the order given by metrics
func Write(w io.Writer, src Source, metrics []Metric) error {
	for _, m := range metrics {
		v, err := src.Value(m)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%d\n", v); err != nil {
			return err
		}
	}
	return nil
}

// WriteReport writes the collected statistics in the order given by metrics
func (c *Collector) WriteReport(w io.Writer, metrics []Metric) error {
	return Write(w, c, metrics)
}
