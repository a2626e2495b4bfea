// ============================================================================
// ippcode - IPPcode18 Werkzeugkette
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating foundation loggers from config
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	ippclog "github.com/msto63/ippcode/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service or command name
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: "text", "json" or "logfmt" (default: text)
	Format string

	// Primary output, stderr when nil
	Output io.Writer

	// Additional outputs besides the primary one
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "text",
	}
}

// NewLogger creates a foundation logger. Unknown level or format names
// fall back to info and text.
func NewLogger(cfg LoggerConfig) *ippclog.Logger {
	level, err := ippclog.ParseLevel(cfg.Level)
	if err != nil {
		level = ippclog.LevelInfo
	}
	format, err := ippclog.ParseFormat(cfg.Format)
	if err != nil {
		format = ippclog.FormatText
	}

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		output = io.MultiWriter(append([]io.Writer{output}, cfg.AdditionalOutputs...)...)
	}

	return ippclog.NewWithConfig(ippclog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.ServiceName,
	})
}

// NewSimpleLogger creates a text logger at info level on stderr
func NewSimpleLogger(serviceName string) *ippclog.Logger {
	return NewLogger(DefaultLoggerConfig(serviceName))
}
