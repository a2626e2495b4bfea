// Package log provides structured logging for the IPPcode18 tool chain.
//
// Package: log
// Title: Structured Logging
// Description: A small levelled logger with persistent fields, named child
//              loggers, pluggable formatters (text, json, logfmt) and timers
//              for measuring operations. Diagnostics go to stderr so that
//              stdout stays free for generated documents.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{Level: log.LevelDebug, Format: log.FormatText})
//	logger.WithField("file", path).Info("translation finished", log.Fields{"instructions": n})
//
//	timer := logger.StartTimer("parse")
//	defer timer.Stop()
package log
