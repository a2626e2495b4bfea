// ============================================================================
// ippcode - IPPcode18 Werkzeugkette
// ============================================================================
//
// Package:     translator
// Description: Drives the analyzer and feeds the XML builder
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package translator

import (
	"context"
	"io"
	"strings"
	"time"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
	"github.com/msto63/ippcode/pkg/core/logging"
	"github.com/msto63/ippcode/pkg/ippcode/analyzer"
	"github.com/msto63/ippcode/pkg/ippcode/lang"
	"github.com/msto63/ippcode/pkg/ippcode/stats"
	"github.com/msto63/ippcode/pkg/ippcode/token"
	"github.com/msto63/ippcode/pkg/ippcode/xmlout"
)

// Result is the outcome of one translation
type Result struct {
	XML          string
	Instructions int
	Stats        *stats.Collector
	Duration     time.Duration
}

// TokenInfo is one token together with the argument position reported
// by the analyzer. Position is 0 for non-argument tokens.
type TokenInfo struct {
	Token    token.Token
	Position int
	Line     int
}

// Config holds service configuration
type Config struct {
	Grammar  *lang.Grammar
	Language string
	Indent   string
	Logger   *logging.Logger
}

// Service translates IPPcode18 source into the XML program representation
type Service struct {
	logger  *logging.Logger
	grammar *lang.Grammar
	output  xmlout.Options
}

// NewService creates a new translator service. Empty fields fall back to
// the IPPcode18 defaults.
func NewService(cfg Config) (*Service, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("translator")
	}

	grammar := cfg.Grammar
	if grammar == nil {
		grammar = lang.IPPcode18()
	}

	output := xmlout.DefaultOptions()
	if cfg.Language != "" {
		output.Language = cfg.Language
	}
	if cfg.Indent != "" {
		if strings.Trim(cfg.Indent, " \t") != "" {
			return nil, ippcerr.New("indent must consist of spaces and tabs").
				WithCode(ippcerr.CodeInvalidParameter).
				WithOperation("translator.NewService").
				WithDetail("indent", cfg.Indent)
		}
		output.Indent = cfg.Indent
	}

	return &Service{
		logger:  logger,
		grammar: grammar,
		output:  output,
	}, nil
}

// Grammar returns the grammar used by the service
func (s *Service) Grammar() *lang.Grammar {
	return s.grammar
}

// Translate reads the complete source from r and returns the XML document.
// The translation is all-or-nothing: on error no document is returned.
func (s *Service) Translate(ctx context.Context, r io.Reader) (*Result, error) {
	timer := s.logger.StartTimer("translate")

	collector := stats.NewCollector()
	a := analyzer.New(s.grammar, r)
	a.Attach(collector)

	b := xmlout.NewBuilder(s.output)
	b.Open()

	for {
		if err := ctx.Err(); err != nil {
			timer.Stop()
			return nil, err
		}

		tok, err := a.NextToken()
		if err != nil {
			timer.Stop()
			s.logger.Debug("Translation failed", "line", a.Line(), "error", err)
			return nil, err
		}

		switch {
		case tok.Kind == token.EOF:
			if b.InstructionOpen() {
				b.EndInstruction()
			}
			b.Close()
			result := &Result{
				XML:          b.Serialize(),
				Instructions: b.Instructions(),
				Stats:        collector,
				Duration:     timer.Stop(),
			}
			s.logger.Debug("Translation finished",
				"instructions", result.Instructions,
				"loc", collector.LinesOfCode(),
				"comments", collector.Comments(),
			)
			return result, nil
		case tok.Kind == token.Header:
		case tok.Kind == token.Opcode:
			b.StartInstruction(tok.Data)
		case tok.Kind == token.EOL:
			if b.InstructionOpen() {
				b.EndInstruction()
			}
		case tok.Kind.IsArgument():
			b.AddArgument(a.ArgumentOrder(), tok.Kind, tok.Data)
		}
	}
}

// TranslateString translates an in-memory source
func (s *Service) TranslateString(ctx context.Context, src string) (*Result, error) {
	return s.Translate(ctx, strings.NewReader(src))
}

// Tokens returns the token stream of r up to and including EOF. On error
// the tokens read so far are returned together with the error.
func (s *Service) Tokens(ctx context.Context, r io.Reader) ([]TokenInfo, error) {
	a := analyzer.New(s.grammar, r)

	var tokens []TokenInfo
	for {
		if err := ctx.Err(); err != nil {
			return tokens, err
		}

		tok, err := a.NextToken()
		if err != nil {
			return tokens, err
		}

		info := TokenInfo{Token: tok, Line: a.Line()}
		if tok.Kind.IsArgument() {
			info.Position = a.ArgumentOrder()
		}
		tokens = append(tokens, info)

		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

// ReturnCode maps the outcome of a translation onto a process exit code
func ReturnCode(err error) int {
	return ippcerr.ExitCode(err)
}
