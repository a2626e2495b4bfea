package tester

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
)

// FileKind identifies one file of a test case
type FileKind int

const (
	FileSource FileKind = iota
	FileInput
	FileOutput
	FileReturnCode
)

// Extensions maps each file kind to its file extension
type Extensions struct {
	Source     string
	Input      string
	Output     string
	ReturnCode string
}

// DefaultExtensions returns .src, .in, .out and .rc
func DefaultExtensions() Extensions {
	return Extensions{Source: ".src", Input: ".in", Output: ".out", ReturnCode: ".rc"}
}

func (e Extensions) of(kind FileKind) string {
	switch kind {
	case FileInput:
		return e.Input
	case FileOutput:
		return e.Output
	case FileReturnCode:
		return e.ReturnCode
	default:
		return e.Source
	}
}

// defaultContent is written for missing reference files
var defaultContent = map[FileKind]string{
	FileInput:      "",
	FileOutput:     "",
	FileReturnCode: "0",
}

// Case is one discovered test case
type Case struct {
	Name      string // base name without extension
	Directory string // directory relative to the discovery root
	paths     map[FileKind]string
}

// Path returns the path of one file of the case
func (c Case) Path(kind FileKind) string {
	return c.paths[kind]
}

// ID returns the case name qualified with its directory
func (c Case) ID() string {
	if c.Directory == "" || c.Directory == "." {
		return c.Name
	}
	return filepath.ToSlash(filepath.Join(c.Directory, c.Name))
}

// ExpectedReturnCode reads and parses the .rc file
func (c Case) ExpectedReturnCode() (int, error) {
	data, err := os.ReadFile(c.Path(FileReturnCode))
	if err != nil {
		return 0, ippcerr.Wrap(err, "read return code file").
			WithCode(ippcerr.CodeInputOpen).
			WithDetail("path", c.Path(FileReturnCode))
	}

	rc, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, ippcerr.Wrap(err, "invalid return code").
			WithCode(ippcerr.CodeInvalidParameter).
			WithDetail("path", c.Path(FileReturnCode))
	}
	return rc, nil
}

// DiscoverOptions controls Discover
type DiscoverOptions struct {
	Directory  string
	Recursive  bool
	Extensions Extensions
}

// Discover finds all test cases below opts.Directory, sorted by ID.
// Missing reference files are generated with default content.
func Discover(opts DiscoverOptions) ([]Case, error) {
	if opts.Directory == "" {
		opts.Directory = "."
	}
	if opts.Extensions == (Extensions{}) {
		opts.Extensions = DefaultExtensions()
	}

	info, err := os.Stat(opts.Directory)
	if err != nil {
		return nil, ippcerr.Wrap(err, "open test directory").
			WithCode(ippcerr.CodeInputOpen).
			WithDetail("directory", opts.Directory)
	}
	if !info.IsDir() {
		return nil, ippcerr.Newf("%s is not a directory", opts.Directory).
			WithCode(ippcerr.CodeInvalidParameter)
	}

	var cases []Case
	err = filepath.WalkDir(opts.Directory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != opts.Directory && !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), opts.Extensions.Source) {
			return nil
		}

		c, err := newCase(opts.Directory, path, opts.Extensions)
		if err != nil {
			return err
		}
		cases = append(cases, c)
		return nil
	})
	if err != nil {
		if _, ok := ippcerr.As(err); ok {
			return nil, err
		}
		return nil, ippcerr.Wrap(err, "walk test directory").
			WithCode(ippcerr.CodeInputOpen).
			WithDetail("directory", opts.Directory)
	}

	sort.Slice(cases, func(i, j int) bool { return cases[i].ID() < cases[j].ID() })
	return cases, nil
}

func newCase(root, srcPath string, ext Extensions) (Case, error) {
	dir, err := filepath.Rel(root, filepath.Dir(srcPath))
	if err != nil {
		dir = filepath.Dir(srcPath)
	}
	base := strings.TrimSuffix(srcPath, filepath.Ext(srcPath))

	c := Case{
		Name:      filepath.Base(base),
		Directory: dir,
		paths:     map[FileKind]string{FileSource: srcPath},
	}

	for _, kind := range []FileKind{FileInput, FileOutput, FileReturnCode} {
		path := base + ext.of(kind)
		c.paths[kind] = path
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(defaultContent[kind]), 0644); err != nil {
			return Case{}, ippcerr.Wrap(err, "create reference file").
				WithCode(ippcerr.CodeOutputOpen).
				WithDetail("path", path)
		}
	}
	return c, nil
}
