// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolchain resolves and executes the external programs the
// pipeline drives. Every tool can be pinned to an explicit path through
// configuration; otherwise it is looked up on PATH under its conventional
// binary name.
// Implements: prd001-conversion R2 (external tool strategy);
//
//	docs/ARCHITECTURE § External Tools.
package toolchain

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/pdiddy/latex2pdfa/pkg/types"
)

// Conventional binary names used for PATH lookup.
const (
	binPDFLaTeX    = "pdflatex"
	binBibTeX      = "bibtex"
	binGhostscript = "gs"
	binExifTool    = "exiftool"
	binQPDF        = "qpdf"
	binVeraPDF     = "verapdf"
)

// Executor abstracts command execution for testing.
type Executor interface {
	// LookPath searches for an executable in PATH.
	LookPath(file string) (string, error)

	// Run executes name with args in dir and returns the combined output.
	Run(dir, name string, args ...string) (string, error)

	// RunStreaming executes name with args in dir, writing stdout and
	// stderr through as the process produces them.
	RunStreaming(dir string, stdout, stderr io.Writer, name string, args ...string) error
}

// OSExecutor is the production executor backed by os/exec.
type OSExecutor struct{}

func (OSExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (OSExecutor) Run(dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func (OSExecutor) RunStreaming(dir string, stdout, stderr io.Writer, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Tool is one external executable the pipeline depends on.
type Tool struct {
	// Name is the conventional binary name, used in messages and for
	// PATH lookup when no explicit path is configured.
	Name string

	// Path is an explicit executable path from configuration. Empty
	// means resolve Name from PATH.
	Path string
}

// Command returns the argv[0] to execute: the explicit path when set,
// the conventional name otherwise.
func (t Tool) Command() string {
	if t.Path != "" {
		return t.Path
	}
	return t.Name
}

// Resolve reports the absolute location of the tool, or an error when the
// explicit path does not exist or the name cannot be found on PATH.
func (t Tool) Resolve(x Executor) (string, error) {
	if t.Path != "" {
		info, err := os.Stat(t.Path)
		if err != nil || info.IsDir() {
			return "", fmt.Errorf("%s path %s does not exist or is not a file", t.Name, t.Path)
		}
		return t.Path, nil
	}
	path, err := x.LookPath(t.Name)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", t.Name, err)
	}
	return path, nil
}

// Toolchain holds the resolved tool set for a pipeline run.
type Toolchain struct {
	PDFLaTeX    Tool
	BibTeX      Tool
	Ghostscript Tool
	ExifTool    Tool
	QPDF        Tool
	VeraPDF     Tool
}

// New builds a Toolchain from configuration. Empty config values fall back
// to the conventional binary names.
func New(cfg types.ToolsConfig) *Toolchain {
	return &Toolchain{
		PDFLaTeX:    Tool{Name: binPDFLaTeX, Path: cfg.PDFLaTeX},
		BibTeX:      Tool{Name: binBibTeX, Path: cfg.BibTeX},
		Ghostscript: Tool{Name: binGhostscript, Path: cfg.Ghostscript},
		ExifTool:    Tool{Name: binExifTool, Path: cfg.ExifTool},
		QPDF:        Tool{Name: binQPDF, Path: cfg.QPDF},
		VeraPDF:     Tool{Name: binVeraPDF, Path: cfg.VeraPDF},
	}
}

// Status describes the resolution outcome for one tool.
type Status struct {
	Tool Tool
	Path string
	Err  error
}

// Statuses resolves every tool and returns per-tool results. veraPDF is
// included only when withVeraPDF is set; it is optional for normal runs.
func (tc *Toolchain) Statuses(x Executor, withVeraPDF bool) []Status {
	tools := []Tool{tc.PDFLaTeX, tc.BibTeX, tc.Ghostscript, tc.ExifTool, tc.QPDF}
	if withVeraPDF {
		tools = append(tools, tc.VeraPDF)
	}
	statuses := make([]Status, 0, len(tools))
	for _, t := range tools {
		path, err := t.Resolve(x)
		statuses = append(statuses, Status{Tool: t, Path: path, Err: err})
	}
	return statuses
}

// Check verifies that every required tool resolves, returning an error
// naming the missing ones. needVerify adds veraPDF to the required set.
func (tc *Toolchain) Check(x Executor, needVerify bool) error {
	var missing []string
	for _, s := range tc.Statuses(x, needVerify) {
		if s.Err != nil {
			missing = append(missing, s.Err.Error())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing tools: %s", strings.Join(missing, "; "))
	}
	return nil
}
