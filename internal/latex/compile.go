// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdiddy/latex2pdfa/internal/toolchain"
)

// Compiler runs the LaTeX and bibliography passes for a project.
type Compiler struct {
	Exec     toolchain.Executor
	PDFLaTeX toolchain.Tool
	BibTeX   toolchain.Tool

	// ExtraArgs are appended to every pdflatex invocation.
	ExtraArgs []string

	// SkipBibtex disables the bibliography pass unconditionally.
	SkipBibtex bool

	// Verbose streams tool output to Out instead of capturing it.
	Verbose bool
	Out     io.Writer
}

// Compile resolves cross-references the conventional way: pdflatex, the
// bibliography pass when the first pass produced citations, then two more
// pdflatex passes. texPath must be the main tex file of the project.
func (c *Compiler) Compile(texPath string) error {
	dir := filepath.Dir(texPath)
	base := filepath.Base(texPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	args := []string{"-no-shell-escape", "-interaction=nonstopmode"}
	args = append(args, c.ExtraArgs...)
	args = append(args, base)

	opts := toolchain.RunOptions{Dir: dir, Verbose: c.Verbose, Stdout: c.Out, Stderr: c.Out}

	if err := c.latexPass(args, opts); err != nil {
		return fmt.Errorf("first pdflatex pass: %w", err)
	}

	aux := filepath.Join(dir, stem+".aux")
	if !c.SkipBibtex && HasBibliography(aux) {
		if _, err := toolchain.Run(c.Exec, c.BibTeX, []string{stem}, opts); err != nil {
			return fmt.Errorf("bibliography pass: %w", err)
		}
	}

	// Two settling passes so references and the bibliography land.
	for pass := 2; pass <= 3; pass++ {
		if err := c.latexPass(args, opts); err != nil {
			return fmt.Errorf("pdflatex pass %d: %w", pass, err)
		}
	}

	return nil
}

func (c *Compiler) latexPass(args []string, opts toolchain.RunOptions) error {
	out, err := toolchain.Run(c.Exec, c.PDFLaTeX, args, opts)
	if err != nil {
		return err
	}
	// Nonstopmode can report a fatal error while exiting zero; catch it.
	if msg := FatalError(out); msg != "" {
		return errors.New(msg)
	}
	return nil
}

var fatalErrorRe = regexp.MustCompile(`(?s)Fatal error.*`)

// FatalError extracts the fatal error message from pdflatex output, or
// returns the empty string when the output shows none.
func FatalError(output string) string {
	return strings.TrimSpace(fatalErrorRe.FindString(output))
}
