// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package latex prepares and compiles a LaTeX project for PDF/A output.
// It patches the main tex file with the pdfx preamble, drives the
// pdflatex/bibtex passes, and cleans auxiliary artifacts. The actual
// typesetting is delegated entirely to the external tools.
// Implements: prd002-compilation (R1-R4);
//
//	docs/ARCHITECTURE § Compilation.
package latex

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// markerName tags the injected blocks so a second run recognizes an
// already patched file.
const markerName = "latex2pdfa"

var (
	commentStart = strings.Repeat("%", 30) + markerName + strings.Repeat("%", 30)
	commentEnd   = strings.Repeat("%", len(commentStart))
)

// preludeCmds must appear before \documentclass so pdflatex emits objects
// the PDF/A rewrite can work with (no object streams, PDF 1.7, copied
// font programs for inclusions).
var preludeCmds = []string{
	`\pdfobjcompresslevel=0`,
	`\pdfminorversion=7`,
	`\pdfinclusioncopyfonts=1`,
}

// pdfxOptionRe matches a previously injected pdfx package line so the
// conformance profile can be rewritten in place on re-runs.
var pdfxOptionRe = regexp.MustCompile(`\\usepackage\[a-[123][abu]\]\{pdfx\}`)

// BackupSuffix is appended to the original tex file before the first patch.
const BackupSuffix = ".backup"

// Patch injects the PDF/A preamble into the main tex file. pdfxOption is
// the pdfx package option for the target profile, e.g. "a-1b". On the
// first patch the original file is preserved at texPath + BackupSuffix.
// A file patched by an earlier run only has its pdfx option rewritten.
// Patch reports whether the file had already been patched.
func Patch(texPath, pdfxOption string) (alreadyPatched bool, err error) {
	data, err := os.ReadFile(texPath)
	if err != nil {
		return false, fmt.Errorf("reading tex file: %w", err)
	}
	content := string(data)

	usepackage := fmt.Sprintf(`\usepackage[%s]{pdfx}`, pdfxOption)

	if strings.Contains(content, markerName) {
		updated := pdfxOptionRe.ReplaceAllLiteralString(content, usepackage)
		if err := os.WriteFile(texPath, []byte(updated), 0o644); err != nil {
			return true, fmt.Errorf("rewriting pdfx option: %w", err)
		}
		return true, nil
	}

	if !strings.Contains(content, `\documentclass`) {
		return false, fmt.Errorf("%s has no \\documentclass line; is it the main file of the project?", texPath)
	}

	if err := os.WriteFile(texPath+BackupSuffix, data, 0o644); err != nil {
		return false, fmt.Errorf("writing backup: %w", err)
	}

	var b strings.Builder
	writeBlock(&b, preludeCmds)

	for _, line := range strings.SplitAfter(content, "\n") {
		b.WriteString(line)
		if strings.Contains(line, `\documentclass`) {
			// SplitAfter keeps the newline except possibly on the last line.
			if !strings.HasSuffix(line, "\n") {
				b.WriteString("\n")
			}
			writeBlock(&b, []string{usepackage})
		}
	}

	if err := os.WriteFile(texPath, []byte(b.String()), 0o644); err != nil {
		return false, fmt.Errorf("writing patched tex file: %w", err)
	}
	return false, nil
}

func writeBlock(b *strings.Builder, cmds []string) {
	b.WriteString(commentStart + "\n")
	for _, cmd := range cmds {
		b.WriteString(cmd + "\n")
	}
	b.WriteString(commentEnd + "\n")
}
