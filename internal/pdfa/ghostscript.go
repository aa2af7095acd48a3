// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfa

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// defPS is the PostScript prologue Ghostscript needs to emit a PDF/A
// output intent. It references Ghostscript's bundled sRGB ICC profile,
// which the interpreter resolves from its own resource search path.
//
//go:embed pdfa_def.ps
var defPS []byte

// WriteDefPS materializes the PDF/A definition prologue into dir and
// returns its path. The caller removes it with the other temporaries.
func WriteDefPS(dir string) (string, error) {
	path := filepath.Join(dir, "PDFA_def.ps")
	if err := os.WriteFile(path, defPS, 0o644); err != nil {
		return "", fmt.Errorf("writing PDF/A definition prologue: %w", err)
	}
	return path, nil
}

// GhostscriptArgs builds the pdfwrite invocation that rewrites the
// compiled PDF into a PDF/A candidate. The pdfx package alone does not
// produce a conformant file (transparency in included graphics is the
// usual offender); Ghostscript converts colors to RGB and attaches the
// output intent from defPSPath.
func GhostscriptArgs(p Profile, defPSPath, outputPath, inputPath string) []string {
	return []string{
		fmt.Sprintf("-dPDFA=%d", p.Version),
		"-dBATCH",
		"-dNOPAUSE",
		"-sProcessColorModel=DeviceRGB",
		"-dOverprint=/disable",
		"-sColorConversionStrategy=RGB",
		"-sDEVICE=pdfwrite",
		"-dPDFACompatibilityPolicy=1",
		"-sOutputFile=" + outputPath,
		defPSPath,
		inputPath,
	}
}
