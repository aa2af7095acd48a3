// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// auxExtensions are the compilation artifacts removed by Clean.
var auxExtensions = []string{".aux", ".bbl", ".blg", ".toc", ".out", ".log"}

// HasBibliography reports whether the aux file at auxPath references a
// bibliography. A missing or unreadable aux file counts as no bibliography,
// which makes the bibtex pass a no-op for projects without citations.
func HasBibliography(auxPath string) bool {
	data, err := os.ReadFile(auxPath)
	if err != nil {
		return false
	}
	content := string(data)
	return strings.Contains(content, `\citation{`) || strings.Contains(content, `\bibdata{`)
}

// Clean removes auxiliary compilation artifacts from the project directory
// and, when removeCompiledPDF is set, the intermediate pdflatex output
// stem.pdf. It returns the paths it removed.
func Clean(dir, stem string, removeCompiledPDF bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading project directory: %w", err)
	}

	var removed []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		for _, auxExt := range auxExtensions {
			if ext == auxExt {
				path := filepath.Join(dir, entry.Name())
				if err := os.Remove(path); err != nil {
					return removed, fmt.Errorf("removing %s: %w", path, err)
				}
				removed = append(removed, path)
				break
			}
		}
	}

	if removeCompiledPDF {
		pdf := filepath.Join(dir, stem+".pdf")
		if err := os.Remove(pdf); err == nil {
			removed = append(removed, pdf)
		} else if !os.IsNotExist(err) {
			return removed, fmt.Errorf("removing %s: %w", pdf, err)
		}
	}

	return removed, nil
}
