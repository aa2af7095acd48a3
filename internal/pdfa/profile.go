// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfa models the PDF/A conformance profile and builds the
// argument lists for the tools that rewrite the compiled PDF into a
// conformant file: Ghostscript, exiftool, and qpdf.
// Implements: prd003-conformance (R1-R5);
//
//	docs/ARCHITECTURE § Conformance.
package pdfa

import (
	"fmt"
	"strconv"
)

// Profile is a PDF/A conformance target: a standard version (1, 2, or 3)
// and a conformance level (a, b, or u).
type Profile struct {
	Version int
	Level   string
}

// DefaultProfile is PDF/A-1b, the level most archives require.
var DefaultProfile = Profile{Version: 1, Level: "b"}

// NewProfile validates level and version and returns the profile.
// Level u only exists from version 2 on.
func NewProfile(level string, version int) (Profile, error) {
	switch level {
	case "a", "b", "u":
	default:
		return Profile{}, fmt.Errorf("invalid conformance level %q: use a, b, or u", level)
	}
	switch version {
	case 1, 2, 3:
	default:
		return Profile{}, fmt.Errorf("invalid conformance version %d: use 1, 2, or 3", version)
	}
	if level == "u" && version == 1 {
		return Profile{}, fmt.Errorf("conformance level u requires version 2 or 3")
	}
	return Profile{Version: version, Level: level}, nil
}

// String returns the short profile form used by veraPDF, e.g. "1b".
func (p Profile) String() string {
	return strconv.Itoa(p.Version) + p.Level
}

// PdfxOption returns the pdfx LaTeX package option, e.g. "a-1b".
func (p Profile) PdfxOption() string {
	return "a-" + p.String()
}

// OutputName returns the default output filename for a project stem,
// e.g. "thesis-PDFA-1b.pdf".
func (p Profile) OutputName(stem string) string {
	return fmt.Sprintf("%s-PDFA-%s.pdf", stem, p)
}
