// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verapdf runs the veraPDF validator against a generated file and
// parses its XML machine-readable report into a compliance summary.
// Implements: prd004-validation (R1-R3);
//
//	docs/ARCHITECTURE § Validation.
package verapdf

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/latex2pdfa/internal/toolchain"
)

// Report summarizes a veraPDF validation run.
type Report struct {
	// Compliant is the validator's verdict for the requested profile.
	Compliant bool

	// Statement is the human-readable compliance statement.
	Statement string

	// ProfileName names the validation profile that was applied.
	ProfileName string

	// PassedChecks and FailedChecks are the rule check counts.
	PassedChecks int
	FailedChecks int
}

// Summary renders the report the way the compile summary prints it.
func (r Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "veraPDF profile: %s\n", r.ProfileName)
	fmt.Fprintf(&b, "  passed checks: %d\n", r.PassedChecks)
	fmt.Fprintf(&b, "  failed checks: %d\n", r.FailedChecks)
	if r.Compliant {
		fmt.Fprintf(&b, "  PASS: %s", r.Statement)
	} else {
		fmt.Fprintf(&b, "  FAIL: %s", r.Statement)
	}
	return b.String()
}

// Validator drives the veraPDF executable.
type Validator struct {
	Exec toolchain.Executor
	Tool toolchain.Tool
}

// Validate checks pdfPath against the profile flavour (e.g. "1b") and
// returns the parsed report. veraPDF exits non-zero when the file is not
// compliant, so a process error with a parseable report is not a failure.
func (v *Validator) Validate(pdfPath, flavour string) (Report, error) {
	out, runErr := v.Exec.Run("", v.Tool.Command(), "-f", flavour, "--format", "xml", pdfPath)

	report, parseErr := ParseReport(strings.NewReader(out))
	if parseErr != nil {
		if runErr != nil {
			return Report{}, fmt.Errorf("verapdf: %w\n%s", runErr, toolchain.Excerpt(out, 20))
		}
		return Report{}, parseErr
	}
	return report, nil
}

type rawValidationReport struct {
	ProfileName string     `xml:"profileName,attr"`
	Statement   string     `xml:"statement,attr"`
	IsCompliant bool       `xml:"isCompliant,attr"`
	Details     rawDetails `xml:"details"`
}

type rawDetails struct {
	PassedChecks int `xml:"passedChecks,attr"`
	FailedChecks int `xml:"failedChecks,attr"`
}

// ParseReport extracts the first validationReport element from veraPDF
// XML output. The element's nesting varies between report formats, so the
// document is scanned rather than mapped from the root.
func ParseReport(r io.Reader) (Report, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return Report{}, errors.New("no validationReport element in veraPDF output")
		}
		if err != nil {
			return Report{}, fmt.Errorf("parsing veraPDF report: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "validationReport" {
			continue
		}

		var raw rawValidationReport
		if err := dec.DecodeElement(&raw, &se); err != nil {
			return Report{}, fmt.Errorf("decoding validationReport: %w", err)
		}
		return Report{
			Compliant:    raw.IsCompliant,
			Statement:    raw.Statement,
			ProfileName:  raw.ProfileName,
			PassedChecks: raw.Details.PassedChecks,
			FailedChecks: raw.Details.FailedChecks,
		}, nil
	}
}
