// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verapdf

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/pdiddy/latex2pdfa/internal/toolchain"
)

const compliantReport = `<?xml version="1.0" encoding="utf-8"?>
<report>
  <buildInformation/>
  <jobs>
    <job>
      <item size="81334"><name>/out/thesis-PDFA-1b.pdf</name></item>
      <validationReport profileName="PDF/A-1B validation profile" statement="PDF file is compliant with Validation Profile requirements." isCompliant="true">
        <details passedRules="107" failedRules="0" passedChecks="9781" failedChecks="0"/>
      </validationReport>
    </job>
  </jobs>
</report>`

const nonCompliantReport = `<?xml version="1.0" encoding="utf-8"?>
<report>
  <jobs>
    <job>
      <validationReport profileName="PDF/A-1B validation profile" statement="PDF file is not compliant with Validation Profile requirements." isCompliant="false">
        <details passedRules="104" failedRules="3" passedChecks="9684" failedChecks="97"/>
      </validationReport>
    </job>
  </jobs>
</report>`

func TestParseReport(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Report
		wantErr string
	}{
		{
			name:  "compliant file",
			input: compliantReport,
			want: Report{
				Compliant:    true,
				Statement:    "PDF file is compliant with Validation Profile requirements.",
				ProfileName:  "PDF/A-1B validation profile",
				PassedChecks: 9781,
				FailedChecks: 0,
			},
		},
		{
			name:  "non-compliant file",
			input: nonCompliantReport,
			want: Report{
				Compliant:    false,
				Statement:    "PDF file is not compliant with Validation Profile requirements.",
				ProfileName:  "PDF/A-1B validation profile",
				PassedChecks: 9684,
				FailedChecks: 97,
			},
		},
		{
			name:    "no report element",
			input:   `<?xml version="1.0"?><report><jobs/></report>`,
			wantErr: "no validationReport element",
		},
		{
			name:    "empty output",
			input:   "",
			wantErr: "no validationReport element",
		},
		{
			name:    "truncated xml",
			input:   compliantReport[:120],
			wantErr: "parsing veraPDF report",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReport(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q should contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

// stubExecutor returns fixed output for every Run call.
type stubExecutor struct {
	output string
	err    error
	args   []string
}

func (s *stubExecutor) LookPath(file string) (string, error) { return "/usr/bin/" + file, nil }

func (s *stubExecutor) Run(dir, name string, args ...string) (string, error) {
	s.args = append([]string{name}, args...)
	return s.output, s.err
}

func (s *stubExecutor) RunStreaming(dir string, stdout, stderr io.Writer, name string, args ...string) error {
	return s.err
}

func TestValidate(t *testing.T) {
	x := &stubExecutor{output: compliantReport}
	v := &Validator{Exec: x, Tool: toolchain.Tool{Name: "verapdf"}}

	report, err := v.Validate("/out/thesis-PDFA-1b.pdf", "1b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Compliant {
		t.Error("report should be compliant")
	}

	joined := strings.Join(x.args, " ")
	for _, want := range []string{"verapdf", "-f 1b", "--format xml", "/out/thesis-PDFA-1b.pdf"} {
		if !strings.Contains(joined, want) {
			t.Errorf("invocation %q should contain %q", joined, want)
		}
	}
}

func TestValidateNonZeroExitWithReport(t *testing.T) {
	// veraPDF exits non-zero for non-compliant files; the report still parses.
	x := &stubExecutor{output: nonCompliantReport, err: errors.New("exit status 1")}
	v := &Validator{Exec: x, Tool: toolchain.Tool{Name: "verapdf"}}

	report, err := v.Validate("/out/thesis.pdf", "1b")
	if err != nil {
		t.Fatalf("parseable report should not be an error: %v", err)
	}
	if report.Compliant {
		t.Error("report should be non-compliant")
	}
	if report.FailedChecks != 97 {
		t.Errorf("failed checks = %d, want 97", report.FailedChecks)
	}
}

func TestValidateExecutionFailure(t *testing.T) {
	x := &stubExecutor{output: "Error: java not found\n", err: errors.New("exit status 127")}
	v := &Validator{Exec: x, Tool: toolchain.Tool{Name: "verapdf"}}

	_, err := v.Validate("/out/thesis.pdf", "1b")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "verapdf") {
		t.Errorf("error should name the tool: %v", err)
	}
	if !strings.Contains(err.Error(), "java not found") {
		t.Errorf("error should carry the output excerpt: %v", err)
	}
}

func TestReportSummary(t *testing.T) {
	passed := Report{Compliant: true, Statement: "compliant", ProfileName: "PDF/A-1B validation profile", PassedChecks: 10}
	if !strings.Contains(passed.Summary(), "PASS") {
		t.Errorf("summary should mark compliant reports PASS: %q", passed.Summary())
	}
	failed := Report{Compliant: false, Statement: "not compliant", FailedChecks: 3}
	if !strings.Contains(failed.Summary(), "FAIL") {
		t.Errorf("summary should mark non-compliant reports FAIL: %q", failed.Summary())
	}
}
