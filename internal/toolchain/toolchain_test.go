// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolchain

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/latex2pdfa/pkg/types"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool   // binary -> whether LookPath succeeds
	outputs       map[string]string // "bin arg1 arg2" -> combined output
	failingCmds   map[string]bool   // "bin arg1 arg2" -> whether Run fails
	calls         []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Run(dir, name string, args ...string) (string, error) {
	key := name + " " + strings.Join(args, " ")
	m.calls = append(m.calls, key)
	out := m.outputs[key]
	if m.failingCmds[key] {
		return out, errors.New("exit status 1")
	}
	return out, nil
}

func (m *mockExecutor) RunStreaming(dir string, stdout, stderr io.Writer, name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	m.calls = append(m.calls, key)
	if out := m.outputs[key]; out != "" {
		io.WriteString(stdout, out)
	}
	if m.failingCmds[key] {
		return errors.New("exit status 1")
	}
	return nil
}

func TestToolResolve(t *testing.T) {
	fakeGS := filepath.Join(t.TempDir(), "gs")
	if err := os.WriteFile(fakeGS, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		tool    Tool
		exec    *mockExecutor
		want    string
		wantErr string
	}{
		{
			name: "resolves from PATH",
			tool: Tool{Name: "pdflatex"},
			exec: &mockExecutor{availableBins: map[string]bool{"pdflatex": true}},
			want: "/usr/bin/pdflatex",
		},
		{
			name:    "missing from PATH",
			tool:    Tool{Name: "pdflatex"},
			exec:    &mockExecutor{},
			wantErr: "pdflatex not found in PATH",
		},
		{
			name: "explicit path wins over PATH lookup",
			tool: Tool{Name: "gs", Path: fakeGS},
			exec: &mockExecutor{},
			want: fakeGS,
		},
		{
			name:    "explicit path does not exist",
			tool:    Tool{Name: "gs", Path: filepath.Join(t.TempDir(), "no-such-gs")},
			exec:    &mockExecutor{availableBins: map[string]bool{"gs": true}},
			wantErr: "does not exist",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.tool.Resolve(tt.exec)
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
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToolCommand(t *testing.T) {
	if got := (Tool{Name: "qpdf"}).Command(); got != "qpdf" {
		t.Errorf("got %q, want %q", got, "qpdf")
	}
	if got := (Tool{Name: "qpdf", Path: "/opt/qpdf/bin/qpdf"}).Command(); got != "/opt/qpdf/bin/qpdf" {
		t.Errorf("got %q, want %q", got, "/opt/qpdf/bin/qpdf")
	}
}

func TestToolchainCheck(t *testing.T) {
	allBins := map[string]bool{
		"pdflatex": true, "bibtex": true, "gs": true,
		"exiftool": true, "qpdf": true, "verapdf": true,
	}

	tests := []struct {
		name       string
		bins       map[string]bool
		needVerify bool
		wantErr    string
	}{
		{
			name: "all present",
			bins: allBins,
		},
		{
			name: "verapdf not required without verify",
			bins: map[string]bool{
				"pdflatex": true, "bibtex": true, "gs": true,
				"exiftool": true, "qpdf": true,
			},
		},
		{
			name: "verapdf required with verify",
			bins: map[string]bool{
				"pdflatex": true, "bibtex": true, "gs": true,
				"exiftool": true, "qpdf": true,
			},
			needVerify: true,
			wantErr:    "verapdf not found",
		},
		{
			name:    "missing compiler reported",
			bins:    map[string]bool{"bibtex": true, "gs": true, "exiftool": true, "qpdf": true},
			wantErr: "pdflatex not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := New(types.ToolsConfig{})
			err := tc.Check(&mockExecutor{availableBins: tt.bins}, tt.needVerify)
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
		})
	}
}

func TestToolchainStatuses(t *testing.T) {
	tc := New(types.ToolsConfig{})
	x := &mockExecutor{availableBins: map[string]bool{"pdflatex": true}}

	statuses := tc.Statuses(x, false)
	if len(statuses) != 5 {
		t.Fatalf("got %d statuses, want 5", len(statuses))
	}
	if statuses[0].Tool.Name != "pdflatex" || statuses[0].Err != nil {
		t.Errorf("pdflatex should resolve, got %+v", statuses[0])
	}
	if statuses[2].Tool.Name != "gs" || statuses[2].Err == nil {
		t.Errorf("gs should be missing, got %+v", statuses[2])
	}

	withVera := tc.Statuses(x, true)
	if len(withVera) != 6 {
		t.Fatalf("got %d statuses with veraPDF, want 6", len(withVera))
	}
	if withVera[5].Tool.Name != "verapdf" {
		t.Errorf("last status should be verapdf, got %q", withVera[5].Tool.Name)
	}
}

func TestRunCapturesOutput(t *testing.T) {
	x := &mockExecutor{
		outputs: map[string]string{"qpdf --version": "qpdf version 11.9.0\n"},
	}
	out, err := Run(x, Tool{Name: "qpdf"}, []string{"--version"}, RunOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "qpdf version") {
		t.Errorf("output %q should contain version string", out)
	}
}

func TestRunFailureCarriesExcerpt(t *testing.T) {
	x := &mockExecutor{
		outputs:     map[string]string{"pdflatex main.tex": "line one\n! Undefined control sequence.\n"},
		failingCmds: map[string]bool{"pdflatex main.tex": true},
	}
	_, err := Run(x, Tool{Name: "pdflatex"}, []string{"main.tex"}, RunOptions{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "pdflatex") {
		t.Errorf("error should name the tool: %v", err)
	}
	if !strings.Contains(err.Error(), "Undefined control sequence") {
		t.Errorf("error should carry output excerpt: %v", err)
	}
}

func TestRunVerboseStreams(t *testing.T) {
	x := &mockExecutor{
		outputs: map[string]string{"gs -v": "GPL Ghostscript 10.03.1\n"},
	}
	var stdout, stderr bytes.Buffer
	out, err := Run(x, Tool{Name: "gs"}, []string{"-v"}, RunOptions{
		Verbose: true,
		Stdout:  &stdout,
		Stderr:  &stderr,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Errorf("verbose mode should not capture output, got %q", out)
	}
	if !strings.Contains(stdout.String(), "Ghostscript") {
		t.Errorf("streamed output missing, got %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "+ gs -v") {
		t.Errorf("verbose mode should echo the command, got %q", stdout.String())
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name   string
		output string
		n      int
		want   string
	}{
		{name: "empty output", output: "", n: 5, want: ""},
		{name: "fewer lines than limit", output: "a\nb\n", n: 5, want: "a\nb"},
		{name: "trims to last n lines", output: "a\nb\nc\nd\n", n: 2, want: "c\nd"},
		{name: "blank lines dropped", output: "a\n\n\nb\n", n: 5, want: "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Excerpt(tt.output, tt.n); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
