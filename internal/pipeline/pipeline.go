// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline chains the external tools that turn a LaTeX project
// into a PDF/A-conformant file: toolchain checks, metadata, tex patching,
// compilation, the Ghostscript rewrite, metadata restore, linearization,
// cleanup, and optional validation. Execution is strictly sequential and
// stops at the first failing step.
// Implements: prd001-conversion (R1, R6);
//
//	docs/ARCHITECTURE § Pipeline Interface.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/latex2pdfa/internal/latex"
	"github.com/pdiddy/latex2pdfa/internal/metadata"
	"github.com/pdiddy/latex2pdfa/internal/pdfa"
	"github.com/pdiddy/latex2pdfa/internal/toolchain"
	"github.com/pdiddy/latex2pdfa/internal/verapdf"
	"github.com/pdiddy/latex2pdfa/pkg/types"
)

// step is one stage of the conversion.
type step struct {
	name string
	run  func() error
}

// Result holds the outcome of a pipeline run.
type Result struct {
	// StartedAt and Duration bracket the whole run.
	StartedAt time.Time
	Duration  time.Duration

	// OutputPath is the final PDF location, set on success.
	OutputPath string

	// Report is the veraPDF report when validation ran.
	Report *verapdf.Report

	// Verify is the validation outcome.
	Verify types.VerifyStatus

	// FailedStep names the aborting step, empty on success.
	FailedStep string
}

// Record converts the result into a history record for texFile and profile.
func (r Result) Record(texFile, profile string) types.RunRecord {
	return types.RunRecord{
		StartedAt:  r.StartedAt,
		Duration:   r.Duration,
		TexFile:    texFile,
		Profile:    profile,
		OutputPath: r.OutputPath,
		Succeeded:  r.FailedStep == "",
		FailedStep: r.FailedStep,
		Verify:     r.Verify,
	}
}

// Pipeline drives one tex-to-PDF/A conversion.
type Pipeline struct {
	cfg     types.PipelineConfig
	profile pdfa.Profile
	tools   *toolchain.Toolchain
	exec    toolchain.Executor
	out     io.Writer

	texPath    string
	projectDir string
	stem       string
	outputPath string

	report *verapdf.Report
}

// New validates the input file and output locations and returns a ready
// pipeline. The output directory is created when it does not exist.
func New(texFile string, cfg types.PipelineConfig, x toolchain.Executor, w io.Writer) (*Pipeline, error) {
	profile, err := pdfa.NewProfile(cfg.Compile.Level, cfg.Compile.Version)
	if err != nil {
		return nil, err
	}

	texPath, err := filepath.Abs(texFile)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", texFile, err)
	}
	info, err := os.Stat(texPath)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%s is not a file or does not exist", texFile)
	}

	projectDir := filepath.Dir(texPath)
	base := filepath.Base(texPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	outputDir := cfg.Output.Dir
	if outputDir == "" {
		outputDir = projectDir
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	outputFile := cfg.Output.File
	if outputFile == "" {
		outputFile = profile.OutputName(stem)
	} else if !strings.HasSuffix(outputFile, ".pdf") {
		outputFile += ".pdf"
	}
	outputPath, err := filepath.Abs(filepath.Join(outputDir, outputFile))
	if err != nil {
		return nil, fmt.Errorf("resolving output path: %w", err)
	}

	return &Pipeline{
		cfg:        cfg,
		profile:    profile,
		tools:      toolchain.New(cfg.Tools),
		exec:       x,
		out:        w,
		texPath:    texPath,
		projectDir: projectDir,
		stem:       stem,
		outputPath: outputPath,
	}, nil
}

// OutputPath returns the final PDF location the pipeline will produce.
func (p *Pipeline) OutputPath() string { return p.outputPath }

// TexPath returns the absolute path of the main tex file.
func (p *Pipeline) TexPath() string { return p.texPath }

// Profile returns the conformance profile of the run.
func (p *Pipeline) Profile() pdfa.Profile { return p.profile }

// Run executes the steps in order, printing per-step status to the
// pipeline writer. It stops at the first failure and returns an error
// naming the failing step; the returned Result is valid either way.
func (p *Pipeline) Run() (Result, error) {
	result := Result{StartedAt: time.Now(), Verify: types.VerifySkipped}

	steps := []step{
		{"toolchain", p.checkTools},
		{"metadata", p.ensureMetadata},
		{"patch", p.patchTex},
		{"compile", p.compileProject},
		{"ghostscript", p.rewrite},
		{"exiftool", p.restoreMetadata},
		{"qpdf", p.linearize},
	}
	if p.cfg.Clean {
		steps = append(steps, step{"clean", p.cleanArtifacts})
	}
	if p.cfg.Verify {
		steps = append(steps, step{"verify", p.validate})
	}

	for _, s := range steps {
		if err := s.run(); err != nil {
			fmt.Fprintf(p.out, "failed: %s\n", s.name)
			result.FailedStep = s.name
			result.Duration = time.Since(result.StartedAt)
			return result, fmt.Errorf("%s: %w", s.name, err)
		}
		fmt.Fprintf(p.out, "ok: %s\n", s.name)
	}

	result.OutputPath = p.outputPath
	result.Report = p.report
	if p.report != nil {
		if p.report.Compliant {
			result.Verify = types.VerifyPassed
		} else {
			result.Verify = types.VerifyFailed
		}
	}
	result.Duration = time.Since(result.StartedAt)
	return result, nil
}

func (p *Pipeline) checkTools() error {
	return p.tools.Check(p.exec, p.cfg.Verify)
}

func (p *Pipeline) ensureMetadata() error {
	return metadata.Ensure(p.texPath, p.cfg.Metadata, p.out)
}

func (p *Pipeline) patchTex() error {
	already, err := latex.Patch(p.texPath, p.profile.PdfxOption())
	if err != nil {
		return err
	}
	if already {
		fmt.Fprintf(p.out, "patch: %s already patched, profile refreshed\n", filepath.Base(p.texPath))
	}
	return nil
}

func (p *Pipeline) compileProject() error {
	c := &latex.Compiler{
		Exec:       p.exec,
		PDFLaTeX:   p.tools.PDFLaTeX,
		BibTeX:     p.tools.BibTeX,
		ExtraArgs:  p.cfg.Compile.ExtraArgs,
		SkipBibtex: p.cfg.Compile.SkipBibtex,
		Verbose:    p.cfg.Verbose,
		Out:        p.out,
	}
	return c.Compile(p.texPath)
}

// rewrite runs Ghostscript over the compiled PDF to fix the conformance
// problems the pdfx package cannot (transparency, color spaces).
func (p *Pipeline) rewrite() error {
	tmpDir, err := os.MkdirTemp("", "latex2pdfa")
	if err != nil {
		return fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	defPS, err := pdfa.WriteDefPS(tmpDir)
	if err != nil {
		return err
	}

	compiledPDF := filepath.Join(p.projectDir, p.stem+".pdf")
	if _, err := os.Stat(compiledPDF); err != nil {
		return fmt.Errorf("compiled PDF %s not found: %w", compiledPDF, err)
	}

	args := pdfa.GhostscriptArgs(p.profile, defPS, p.outputPath, compiledPDF)
	opts := toolchain.RunOptions{Verbose: p.cfg.Verbose, Stdout: p.out, Stderr: p.out}
	_, err = toolchain.Run(p.exec, p.tools.Ghostscript, args, opts)
	return err
}

// restoreMetadata copies the metadata Ghostscript wiped back from the
// pdflatex output.
func (p *Pipeline) restoreMetadata() error {
	compiledPDF := filepath.Join(p.projectDir, p.stem+".pdf")
	args := pdfa.ExifToolArgs(compiledPDF, p.outputPath)
	opts := toolchain.RunOptions{Verbose: p.cfg.Verbose, Stdout: p.out, Stderr: p.out}
	_, err := toolchain.Run(p.exec, p.tools.ExifTool, args, opts)
	return err
}

func (p *Pipeline) linearize() error {
	opts := toolchain.RunOptions{Verbose: p.cfg.Verbose, Stdout: p.out, Stderr: p.out}
	_, err := toolchain.Run(p.exec, p.tools.QPDF, pdfa.QPDFArgs(p.outputPath), opts)
	return err
}

func (p *Pipeline) cleanArtifacts() error {
	removed, err := latex.Clean(p.projectDir, p.stem, true)
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "clean: removed %d temporary file(s)\n", len(removed))
	return nil
}

func (p *Pipeline) validate() error {
	v := &verapdf.Validator{Exec: p.exec, Tool: p.tools.VeraPDF}
	report, err := v.Validate(p.outputPath, p.profile.String())
	if err != nil {
		return err
	}
	p.report = &report
	fmt.Fprintln(p.out, report.Summary())
	return nil
}
