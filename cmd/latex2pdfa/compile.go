// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/latex2pdfa/internal/history"
	"github.com/pdiddy/latex2pdfa/internal/latex"
	"github.com/pdiddy/latex2pdfa/internal/pipeline"
	"github.com/pdiddy/latex2pdfa/internal/toolchain"
	"github.com/pdiddy/latex2pdfa/pkg/types"
)

var compileCmd = &cobra.Command{
	Use:   "compile [main.tex]",
	Short: "Compile a LaTeX project into a PDF/A-conformant PDF",
	Long: `Compile runs the full conversion: toolchain check, metadata file,
tex patching, pdflatex/bibtex passes, the Ghostscript PDF/A rewrite,
metadata restore, linearization, cleanup, and optional validation.

The main tex file is patched in place; the original is preserved next to
it with a ` + latex.BackupSuffix + ` extension. The generated PDF lands in the project
directory as <stem>-PDFA-<profile>.pdf unless overridden.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().String("level", "b", "PDF/A conformance level: a, b, or u")
	compileCmd.Flags().Int("pdfa-version", 1, "PDF/A standard version: 1, 2, or 3")
	compileCmd.Flags().String("output-dir", "", "directory for the generated PDF (default: project directory)")
	compileCmd.Flags().String("output-file", "", "filename of the generated PDF (default: <stem>-PDFA-<profile>.pdf)")
	compileCmd.Flags().String("metadata", "", "YAML metadata file rendered into the project's .xmpdata")
	compileCmd.Flags().Bool("ignore-metadata", false, "skip the metadata stage entirely")
	compileCmd.Flags().Bool("skip-bibtex", false, "never run the bibliography pass")
	compileCmd.Flags().StringArray("pdflatex-arg", nil, "extra argument passed to every pdflatex call (repeatable)")
	compileCmd.Flags().Bool("no-clean", false, "keep the temporary compilation artifacts")
	compileCmd.Flags().Bool("verify", false, "validate the generated PDF with veraPDF")
	compileCmd.Flags().BoolP("verbose", "v", false, "stream external tool output")
	addToolFlags(compileCmd)

	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg := compileConfig(cmd)

	p, err := pipeline.New(args[0], cfg, toolchain.OSExecutor{}, os.Stdout)
	if err != nil {
		return err
	}

	result, runErr := p.Run()
	recordRun(cfg.History, result, p)

	if runErr != nil {
		return runErr
	}

	fmt.Fprintf(os.Stdout, "\nGenerated PDF: %s\n", result.OutputPath)
	fmt.Fprintf(os.Stdout, "The original tex file is preserved at %s%s.\n", p.TexPath(), latex.BackupSuffix)
	fmt.Fprintln(os.Stdout, "Check the outlines, references, and document properties of the result.")

	if result.Verify == types.VerifyFailed {
		return fmt.Errorf("generated PDF is not compliant with PDF/A-%s (%d failed checks)",
			p.Profile(), result.Report.FailedChecks)
	}
	return nil
}

// compileConfig layers compile flags over the file/env configuration.
func compileConfig(cmd *cobra.Command) types.PipelineConfig {
	cfg := configFromViper()

	if cmd.Flags().Changed("level") {
		cfg.Compile.Level, _ = cmd.Flags().GetString("level")
	}
	if cmd.Flags().Changed("pdfa-version") {
		cfg.Compile.Version, _ = cmd.Flags().GetInt("pdfa-version")
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.Output.Dir, _ = cmd.Flags().GetString("output-dir")
	}
	if cmd.Flags().Changed("output-file") {
		cfg.Output.File, _ = cmd.Flags().GetString("output-file")
	}
	if cmd.Flags().Changed("skip-bibtex") {
		cfg.Compile.SkipBibtex, _ = cmd.Flags().GetBool("skip-bibtex")
	}
	if extra, _ := cmd.Flags().GetStringArray("pdflatex-arg"); len(extra) > 0 {
		cfg.Compile.ExtraArgs = append(cfg.Compile.ExtraArgs, extra...)
	}

	cfg.Metadata.File, _ = cmd.Flags().GetString("metadata")
	cfg.Metadata.Ignore, _ = cmd.Flags().GetBool("ignore-metadata")

	noClean, _ := cmd.Flags().GetBool("no-clean")
	cfg.Clean = !noClean
	cfg.Verify, _ = cmd.Flags().GetBool("verify")
	cfg.Verbose, _ = cmd.Flags().GetBool("verbose")

	applyToolFlags(cmd, &cfg.Tools)
	return cfg
}

// recordRun appends the run to the history database. History problems
// only warn; they never fail a conversion.
func recordRun(cfg types.HistoryConfig, result pipeline.Result, p *pipeline.Pipeline) {
	store, err := history.NewStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(context.Background(), result.Record(p.TexPath(), p.Profile().String())); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record run: %v\n", err)
	}
}
