// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/latex2pdfa/pkg/types"
)

// configFromViper assembles the pipeline configuration from the config
// file and environment. Flag overrides are applied on top by the commands.
func configFromViper() types.PipelineConfig {
	return types.PipelineConfig{
		Tools: types.ToolsConfig{
			PDFLaTeX:    viper.GetString("tools.pdflatex"),
			BibTeX:      viper.GetString("tools.bibtex"),
			Ghostscript: viper.GetString("tools.ghostscript"),
			ExifTool:    viper.GetString("tools.exiftool"),
			QPDF:        viper.GetString("tools.qpdf"),
			VeraPDF:     viper.GetString("tools.verapdf"),
		},
		Compile: types.CompileConfig{
			Level:      viper.GetString("compile.level"),
			Version:    viper.GetInt("compile.version"),
			SkipBibtex: viper.GetBool("compile.skip_bibtex"),
			ExtraArgs:  viper.GetStringSlice("compile.extra_args"),
		},
		Output: types.OutputConfig{
			Dir:  viper.GetString("output.dir"),
			File: viper.GetString("output.file"),
		},
		History: types.HistoryConfig{
			Dir:     viper.GetString("history.dir"),
			MaxRuns: viper.GetInt("history.max_runs"),
		},
		Clean: true,
	}
}

// addToolFlags registers the per-tool path override flags shared by the
// commands that execute external tools.
func addToolFlags(cmd *cobra.Command) {
	cmd.Flags().String("pdflatex-path", "", "pdflatex executable path (default: resolved from PATH)")
	cmd.Flags().String("bibtex-path", "", "bibtex executable path (default: resolved from PATH)")
	cmd.Flags().String("gs-path", "", "ghostscript executable path (default: resolved from PATH)")
	cmd.Flags().String("exiftool-path", "", "exiftool executable path (default: resolved from PATH)")
	cmd.Flags().String("qpdf-path", "", "qpdf executable path (default: resolved from PATH)")
	cmd.Flags().String("verapdf-path", "", "veraPDF executable path (default: resolved from PATH)")
}

// applyToolFlags copies explicitly set tool path flags into the config.
func applyToolFlags(cmd *cobra.Command, tools *types.ToolsConfig) {
	flagTargets := map[string]*string{
		"pdflatex-path": &tools.PDFLaTeX,
		"bibtex-path":   &tools.BibTeX,
		"gs-path":       &tools.Ghostscript,
		"exiftool-path": &tools.ExifTool,
		"qpdf-path":     &tools.QPDF,
		"verapdf-path":  &tools.VeraPDF,
	}
	for name, target := range flagTargets {
		if cmd.Flags().Changed(name) {
			*target, _ = cmd.Flags().GetString(name)
		}
	}
}
