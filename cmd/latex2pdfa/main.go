// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the latex2pdfa CLI, which chains
// pdflatex, bibtex, Ghostscript, exiftool, qpdf, and optionally veraPDF
// to turn a LaTeX project into a PDF/A-conformant file.
// Implements: prd001-conversion, prd002-compilation, prd003-conformance,
//             prd004-validation, prd005-run-history (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the latex2pdfa CLI.
var rootCmd = &cobra.Command{
	Use:   "latex2pdfa",
	Short: "Compile a LaTeX project to a PDF/A-conformant PDF",
	Long: `latex2pdfa automates the external-tool chain that produces an archival
PDF/A file from a LaTeX project: it patches the main tex file with the pdfx
package, resolves cross-references through repeated pdflatex/bibtex passes,
rewrites the result with Ghostscript's PDF/A output intent, restores the
metadata Ghostscript drops, linearizes the file with qpdf, and can validate
the result with veraPDF.

All heavy lifting is delegated to the external tools; latex2pdfa only knows
which flags to pass in which order.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./latex2pdfa.yaml or ~/.config/latex2pdfa/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("latex2pdfa")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "latex2pdfa"))
		}
	}

	viper.SetDefault("compile.level", "b")
	viper.SetDefault("compile.version", 1)

	viper.SetEnvPrefix("LATEX2PDFA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
