// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/latex2pdfa/internal/latex"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [main.tex]",
	Short: "Remove auxiliary compilation artifacts from the project",
	Long: `Clean removes the auxiliary files pdflatex and bibtex leave behind
(.aux, .bbl, .blg, .toc, .out, .log). The intermediate compiled PDF is
kept unless --pdf is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().Bool("pdf", false, "also remove the intermediate <stem>.pdf")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	texPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}
	base := filepath.Base(texPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	removePDF, _ := cmd.Flags().GetBool("pdf")
	removed, err := latex.Clean(filepath.Dir(texPath), stem, removePDF)
	if err != nil {
		return err
	}

	for _, path := range removed {
		fmt.Fprintf(os.Stdout, "removed: %s\n", filepath.Base(path))
	}
	fmt.Fprintf(os.Stdout, "%d temporary file(s) removed\n", len(removed))
	return nil
}
