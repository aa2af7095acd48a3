// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/latex2pdfa/internal/toolchain"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the external tools are installed and resolvable",
	Long: `Doctor resolves every external tool the pipeline needs and prints where
each one was found. veraPDF is optional and only required for --verify;
a missing required tool is a non-zero exit.`,
	RunE: runDoctor,
}

func init() {
	addToolFlags(doctorCmd)
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg := configFromViper()
	applyToolFlags(cmd, &cfg.Tools)

	x := toolchain.OSExecutor{}
	tools := toolchain.New(cfg.Tools)

	statuses := tools.Statuses(x, true)
	missing := 0
	for _, s := range statuses {
		optional := s.Tool.Name == "verapdf"
		switch {
		case s.Err == nil:
			fmt.Fprintf(os.Stdout, "ok       %-10s %s\n", s.Tool.Name, s.Path)
		case optional:
			fmt.Fprintf(os.Stdout, "missing  %-10s (optional, needed for --verify)\n", s.Tool.Name)
		default:
			fmt.Fprintf(os.Stdout, "missing  %-10s %v\n", s.Tool.Name, s.Err)
			missing++
		}
	}

	if missing > 0 {
		return fmt.Errorf("%d required tool(s) missing", missing)
	}
	fmt.Fprintln(os.Stdout, "\nAll required tools found.")
	return nil
}
