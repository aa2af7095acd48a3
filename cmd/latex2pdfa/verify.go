// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/latex2pdfa/internal/pdfa"
	"github.com/pdiddy/latex2pdfa/internal/toolchain"
	"github.com/pdiddy/latex2pdfa/internal/verapdf"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [file.pdf]",
	Short: "Validate an existing PDF against a PDF/A profile with veraPDF",
	Long: `Verify runs veraPDF against an already generated PDF and reports the
passed and failed check counts with the compliance statement. A
non-compliant file is a non-zero exit.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().String("level", "b", "PDF/A conformance level: a, b, or u")
	verifyCmd.Flags().Int("pdfa-version", 1, "PDF/A standard version: 1, 2, or 3")
	verifyCmd.Flags().String("verapdf-path", "", "veraPDF executable path (default: resolved from PATH)")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	level, _ := cmd.Flags().GetString("level")
	pdfaVersion, _ := cmd.Flags().GetInt("pdfa-version")
	profile, err := pdfa.NewProfile(level, pdfaVersion)
	if err != nil {
		return err
	}

	cfg := configFromViper()
	applyToolFlags(cmd, &cfg.Tools)

	x := toolchain.OSExecutor{}
	tools := toolchain.New(cfg.Tools)
	if _, err := tools.VeraPDF.Resolve(x); err != nil {
		return err
	}

	v := &verapdf.Validator{Exec: x, Tool: tools.VeraPDF}
	report, err := v.Validate(args[0], profile.String())
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, report.Summary())
	if !report.Compliant {
		return fmt.Errorf("%s is not compliant with PDF/A-%s", args[0], profile)
	}
	return nil
}
