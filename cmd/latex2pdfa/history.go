// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/latex2pdfa/internal/history"
	"github.com/pdiddy/latex2pdfa/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past conversion runs",
	Long: `History manages the local SQLite database that records every compile
run: input file, conformance profile, outcome, and validation status.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryOutput(records, jsonOutput)
}

func formatHistoryOutput(records []types.RunRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-19s  %-9s  %-7s  %-8s  %-7s  %s\n",
		"ID", "Started", "Duration", "Profile", "Result", "Verify", "Input")
	for _, r := range records {
		result := "ok"
		if !r.Succeeded {
			result = "failed"
			if r.FailedStep != "" {
				result = "failed:" + r.FailedStep
			}
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-19s  %-9s  %-7s  %-8s  %-7s  %s\n",
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Duration.Round(time.Second),
			r.Profile, result, r.Verify, r.TexFile)
	}
	fmt.Fprintf(os.Stdout, "\n%d run(s)\n", len(records))
	return nil
}

// --- prune subcommand ---

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest runs",
	RunE:  runHistoryPrune,
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	keep, _ := cmd.Flags().GetInt("keep")
	removed, err := store.Prune(context.Background(), keep)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%d run(s) pruned, %d kept\n", removed, keep)
	return nil
}

// --- shared helpers ---

func openHistory(cmd *cobra.Command) (*history.Store, error) {
	cfg := configFromViper().History
	if dir, _ := cmd.Flags().GetString("history-dir"); dir != "" {
		cfg.Dir = dir
	}
	return history.NewStore(cfg)
}

func init() {
	historyCmd.PersistentFlags().String("history-dir", "", "history database directory (default: ~/.local/share/latex2pdfa)")

	historyListCmd.Flags().Int("limit", 20, "maximum runs to list (0 = all)")
	historyListCmd.Flags().Bool("json", false, "output runs as JSON")

	historyPruneCmd.Flags().Int("keep", 50, "number of newest runs to keep")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyPruneCmd)

	rootCmd.AddCommand(historyCmd)
}
