package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lyzr-apps/storecheck/internal/output"
	"github.com/lyzr-apps/storecheck/internal/report"
)

var historySearch string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse persisted analysis reports",
	Long: `Browse analysis reports persisted from previous runs, newest first.

Running bare 'storecheck history' is the same as 'storecheck history list'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return historyListRun(cmd)
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List analysis history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return historyListRun(cmd)
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one persisted report in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return historyShowRun(cmd, args[0])
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all analysis history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := getStore().Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		ui.Success("History cleared")
		return nil
	},
}

func init() {
	historyCmd.PersistentFlags().StringVar(&historySearch, "search", "", "Filter entries by app name or date substring")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func historyListRun(cmd *cobra.Command) error {
	entries, err := getStore().List(cmd.Context(), historySearch)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	if len(entries) == 0 {
		ui.Info("No analysis history found.")
		return nil
	}

	table := ui.Table([]string{"ID", "Date", "App", "Score", "High", "Med", "Low"})
	for _, e := range entries {
		table.Append([]string{
			e.ID,
			e.Date.Format("2006-01-02 15:04"),
			output.Cyan(e.AppName),
			output.ScoreColor(e.ComplianceScore),
			strconv.Itoa(e.HighCount),
			strconv.Itoa(e.MediumCount),
			strconv.Itoa(e.LowCount),
		})
	}
	table.Render()
	return nil
}

func historyShowRun(cmd *cobra.Command, id string) error {
	entry, err := getStore().Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("load history entry: %w", err)
	}
	if entry.Result == nil {
		return fmt.Errorf("entry %s has no stored report", id)
	}

	fmt.Fprintf(ui.Out, "%s  %s\n", output.Bold(entry.AppName), entry.Date.Format("2006-01-02 15:04"))
	renderResult(entry.Result, report.FilterAll, report.FilterAll)
	return nil
}
