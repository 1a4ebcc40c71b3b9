package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lyzr-apps/storecheck/internal/models"
	"github.com/lyzr-apps/storecheck/internal/report"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [history-id]",
	Short: "Export a persisted report as Markdown",
	Long: `Export an analysis report as a Markdown file.

Without an argument, exports the most recent report from history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		return exportRun(cmd, id)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default compliance-report-YYYY-MM-DD.md)")
	rootCmd.AddCommand(exportCmd)
}

func exportRun(cmd *cobra.Command, id string) error {
	var (
		entry *models.HistoryEntry
		err   error
	)
	if id == "" {
		entry, err = getStore().Latest(cmd.Context())
	} else {
		entry, err = getStore().Get(cmd.Context(), id)
	}
	if err != nil {
		return fmt.Errorf("load history entry: %w", err)
	}
	if entry.Result == nil {
		return fmt.Errorf("entry %s has no stored report", entry.ID)
	}

	now := time.Now()
	path := exportOutput
	if path == "" {
		path = report.Filename(now)
	}

	if err := os.WriteFile(path, []byte(report.Markdown(entry.Result, now)), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	ui.Success("Report exported to %s", path)
	return nil
}
