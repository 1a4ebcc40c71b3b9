package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lyzr-apps/storecheck/internal/fixprompt"
	"github.com/lyzr-apps/storecheck/internal/models"
)

var (
	fixpromptEnv   string
	fixpromptAll   bool
	fixpromptIndex int
)

var fixpromptCmd = &cobra.Command{
	Use:   "fixprompt [history-id|last]",
	Short: "Generate a remediation prompt for a reported violation",
	Long: `Generate a copy-pasteable remediation prompt tailored to the
development environment the fix will be made in (see 'storecheck envs').

Targets the most recent report by default, or one history entry by id.
--index picks one violation (in report order); --all emits a batch
remediation plan covering every violation, worst first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := "last"
		if len(args) == 1 {
			id = args[0]
		}
		return fixpromptRun(cmd, id)
	},
}

func init() {
	fixpromptCmd.Flags().StringVar(&fixpromptEnv, "env", "xcode", "Target development environment id")
	fixpromptCmd.Flags().BoolVar(&fixpromptAll, "all", false, "Generate one batch plan covering all violations")
	fixpromptCmd.Flags().IntVar(&fixpromptIndex, "index", 1, "Violation to target, 1-based in report order")
	rootCmd.AddCommand(fixpromptCmd)
}

func fixpromptRun(cmd *cobra.Command, id string) error {
	catalog, err := fixprompt.LoadOverlay(viper.GetString("environments_file"))
	if err != nil {
		return err
	}
	env, err := fixprompt.Lookup(catalog, fixpromptEnv)
	if err != nil {
		return err
	}

	var entry *models.HistoryEntry
	if id == "last" {
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

	if fixpromptAll {
		fmt.Fprintln(ui.Out, fixprompt.Batch(env, entry.Result))
		return nil
	}

	violations := entry.Result.AllViolations()
	if len(violations) == 0 {
		ui.Info("The report has no violations to fix.")
		return nil
	}
	if fixpromptIndex < 1 || fixpromptIndex > len(violations) {
		return fmt.Errorf("violation index %d out of range (report has %d)", fixpromptIndex, len(violations))
	}

	target := violations[fixpromptIndex-1]
	fmt.Fprintln(ui.Out, fixprompt.For(env, target.Violation, target.Category))
	return nil
}
