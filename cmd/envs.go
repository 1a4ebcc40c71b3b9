package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lyzr-apps/storecheck/internal/fixprompt"
	"github.com/lyzr-apps/storecheck/internal/output"
)

var envsCmd = &cobra.Command{
	Use:   "envs",
	Short: "List development environment profiles for fix prompts",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := fixprompt.LoadOverlay(viper.GetString("environments_file"))
		if err != nil {
			return err
		}

		table := ui.Table([]string{"ID", "Name", "Category", "Notes"})
		for _, env := range catalog {
			table.Append([]string{
				output.Cyan(env.ID),
				env.Name,
				string(env.Category),
				env.ContextNote,
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(envsCmd)
}
