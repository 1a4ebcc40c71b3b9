package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lyzr-apps/storecheck/internal/output"
)

// guidelineSection is one top-level section of the App Store Review
// Guidelines with its commonly-cited subsections.
type guidelineSection struct {
	Title string
	Items []string
}

var guidelineSections = []guidelineSection{
	{
		Title: "Safety (Guideline 1)",
		Items: []string{"1.1 Objectionable Content", "1.2 User Generated Content", "1.3 Kids Category", "1.4 Physical Harm", "1.5 Developer Information", "1.6 Data Security"},
	},
	{
		Title: "Performance (Guideline 2)",
		Items: []string{"2.1 App Completeness", "2.2 Beta Testing", "2.3 Accurate Metadata", "2.4 Hardware Compatibility", "2.5 Software Requirements"},
	},
	{
		Title: "Business (Guideline 3)",
		Items: []string{"3.1 Payments - In-App Purchase", "3.1.1 In-App Purchase", "3.1.2 Subscriptions", "3.2 Other Business Model Issues"},
	},
	{
		Title: "Design (Guideline 4)",
		Items: []string{"4.0 Design - General", "4.1 Copycats", "4.2 Minimum Functionality", "4.3 Spam", "4.4 Extensions", "4.5 Apple Sites and Services"},
	},
	{
		Title: "Legal & Privacy (Guideline 5)",
		Items: []string{"5.1 Privacy - Data Collection and Storage", "5.1.1 Data Collection and Storage", "5.1.2 Data Use and Sharing", "5.2 Intellectual Property", "5.3 Gaming, Gambling, and Lotteries", "5.4 VPN Apps", "5.5 Mobile Device Management"},
	},
}

var guidelinesCmd = &cobra.Command{
	Use:   "guidelines",
	Short: "Show the App Store Review Guidelines reference",
	Long: `Show a reference list of the Apple App Store Review Guideline
categories the analyzer checks against.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(ui.Out, "%s\n\n", output.Bold("App Store Review Guidelines"))
		for _, section := range guidelineSections {
			fmt.Fprintf(ui.Out, "%s\n", output.Cyan(section.Title))
			for _, item := range section.Items {
				fmt.Fprintf(ui.Out, "  - %s\n", item)
			}
			fmt.Fprintln(ui.Out)
		}
	},
}

func init() {
	rootCmd.AddCommand(guidelinesCmd)
}
