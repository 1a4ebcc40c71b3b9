package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lyzr-apps/storecheck/internal/analysis"
	"github.com/lyzr-apps/storecheck/internal/models"
	"github.com/lyzr-apps/storecheck/internal/prompt"
	"github.com/lyzr-apps/storecheck/internal/repo"
	"github.com/lyzr-apps/storecheck/internal/report"
	"github.com/lyzr-apps/storecheck/internal/sample"
)

var (
	analyzeRepo        string
	analyzeCode        string
	analyzeCodeFile    string
	analyzeDescription string
	analyzeAppName     string
	analyzeSubtitle    string
	analyzeKeywords    string
	analyzeAgeRating   string
	analyzeFocus       []string
	analyzeDeepScan    bool
	analyzeSample      bool
	analyzeExclude     []string
	analyzeExport      bool
	analyzeSeverity    string
	analyzeCategory    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze app artifacts for App Store compliance",
	Long: `Analyze source code and App Store metadata for compliance issues.

Code can be passed inline (--code), read from a file (--code-file), or
ingested from a public GitHub repository (--repo). At least one input
field must be provided unless --sample is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return analyzeRun(cmd.Context())
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeRepo, "repo", "", "GitHub repository URL to ingest iOS source files from")
	analyzeCmd.Flags().StringVar(&analyzeCode, "code", "", "Code snippet to analyze")
	analyzeCmd.Flags().StringVar(&analyzeCodeFile, "code-file", "", "Read code to analyze from a file")
	analyzeCmd.Flags().StringVar(&analyzeDescription, "description", "", "App Store description text")
	analyzeCmd.Flags().StringVar(&analyzeAppName, "app-name", "", "App name")
	analyzeCmd.Flags().StringVar(&analyzeSubtitle, "subtitle", "", "App Store subtitle")
	analyzeCmd.Flags().StringVar(&analyzeKeywords, "keywords", "", "App Store keywords (comma-separated)")
	analyzeCmd.Flags().StringVar(&analyzeAgeRating, "age-rating", "", "Age rating (e.g. 4+, 12+, 17+)")
	analyzeCmd.Flags().StringArrayVar(&analyzeFocus, "focus", nil, "Focus area to emphasize (repeatable)")
	analyzeCmd.Flags().BoolVar(&analyzeDeepScan, "deep-scan", false, "Request an exhaustive line-by-line review")
	analyzeCmd.Flags().BoolVar(&analyzeSample, "sample", false, "Fill empty fields with sample app data")
	analyzeCmd.Flags().StringArrayVar(&analyzeExclude, "exclude", nil, "Drop an ingested file path from the code buffer (repeatable)")
	analyzeCmd.Flags().BoolVar(&analyzeExport, "export", false, "Write the Markdown report after rendering")
	analyzeCmd.Flags().StringVar(&analyzeSeverity, "severity", report.FilterAll, "Show only violations of this severity (high|medium|low|all)")
	analyzeCmd.Flags().StringVar(&analyzeCategory, "category", report.FilterAll, "Show only this violation category")
	rootCmd.AddCommand(analyzeCmd)
}

func analyzeRun(ctx context.Context) error {
	form := prompt.Form{
		Code:        analyzeCode,
		Description: analyzeDescription,
		AppName:     analyzeAppName,
		Subtitle:    analyzeSubtitle,
		Keywords:    analyzeKeywords,
		AgeRating:   analyzeAgeRating,
		Focus:       analyzeFocus,
		DeepScan:    analyzeDeepScan,
		SampleMode:  analyzeSample,
	}

	if analyzeCodeFile != "" {
		data, err := os.ReadFile(analyzeCodeFile)
		if err != nil {
			return fmt.Errorf("read code file: %w", err)
		}
		form.Code = repo.AppendSource(form.Code, string(data))
	}

	if analyzeRepo != "" {
		if err := ingestRepo(ctx, &form); err != nil {
			return err
		}
	}

	for _, path := range analyzeExclude {
		form.Code = repo.StripFileBlock(form.Code, path)
	}

	// Sample mode with no real inputs renders the canned report
	// without calling the agent.
	if analyzeSample && analyzeRepo == "" && !hasAnyInput(&form) {
		ui.Info("Showing sample analysis for %s", sample.AppName)
		canned := sample.Result()
		renderResult(canned, analyzeSeverity, analyzeCategory)
		return finishAnalyze(ctx, canned, sample.AppName, false)
	}

	message := form.Build()
	if message == "" {
		return errors.New("please provide at least one input field (code, description, or metadata) to analyze")
	}

	apiKey := viper.GetString("anthropic.api_key")
	if apiKey == "" {
		return errors.New("anthropic API key not configured (set anthropic.api_key in the config file or STORECHECK_ANTHROPIC_API_KEY)")
	}

	client := analysis.NewClient(apiKey, viper.GetString("anthropic.model"))
	ui.Info("Analyzing compliance with agent %s...", client.AgentID())

	result, err := client.Analyze(ctx, message)
	if err != nil {
		return err
	}

	renderResult(result, analyzeSeverity, analyzeCategory)
	return finishAnalyze(ctx, result, form.EffectiveAppName(), true)
}

// ingestRepo fetches iOS-relevant files and folds them into the form:
// combined source appended to the code buffer, provenance recorded,
// product name used when no app name was given.
func ingestRepo(ctx context.Context, form *prompt.Form) error {
	ref := repo.ParseURL(analyzeRepo)

	ing := repo.NewIngestor(viper.GetString("github.token"))
	if n := viper.GetInt("analysis.max_files"); n > 0 {
		ing.MaxFiles = n
	}
	if n := viper.GetInt("analysis.max_file_size"); n > 0 {
		ing.MaxFileSize = n
	}
	ing.Progress = ui.VerboseLog

	res, err := ing.Fetch(ctx, ref)
	if err != nil {
		return err
	}
	if res.Dropped > 0 {
		ui.Warning("%d file(s) could not be fetched and were skipped", res.Dropped)
	}
	ui.Success("Fetched %d of %d iOS-relevant files from %s/%s@%s",
		len(res.Files), res.Relevant, ref.Owner, ref.Repo, res.Branch)

	excluded := make(map[string]bool, len(analyzeExclude))
	for _, path := range analyzeExclude {
		excluded[path] = true
	}

	var kept []repo.File
	for _, f := range res.Files {
		if !excluded[f.Path] {
			kept = append(kept, f)
		}
	}

	form.Code = repo.AppendSource(form.Code, repo.CombinedSource(res.Files))
	form.RepoOwner = ref.Owner
	form.RepoName = ref.Repo
	form.RepoBranch = res.Branch
	for _, f := range kept {
		form.RepoPaths = append(form.RepoPaths, f.Path)
	}

	if strings.TrimSpace(form.AppName) == "" {
		form.AppName = repo.ProductName(kept, ref.Repo)
	}
	return nil
}

func hasAnyInput(form *prompt.Form) bool {
	fields := []string{form.Code, form.Description, form.AppName, form.Subtitle, form.Keywords, form.AgeRating}
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return true
		}
	}
	return false
}

// finishAnalyze appends the report to history and optionally exports
// it. Persistence failures degrade to a verbose note; the analysis has
// already been rendered.
func finishAnalyze(ctx context.Context, result *models.AnalysisResult, appName string, persist bool) error {
	if persist {
		entry := &models.HistoryEntry{
			AppName:         appName,
			ComplianceScore: result.ComplianceScore,
			HighCount:       result.RiskSummary.High,
			MediumCount:     result.RiskSummary.Medium,
			LowCount:        result.RiskSummary.Low,
			Result:          result,
		}
		if err := getStore().Append(ctx, entry); err != nil {
			ui.VerboseLog("could not persist history entry: %v", err)
		}
	}

	if analyzeExport {
		path := report.Filename(time.Now())
		if err := os.WriteFile(path, []byte(report.Markdown(result, time.Now())), 0644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		ui.Success("Report exported to %s", path)
	}
	return nil
}
