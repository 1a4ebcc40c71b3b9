package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lyzr-apps/storecheck/internal/history"
	"github.com/lyzr-apps/storecheck/internal/output"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var (
	ui           *output.UI
	historyStore history.Store

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "storecheck",
	Short: "App Store compliance analyzer - check iOS apps before submission",
	Long: `storecheck analyzes iOS app submission artifacts against the Apple
App Store Review Guidelines. It collects source code (pasted, from a
file, or ingested from a public GitHub repository) and App Store
metadata, sends them to an AI compliance agent, and renders a scored
report with violations, a readiness verdict, and prioritized fixes.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initDeps)

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/storecheck/config.yaml)")
}

func initConfig() {
	// If --config is explicitly set, use that file
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot find home directory: %v\n", err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "storecheck")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("STORECHECK")
	viper.AutomaticEnv()

	// Defaults via viper.SetDefault()
	home, _ := os.UserHomeDir()
	defaultConfigDir := filepath.Join(home, ".config", "storecheck")

	viper.SetDefault("db_path", filepath.Join(defaultConfigDir, "storecheck.db"))
	viper.SetDefault("anthropic.api_key", "")
	viper.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	viper.SetDefault("github.token", "")
	viper.SetDefault("analysis.max_files", 15)
	viper.SetDefault("analysis.max_file_size", 100000)
	viper.SetDefault("environments_file", "")

	// Read config file if it exists (optional)
	_ = viper.ReadInConfig()
}

func initDeps() {
	ui = output.New()
	ui.Verbose = verbose

	// Store is initialized lazily, only when commands actually need it.
	// This allows config/version/envs commands to run without a db.
}

// getStore returns the shared history store, initializing it on first
// call. An unopenable or unmigratable database degrades to an empty
// in-memory store so the analysis flow never fails on persistence.
func getStore() history.Store {
	if historyStore != nil {
		return historyStore
	}

	dbPath := viper.GetString("db_path")
	s, err := history.NewSQLiteStore(dbPath)
	if err != nil {
		ui.VerboseLog("history unavailable, using in-memory store: %v", err)
		historyStore = history.NewMemoryStore()
		return historyStore
	}

	if err := s.Migrate(rootCmd.Context()); err != nil {
		_ = s.Close()
		ui.VerboseLog("history unavailable, using in-memory store: %v", err)
		historyStore = history.NewMemoryStore()
		return historyStore
	}

	historyStore = s
	return historyStore
}
