// Package config provides centralized configuration management for the application.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultSummarizeScript is where the summarizer script lives when
// SUMMARIZE_SCRIPT is not set.
const DefaultSummarizeScript = "./scripts/summarize.sh"

// Config holds all configuration parameters for the application.
type Config struct {
	GitHub     GitHubConfig
	Report     ReportConfig
	Summarizer SummarizerConfig
}

// GitHubConfig holds GitHub specific configuration.
type GitHubConfig struct {
	Token  string
	Domain string
}

// ReportConfig describes which repository is scanned and where the
// rollup discussion goes.
type ReportConfig struct {
	Owner        string
	Repo         string
	CategorySlug string
	Title        string
	DryRun       bool
	// TemplatePath overrides the built-in discussion template.
	TemplatePath string
}

// SummarizerConfig holds the external summarizer settings.
type SummarizerConfig struct {
	Script  string
	Testing bool
}

// LoadConfig initializes and loads configuration from environment variables.
// A .env file in the working directory is loaded first when present; values
// already set in the environment win.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("github.token", "GH_TOKEN", "GITHUB_TOKEN")
	v.BindEnv("github.domain", "GITHUB_DOMAIN")
	v.BindEnv("report.owner", "REPO_OWNER")
	v.BindEnv("report.repo", "REPO_NAME")
	v.BindEnv("report.category", "CATEGORY_SLUG")
	v.BindEnv("report.title", "TITLE")
	v.BindEnv("report.dry_run", "IS_DRY_RUN")
	v.BindEnv("report.template", "TEMPLATE_PATH")
	v.BindEnv("summarizer.script", "SUMMARIZE_SCRIPT")
	v.BindEnv("summarizer.testing", "SUMMARIZE_TESTING")

	v.SetDefault("github.domain", "github.com")
	v.SetDefault("summarizer.script", DefaultSummarizeScript)

	config := &Config{
		GitHub: GitHubConfig{
			Token:  v.GetString("github.token"),
			Domain: v.GetString("github.domain"),
		},
		Report: ReportConfig{
			Owner:        v.GetString("report.owner"),
			Repo:         v.GetString("report.repo"),
			CategorySlug: v.GetString("report.category"),
			Title:        v.GetString("report.title"),
			DryRun:       v.GetString("report.dry_run") == "true",
			TemplatePath: v.GetString("report.template"),
		},
		Summarizer: SummarizerConfig{
			Script:  v.GetString("summarizer.script"),
			Testing: v.GetString("summarizer.testing") == "true",
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validateConfig ensures that all required configuration values are provided.
func validateConfig(config *Config) error {
	var missingVars []string

	if config.GitHub.Token == "" {
		missingVars = append(missingVars, "GH_TOKEN")
	}
	if config.Report.Owner == "" {
		missingVars = append(missingVars, "REPO_OWNER")
	}
	if config.Report.Repo == "" {
		missingVars = append(missingVars, "REPO_NAME")
	}
	if config.Report.CategorySlug == "" {
		missingVars = append(missingVars, "CATEGORY_SLUG")
	}
	if config.Report.Title == "" {
		missingVars = append(missingVars, "TITLE")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	return nil
}
