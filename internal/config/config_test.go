package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv sets every required variable, then applies overrides.
func setRequiredEnv(t *testing.T, overrides map[string]string) {
	t.Helper()
	env := map[string]string{
		"GH_TOKEN":          "test-token",
		"GITHUB_TOKEN":      "",
		"GITHUB_DOMAIN":     "",
		"REPO_OWNER":        "octo",
		"REPO_NAME":         "roadmap",
		"CATEGORY_SLUG":     "weekly-reports",
		"TITLE":             "Weekly Report",
		"IS_DRY_RUN":        "",
		"TEMPLATE_PATH":     "",
		"SUMMARIZE_SCRIPT":  "",
		"SUMMARIZE_TESTING": "",
	}
	for k, v := range overrides {
		env[k] = v
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t, nil)

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "test-token", config.GitHub.Token)
	assert.Equal(t, "github.com", config.GitHub.Domain)
	assert.Equal(t, ReportConfig{
		Owner:        "octo",
		Repo:         "roadmap",
		CategorySlug: "weekly-reports",
		Title:        "Weekly Report",
	}, config.Report)
	assert.Equal(t, SummarizerConfig{Script: DefaultSummarizeScript}, config.Summarizer)
}

func TestLoadConfigOptionalValues(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		verify func(t *testing.T, config *Config)
	}{
		{
			name: "Dry run enabled",
			env:  map[string]string{"IS_DRY_RUN": "true"},
			verify: func(t *testing.T, config *Config) {
				assert.True(t, config.Report.DryRun)
			},
		},
		{
			name: "Dry run needs the literal true",
			env:  map[string]string{"IS_DRY_RUN": "yes"},
			verify: func(t *testing.T, config *Config) {
				assert.False(t, config.Report.DryRun)
			},
		},
		{
			name: "Enterprise domain",
			env:  map[string]string{"GITHUB_DOMAIN": "github.example.com"},
			verify: func(t *testing.T, config *Config) {
				assert.Equal(t, "github.example.com", config.GitHub.Domain)
			},
		},
		{
			name: "GITHUB_TOKEN fallback",
			env:  map[string]string{"GH_TOKEN": "", "GITHUB_TOKEN": "actions-token"},
			verify: func(t *testing.T, config *Config) {
				assert.Equal(t, "actions-token", config.GitHub.Token)
			},
		},
		{
			name: "Summarizer overrides",
			env:  map[string]string{"SUMMARIZE_SCRIPT": "/opt/summarize.sh", "SUMMARIZE_TESTING": "true"},
			verify: func(t *testing.T, config *Config) {
				assert.Equal(t, SummarizerConfig{Script: "/opt/summarize.sh", Testing: true}, config.Summarizer)
			},
		},
		{
			name: "Template path",
			env:  map[string]string{"TEMPLATE_PATH": "templates/custom.md.tmpl"},
			verify: func(t *testing.T, config *Config) {
				assert.Equal(t, "templates/custom.md.tmpl", config.Report.TemplatePath)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t, tt.env)

			config, err := LoadConfig()
			require.NoError(t, err)
			tt.verify(t, config)
		})
	}
}

func TestLoadConfigMissingValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		missing []string
	}{
		{
			name:    "Missing token",
			env:     map[string]string{"GH_TOKEN": ""},
			missing: []string{"GH_TOKEN"},
		},
		{
			name:    "Missing category and title",
			env:     map[string]string{"CATEGORY_SLUG": "", "TITLE": ""},
			missing: []string{"CATEGORY_SLUG", "TITLE"},
		},
		{
			name: "Everything missing",
			env: map[string]string{
				"GH_TOKEN": "", "REPO_OWNER": "", "REPO_NAME": "", "CATEGORY_SLUG": "", "TITLE": "",
			},
			missing: []string{"GH_TOKEN", "REPO_OWNER", "REPO_NAME", "CATEGORY_SLUG", "TITLE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t, tt.env)

			config, err := LoadConfig()
			require.Error(t, err)
			assert.Nil(t, config)
			assert.Contains(t, err.Error(), "missing required environment variables")
			for _, name := range tt.missing {
				assert.Contains(t, err.Error(), name)
			}
		})
	}
}
