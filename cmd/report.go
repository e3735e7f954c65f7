package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/rollup/internal/config"
	"github.com/danielolaszy/rollup/internal/ghoutput"
	"github.com/danielolaszy/rollup/internal/github"
	"github.com/danielolaszy/rollup/internal/logging"
	"github.com/danielolaszy/rollup/internal/render"
	"github.com/danielolaszy/rollup/internal/rollup"
	"github.com/danielolaszy/rollup/internal/summarize"
)

// reportCmd represents the command that builds and publishes the weekly rollup.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Publish the weekly report rollup discussion",
	Long: `Publish the weekly report rollup discussion.

This command:

1. Reads every issue of REPO_OWNER/REPO_NAME updated in the last 7 days
2. Picks the latest status report comment of each issue posted in that window
3. Summarizes the reports with the script at SUMMARIZE_SCRIPT
4. Creates a discussion titled TITLE in the CATEGORY_SLUG discussion category
5. Writes a run summary to GITHUB_STEP_SUMMARY, or stdout outside of Actions

Status report comments declare themselves with hidden markup:

  <!-- data key="trending" start -->
  🟢 on track
  <!-- data end -->
  <!-- data key="update" start -->
  What happened this week
  <!-- data end -->
  <!-- data key="isSummaryReport" value="true" -->
  <!-- data key="summaryReportName" value="summary" -->

Set IS_DRY_RUN=true or pass --dry-run to skip creating the discussion.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, err := cmd.Flags().GetBool("dry-run")
		if err != nil {
			return err
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if dryRun {
			cfg.Report.DryRun = true
		}

		githubClient, err := github.NewClient(cfg.GitHub)
		if err != nil {
			return fmt.Errorf("failed to initialize github client: %w", err)
		}

		renderer, err := render.New(cfg.Report.TemplatePath)
		if err != nil {
			return err
		}

		runner := &rollup.Runner{
			Tracker: githubClient,
			Summarizer: &summarize.Script{
				Path:    cfg.Summarizer.Script,
				Testing: cfg.Summarizer.Testing,
			},
			Renderer: renderer,
		}

		result, err := runner.Run(cmd.Context(), cfg.Report)
		if err != nil {
			return err
		}

		return publish(cmd.OutOrStdout(), result)
	},
}

func init() {
	reportCmd.Flags().Bool("dry-run", false, "build the rollup without creating the discussion")
}

// publish writes the run summary and the step outputs.
func publish(stdout io.Writer, result rollup.Result) error {
	logging.Info("writing run summary")
	written, err := ghoutput.WriteSummary(result.Summary)
	if err != nil {
		return err
	}
	if !written {
		fmt.Fprint(stdout, result.Summary)
	}

	return ghoutput.Write(map[string]string{
		"discussion_url": result.URL,
		"active_count":   strconv.Itoa(result.Active),
		"closed_count":   strconv.Itoa(result.Closed),
	})
}
