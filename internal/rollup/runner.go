// Package rollup runs the weekly report pipeline: fetch issues, select
// report comments, summarize them and publish the rollup discussion.
package rollup

import (
	"context"
	"fmt"
	"time"

	"github.com/danielolaszy/rollup/internal/config"
	"github.com/danielolaszy/rollup/internal/github"
	"github.com/danielolaszy/rollup/internal/logging"
	"github.com/danielolaszy/rollup/internal/report"
	"github.com/danielolaszy/rollup/internal/summarize"
	"github.com/danielolaszy/rollup/pkg/models"
)

// Tracker is the issue tracker the rollup reads from and publishes to.
type Tracker interface {
	FetchIdentifiers(ctx context.Context, owner, repo, categorySlug string) (github.Identifiers, error)
	FetchIssuesWithComments(ctx context.Context, owner, repo string, since time.Time) ([]models.RawIssue, error)
	CreateDiscussion(ctx context.Context, repositoryID, categoryID, title, body string) (string, error)
}

// Runner wires the pipeline steps together. Steps run one after another.
type Runner struct {
	Tracker    Tracker
	Summarizer summarize.Summarizer
	Renderer   report.Renderer
	// Now defaults to time.Now.
	Now func() time.Time
}

// Result describes a finished run.
type Result struct {
	// URL is the created discussion, or report.DryRunURL.
	URL string
	// Body is the rendered discussion.
	Body string
	// Summary is the markdown run summary.
	Summary string
	Active  int
	Closed  int
}

// Run executes the pipeline for cfg.
func (r *Runner) Run(ctx context.Context, cfg config.ReportConfig) (Result, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	logging.Info("getting repository and category ids",
		"owner", cfg.Owner,
		"repo", cfg.Repo,
		"category", cfg.CategorySlug)
	ids, err := r.Tracker.FetchIdentifiers(ctx, cfg.Owner, cfg.Repo, cfg.CategorySlug)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get category or repository id: %w", err)
	}

	started := now()
	logging.Info("getting open and closed issue comments")
	issues, err := r.Tracker.FetchIssuesWithComments(ctx, cfg.Owner, cfg.Repo, started.Add(-report.Window))
	if err != nil {
		logging.Warn("continuing with partial issue list",
			"issue_count", len(issues),
			"error", err)
	}

	logging.Info("selecting report comments", "issue_count", len(issues))
	sel := report.Select(issues, started)

	logging.Info("creating report summaries",
		"active_count", len(sel.Active),
		"closed_count", len(sel.Closed))
	active := r.summarize(ctx, "active", sel.Active)
	closed := r.summarize(ctx, "closed", sel.Closed)

	logging.Info("building discussion body")
	body, err := report.BuildDiscussionBody(r.Renderer, active, closed)
	if err != nil {
		return Result{}, err
	}

	url := report.DryRunURL
	if cfg.DryRun {
		logging.Info("dry run, no discussion will be created")
	} else {
		logging.Info("creating discussion", "title", cfg.Title)
		url, err = r.Tracker.CreateDiscussion(ctx, ids.RepositoryID, ids.CategoryID, cfg.Title, body)
		if err != nil {
			return Result{}, fmt.Errorf("failed to create discussion: %w", err)
		}
	}

	return Result{
		URL:     url,
		Body:    body,
		Summary: report.CreateSummaryContent(cfg.Title, url, active, closed),
		Active:  len(active),
		Closed:  len(closed),
	}, nil
}

// summarize never fails the run: on error the records go on unsummarized.
func (r *Runner) summarize(ctx context.Context, partition string, records []models.ReportRecord) []models.ReportRecord {
	out, err := r.Summarizer.Summarize(ctx, records)
	if err != nil {
		logging.Warn("summarization failed, using unsummarized reports",
			"partition", partition,
			"error", err)
		return records
	}
	return out
}
