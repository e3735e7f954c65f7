// Package report selects weekly status reports from issue comments and
// turns them into the rollup discussion and run summary.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/danielolaszy/rollup/internal/logging"
	"github.com/danielolaszy/rollup/internal/markup"
	"github.com/danielolaszy/rollup/pkg/models"
)

// Window is how far back a report comment may have been created.
const Window = 7 * 24 * time.Hour

const (
	fieldIsSummaryReport   = "isSummaryReport"
	fieldSummaryReportName = "summaryReportName"
	fieldUpdate            = "update"
	fieldTrending          = "trending"
	fieldTargetDate        = "target_date"

	reportName = "summary"
)

// Selection holds the selected reports split by issue state.
type Selection struct {
	Active []models.ReportRecord
	Closed []models.ReportRecord
}

// Select picks the most recent qualifying report comment of every issue.
// Open issues land in Active, all others in Closed; both keep the input
// issue order.
func Select(issues []models.RawIssue, now time.Time) Selection {
	var sel Selection
	cutoff := now.Add(-Window)

	for _, issue := range issues {
		if len(issue.Comments) == 0 {
			continue
		}

		rec, ok := selectIssue(issue, cutoff)
		if !ok {
			logging.Debug("no qualifying report comment", "issue_number", issue.Number)
			continue
		}

		if issue.State == models.StateOpen {
			sel.Active = append(sel.Active, rec)
		} else {
			sel.Closed = append(sel.Closed, rec)
		}
	}

	logging.Debug("selected report comments",
		"active_count", len(sel.Active),
		"closed_count", len(sel.Closed))

	return sel
}

func selectIssue(issue models.RawIssue, cutoff time.Time) (models.ReportRecord, bool) {
	comments := make([]models.RawComment, len(issue.Comments))
	copy(comments, issue.Comments)
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})

	for _, comment := range comments {
		fields := markup.Parse(comment.Body)
		if !qualifies(fields, comment, cutoff) {
			continue
		}
		return newRecord(issue, comment, fields), true
	}
	return models.ReportRecord{}, false
}

func qualifies(fields markup.Fields, comment models.RawComment, cutoff time.Time) bool {
	return fields[fieldIsSummaryReport] == "true" &&
		fields[fieldSummaryReportName] == reportName &&
		!comment.CreatedAt.Before(cutoff)
}

func newRecord(issue models.RawIssue, comment models.RawComment, fields markup.Fields) models.ReportRecord {
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	if update, ok := copied[fieldUpdate]; ok {
		copied[fieldUpdate] = strings.TrimSpace(update)
	}

	return models.ReportRecord{
		Number: issue.Number,
		Title:  issue.Title,
		URL:    comment.URL,
		Fields: copied,
	}
}
