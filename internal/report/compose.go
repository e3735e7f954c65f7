package report

import (
	"fmt"
	"strings"

	"github.com/danielolaszy/rollup/pkg/models"
)

// DryRunURL stands in for the discussion URL when nothing was created.
const DryRunURL = "dry_run"

// Renderer turns template data into a document.
type Renderer interface {
	Render(data any) (string, error)
}

// BuildDiscussionBody renders the rollup discussion for the given reports.
func BuildDiscussionBody(r Renderer, active, closed []models.ReportRecord) (string, error) {
	data := map[string]any{
		"activeIssuesData": plainAll(active),
		"closedIssuesData": plainAll(closed),
	}

	body, err := r.Render(data)
	if err != nil {
		return "", fmt.Errorf("failed to render discussion body: %w", err)
	}
	return body, nil
}

// CreateSummaryContent builds the markdown run summary pointing at the
// created discussion, or naming it when url is DryRunURL.
func CreateSummaryContent(title, url string, active, closed []models.ReportRecord) string {
	var lines []string
	if url == DryRunURL {
		lines = append(lines, "### Weekly Report Dry Run", title)
	} else {
		lines = append(lines, "### Weekly Report Created", fmt.Sprintf("[%s](%s)", title, url))
	}

	lines = append(lines, "### 🟢 Weekly Report Issues")
	if len(active) == 0 {
		lines = append(lines, "No active issues found")
	}
	for _, r := range active {
		lines = append(lines, Title(r))
		if target := targetDate(r); target != "" {
			lines = append(lines, "Target Date: "+target)
		}
		if s := Summary(r); s != nil && *s != "" {
			lines = append(lines, *s)
		}
	}

	lines = append(lines, "### 🟣 Closed Issues")
	if len(closed) == 0 {
		lines = append(lines, "No closed issues found")
	}
	for _, r := range closed {
		lines = append(lines, Title(r))
		if s := Summary(r); s != nil && *s != "" {
			lines = append(lines, *s)
		}
	}

	return strings.Join(lines, "\n") + "\n"
}

func plainAll(records []models.ReportRecord) []PlainReport {
	out := make([]PlainReport, 0, len(records))
	for _, r := range records {
		out = append(out, Plain(r))
	}
	return out
}
