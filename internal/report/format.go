package report

import (
	"fmt"
	"strings"

	"github.com/danielolaszy/rollup/pkg/models"
)

// missing is printed where a report lacks a field the layout expects.
const missing = "undefined"

// PlainReport is the view of a report handed to the discussion template.
type PlainReport struct {
	Title   string
	Body    string
	Summary *string
}

// Title renders the status line of a report, e.g.
// "🟢 (on track) **[Issue title](https://...)**".
func Title(r models.ReportRecord) string {
	glyph, description := missing, missing
	if trending, ok := r.Field(fieldTrending); ok {
		parts := strings.Split(strings.TrimSpace(trending), " ")
		glyph = parts[0]
		description = strings.Join(parts[1:], " ")
	}
	return fmt.Sprintf("%s (%s) **[%s](%s)**", glyph, description, r.Title, r.URL)
}

// Body renders the target date, when set, followed by the update text.
func Body(r models.ReportRecord) string {
	var b strings.Builder
	if target := targetDate(r); target != "" {
		fmt.Fprintf(&b, "Target Date: %s\n", target)
	}
	update, ok := r.Field(fieldUpdate)
	if !ok {
		update = missing
	}
	b.WriteString(update)
	return b.String()
}

// Summary returns the summarizer output for r, nil if there is none.
func Summary(r models.ReportRecord) *string {
	return r.Summary
}

// Plain projects r onto the fields the discussion template reads.
func Plain(r models.ReportRecord) PlainReport {
	return PlainReport{
		Title:   Title(r),
		Body:    Body(r),
		Summary: Summary(r),
	}
}

func targetDate(r models.ReportRecord) string {
	target, _ := r.Field(fieldTargetDate)
	return target
}
