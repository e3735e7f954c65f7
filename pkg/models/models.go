// Package models defines data structures shared across the application.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// IssueState is the state of a GitHub issue as reported by the tracker.
type IssueState string

const (
	// StateOpen marks an issue that is still open.
	StateOpen IssueState = "OPEN"
	// StateClosed marks an issue that has been closed.
	StateClosed IssueState = "CLOSED"
)

// RawComment represents a single issue comment as fetched from GitHub
type RawComment struct {
	// Body is the raw markdown body of the comment
	Body string

	// CreatedAt is the timestamp when the comment was created
	CreatedAt time.Time

	// URL is the html link to the comment
	URL string
}

// RawIssue represents a GitHub issue together with its comments
type RawIssue struct {
	// Number is the issue number in GitHub (e.g., 42)
	Number int

	// Title is the issue's title or summary
	Title string

	// State is the current state of the issue
	State IssueState

	// UpdatedAt is the timestamp when the issue was last updated
	UpdatedAt time.Time

	// ClosedAt is the timestamp when the issue was closed
	ClosedAt *time.Time

	// Comments holds the issue comments in the order the tracker returned them
	Comments []RawComment
}

// ReportRecord is the per-issue status report extracted from a qualifying
// comment. Fields carries every markup field found in the comment; Number,
// Title, URL and Summary are owned by the record itself.
type ReportRecord struct {
	Number  int
	Title   string
	URL     string
	Summary *string
	Fields  map[string]string
}

// Field returns the named markup field and whether it was present.
func (r ReportRecord) Field(name string) (string, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// MarshalJSON flattens Fields next to the fixed keys, which take precedence.
func (r ReportRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+4)
	for k, v := range r.Fields {
		out[k] = v
	}
	out["number"] = r.Number
	out["title"] = r.Title
	out["url"] = r.URL
	out["summary"] = r.Summary
	return json.Marshal(out)
}

// UnmarshalJSON reverses MarshalJSON. Unknown keys with string values are
// collected into Fields, anything else is dropped.
func (r *ReportRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var rec ReportRecord
	for key, value := range raw {
		var err error
		switch key {
		case "number":
			err = json.Unmarshal(value, &rec.Number)
		case "title":
			err = json.Unmarshal(value, &rec.Title)
		case "url":
			err = json.Unmarshal(value, &rec.URL)
		case "summary":
			err = json.Unmarshal(value, &rec.Summary)
		default:
			var s string
			if json.Unmarshal(value, &s) != nil {
				continue
			}
			if rec.Fields == nil {
				rec.Fields = make(map[string]string)
			}
			rec.Fields[key] = s
		}
		if err != nil {
			return fmt.Errorf("invalid report record field %q: %w", key, err)
		}
	}

	*r = rec
	return nil
}
