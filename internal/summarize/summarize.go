// Package summarize fills in the summary of selected reports.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/danielolaszy/rollup/internal/logging"
	"github.com/danielolaszy/rollup/pkg/models"
)

// Summarizer returns records with Summary filled in, in input order. On
// failure it returns the input records unchanged along with the error.
type Summarizer interface {
	Summarize(ctx context.Context, records []models.ReportRecord) ([]models.ReportRecord, error)
}

// Func adapts a plain function to a Summarizer.
type Func func(ctx context.Context, records []models.ReportRecord) ([]models.ReportRecord, error)

// Summarize calls f.
func (f Func) Summarize(ctx context.Context, records []models.ReportRecord) ([]models.ReportRecord, error) {
	return f(ctx, records)
}

// Script runs an external summarizer script.
//
// The script is called as `<Path> <records> <testing>` where records is a
// JSON array whose elements are the JSON-encoded records as strings, and
// testing is "true" or "false". It must print a JSON array of the records
// with summaries, in the same order, and nothing on stderr.
type Script struct {
	Path    string
	Testing bool
}

// Summarize runs the script over records.
func (s *Script) Summarize(ctx context.Context, records []models.ReportRecord) ([]models.ReportRecord, error) {
	if len(records) == 0 {
		return records, nil
	}

	payload, err := encodePayload(records)
	if err != nil {
		return records, err
	}

	cmd := exec.CommandContext(ctx, s.Path, payload, strconv.FormatBool(s.Testing))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.Debug("running summarizer script", "script", s.Path, "records", len(records))

	if err := cmd.Run(); err != nil {
		return records, fmt.Errorf("summarizer script %s failed: %w (stderr: %s)", s.Path, err, strings.TrimSpace(stderr.String()))
	}
	if stderr.Len() > 0 {
		return records, fmt.Errorf("summarizer script %s reported: %s", s.Path, strings.TrimSpace(stderr.String()))
	}

	var summarized []models.ReportRecord
	if err := json.Unmarshal(stdout.Bytes(), &summarized); err != nil {
		return records, fmt.Errorf("failed to decode summarizer output: %w", err)
	}
	if len(summarized) != len(records) {
		return records, fmt.Errorf("summarizer returned %d records, expected %d", len(summarized), len(records))
	}

	return summarized, nil
}

// encodePayload encodes every record on its own, then the list of encoded
// strings.
func encodePayload(records []models.ReportRecord) (string, error) {
	encoded := make([]string, 0, len(records))
	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return "", fmt.Errorf("failed to encode report for issue #%d: %w", r.Number, err)
		}
		encoded = append(encoded, string(data))
	}

	data, err := json.Marshal(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to encode summarizer payload: %w", err)
	}
	return string(data), nil
}
