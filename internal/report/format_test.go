package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielolaszy/rollup/pkg/models"
)

func strPtr(s string) *string { return &s }

func TestFormat(t *testing.T) {
	rec := models.ReportRecord{
		Number:  1,
		Title:   "Active Issue",
		URL:     "https://123.com",
		Summary: strPtr("Summary 123"),
		Fields: map[string]string{
			"trending":    "🟢 on track",
			"target_date": "2022-01-01",
			"update":      "Update",
		},
	}

	assert.Equal(t, "🟢 (on track) **[Active Issue](https://123.com)**", Title(rec))
	assert.Equal(t, "Target Date: 2022-01-01\nUpdate", Body(rec))
	assert.Equal(t, strPtr("Summary 123"), Summary(rec))
	assert.Equal(t, PlainReport{
		Title:   "🟢 (on track) **[Active Issue](https://123.com)**",
		Body:    "Target Date: 2022-01-01\nUpdate",
		Summary: strPtr("Summary 123"),
	}, Plain(rec))
}

func TestTitle(t *testing.T) {
	testCases := []struct {
		name     string
		fields   map[string]string
		expected string
	}{
		{
			name:     "Trending from a block field",
			fields:   map[string]string{"trending": "🟡 at risk\n"},
			expected: "🟡 (at risk) **[T](https://u)**",
		},
		{
			name:     "Glyph only",
			fields:   map[string]string{"trending": "🟣"},
			expected: "🟣 () **[T](https://u)**",
		},
		{
			name:     "Missing trending",
			fields:   map[string]string{},
			expected: "undefined (undefined) **[T](https://u)**",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := models.ReportRecord{Title: "T", URL: "https://u", Fields: tc.fields}
			assert.Equal(t, tc.expected, Title(rec))
		})
	}
}

func TestBody(t *testing.T) {
	testCases := []struct {
		name     string
		fields   map[string]string
		expected string
	}{
		{
			name:     "Update only",
			fields:   map[string]string{"update": "shipped"},
			expected: "shipped",
		},
		{
			name:     "Empty target date is skipped",
			fields:   map[string]string{"target_date": "", "update": "shipped"},
			expected: "shipped",
		},
		{
			name:     "Missing update",
			fields:   map[string]string{"target_date": "2024-06-01"},
			expected: "Target Date: 2024-06-01\nundefined",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Body(models.ReportRecord{Fields: tc.fields}))
		})
	}
}
