package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Title   string
	Body    string
	Summary *string
}

func strPtr(s string) *string { return &s }

func TestRenderDefaultTemplate(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)

	body, err := r.Render(map[string]any{
		"activeIssuesData": []item{
			{Title: "A", Body: "Target Date: 2024-01-01\nshipping", Summary: strPtr("sum A")},
		},
		"closedIssuesData": []item{
			{Title: "C", Body: "done", Summary: nil},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, body, "  - A\n    sum A\n")
	assert.Contains(t, body, "  - A\n    Target Date: 2024-01-01\n    shipping\n")
	assert.Contains(t, body, "  - C\n    \n")
	assert.Contains(t, body, "  - C\n    done\n")
	assert.NotContains(t, body, "<nil>")
}

func TestRenderEmptyLists(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)

	body, err := r.Render(map[string]any{
		"activeIssuesData": []item{},
		"closedIssuesData": []item{},
	})
	require.NoError(t, err)

	assert.Contains(t, body, "<!-- data key=\"activeProjectsSummary\" start -->\n\n<!-- data end -->")
	assert.Contains(t, body, "<!-- data key=\"closedProjectsRollup\" start -->\n\n<!-- data end -->")
}

func TestRenderMissingKey(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)

	_, err = r.Render(map[string]any{"activeIssuesData": []item{}})
	assert.Error(t, err)
}

func TestNewFromPath(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		wantErr  bool
		expected string
	}{
		{
			name:     "Valid template",
			content:  `{{ range .activeIssuesData }}* {{ .Title }}{{ end }}`,
			expected: "* A",
		},
		{
			name:    "Broken template",
			content: `{{ range .activeIssuesData }}`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "custom.md.tmpl")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))

			r, err := New(path)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			body, err := r.Render(map[string]any{"activeIssuesData": []item{{Title: "A"}}})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, body)
		})
	}
}

func TestNewMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.tmpl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read template")
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "a", indent(4, "a"))
	assert.Equal(t, "a\n  b\n  c", indent(2, "a\nb\nc"))
}
