package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/augmentlab/ftkit/internal/openai"
	"github.com/augmentlab/ftkit/internal/runs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []runs.Row {
	return []runs.Row{
		{
			Job:           runs.Job{Status: openai.JobStatusSucceeded},
			Style:         runs.StyleMagenta,
			DisplayName:   "ft:a [ep3] (not synced) - ftjob-1",
			Cost:          "~$0",
			Created:       "2026-03-10 11:00:00 (1 hour ago)",
			EstimatedCost: 0.4, EstimatedTokens: 52048.3,
		},
		{
			Job:           runs.Job{Status: openai.JobStatusRunning},
			Style:         runs.StyleBlue,
			DisplayName:   "gpt-4o (日本語.jsonl) [ep2] - ftjob-2",
			Cost:          "~$25",
			Created:       "2026-03-10 10:00:00 (2 hours ago)",
			EstimatedCost: 24, EstimatedTokens: 1_000_000,
		},
	}
}

func TestTable_Plain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, sampleRows(), NewPainter(false)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "+--"))
	assert.True(t, strings.HasPrefix(lines[1], "| Model "))
	assert.Contains(t, lines[3], "| ft:a [ep3] (not synced) - ftjob-1 ")
	assert.Contains(t, lines[3], "| succeeded |")
	assert.NotContains(t, buf.String(), "\x1b[")

	// Wide runes count double so every line has the same display width.
	for _, l := range lines {
		assert.Equal(t, len([]rune(lines[0])), len([]rune(l))+strings.Count(l, "日")+strings.Count(l, "本")+strings.Count(l, "語"), l)
	}
}

func TestTable_Colored(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, sampleRows(), NewPainter(true)))
	out := buf.String()
	assert.Contains(t, out, "\x1b[35m", "magenta row")
	assert.Contains(t, out, "\x1b[34m", "blue row")
}

func TestTable_DefaultStyleIsUncolored(t *testing.T) {
	rows := []runs.Row{{Style: runs.StyleDefault, DisplayName: "x", Job: runs.Job{Status: "succeeded"}}}
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, rows, NewPainter(true)))
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, nil, NewPainter(false)))
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	tests := []struct {
		mode           string
		force, noColor bool
		want           bool
	}{
		{ColorAlways, false, true, true},
		{ColorNever, true, false, false},
		{ColorAuto, true, false, true},
		{ColorAuto, true, true, true},
		{ColorAuto, false, true, false},
		{"", false, false, false},
	}
	for _, tt := range tests {
		got, err := ColorEnabled(tt.mode, tt.force, tt.noColor, &buf)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%+v", tt)
	}

	_, err := ColorEnabled("sometimes", false, false, &buf)
	assert.ErrorContains(t, err, `invalid color mode "sometimes"`)
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, sampleRows()))
	assert.Equal(t, "2 jobs, 1,052,048 estimated training tokens, ~$25 total\n", buf.String())
}

func TestSyncSuggestions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SyncSuggestions(&buf, []string{"a -i 1", "a -i 2"}))
	assert.Equal(t, "a -i 1;a -i 2\n", buf.String())
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, &runs.Report{Rows: sampleRows()[:1], SyncSuggestions: []string{"cmd"}}))
	assert.Contains(t, buf.String(), `"display_name": "ft:a [ep3] (not synced) - ftjob-1"`)
	assert.Contains(t, buf.String(), `"sync_suggestions": [`)
}
