package figsync

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDemoSchedule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	require.NoError(t, WriteDemoSchedule(path, nil))

	raw, fields, err := LoadSchedule(path)
	require.NoError(t, err)
	assert.Equal(t, DemoFieldColumns, fields)

	schedule, issues := ValidateSchedule(raw, fields, path)
	require.Empty(t, issues)
	assert.Equal(t, []string{"LON_001", "LON_002", "MCR_001"}, schedule.Keys())

	v, ok := schedule.Value("LON_001", "MV")
	require.True(t, ok)
	assert.Equal(t, 2500000.0, v)

	v, ok = schedule.Value("MCR_001", "CAPITAL_VALUE")
	require.True(t, ok)
	assert.Equal(t, 78.57, v)
}

func TestWriteDemoScheduleSubset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	require.NoError(t, WriteDemoSchedule(path, DemoAssets[:1]))

	raw, fields, err := LoadSchedule(path)
	require.NoError(t, err)
	schedule, issues := ValidateSchedule(raw, fields, path)
	require.Empty(t, issues)
	assert.Equal(t, []string{"LON_001"}, schedule.Keys())
}

func TestWriteDemoReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.docx")
	require.NoError(t, WriteDemoReport(path, nil))

	doc, err := OpenReport(path)
	require.NoError(t, err)

	text := documentText(doc)
	assert.Contains(t, text, "Executive Summary")
	assert.Contains(t, text, "100 Bishopsgate, EC2")
	assert.Contains(t, text, "1 Spinningfields, M3")

	// The footer token is reachable through the section walk.
	assert.Contains(t, text, "{{MV:LON_001:£m}}")

	// Narrative tokens are split across runs on purpose; the combined
	// paragraph text must still parse as placeholders.
	tokens := ParseTokens(text)
	assert.NotEmpty(t, tokens)
}

func TestDemoFilesSyncCleanly(t *testing.T) {
	dir := t.TempDir()
	schedulePath := filepath.Join(dir, "schedule.xlsx")
	reportPath := filepath.Join(dir, "report.docx")
	require.NoError(t, WriteDemoSchedule(schedulePath, nil))
	require.NoError(t, WriteDemoReport(reportPath, nil))

	raw, fields, err := LoadSchedule(schedulePath)
	require.NoError(t, err)
	schedule, issues := ValidateSchedule(raw, fields, schedulePath)
	require.Empty(t, issues)

	doc, err := OpenReport(reportPath)
	require.NoError(t, err)
	report := NewAuditReport()
	Substitute(doc, schedule, report)

	// The demo pair is built to sync without a single issue.
	assert.Equal(t, 0, report.ErrorCount())
	assert.Equal(t, 0, report.WarnCount())
	assert.Equal(t, report.PlaceholdersFound(), report.SubstitutionsOK())
	assert.Greater(t, report.SubstitutionsOK(), 0)

	text := documentText(doc)
	assert.NotContains(t, text, "{{")
	assert.Contains(t, text, "£2,500,000")
	assert.Contains(t, text, "4.75%")
	assert.Contains(t, text, "22,000 sq ft")
	assert.Contains(t, text, "£114 psf")
	assert.Contains(t, text, "£2.5m")

	// The synced document packages and reopens cleanly.
	outPath := filepath.Join(dir, "report_synced.docx")
	require.NoError(t, doc.Save(outPath))
	reopened, err := OpenReport(outPath)
	require.NoError(t, err)
	assert.NotContains(t, documentText(reopened), "{{")
}
