package figsync

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook writes rows, header row first, to one sheet of a fresh
// workbook in a temp dir and returns its path.
func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.xlsx")

	wb := excelize.NewFile()
	require.NoError(t, wb.SetSheetName(wb.GetSheetName(0), sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())
	return path
}

func TestLoadSchedule(t *testing.T) {
	path := writeWorkbook(t, ScheduleSheetName, [][]any{
		{"Asset_ID", "Asset_Name", "MV", "NIY"},
		{"LON_001", "100 Bishopsgate", 2500000, 0.0475},
		{"MCR_001", "1 Spinningfields", 1100000, 0.06},
	})

	raw, fields, err := LoadSchedule(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"MV", "NIY"}, fields)
	require.Len(t, raw, 2)
	require.Contains(t, raw, "LON_001")
	assert.Equal(t, "2500000", raw["LON_001"]["MV"])

	// End to end through validation the numbers come out typed.
	schedule, issues := ValidateSchedule(raw, fields, path)
	require.Empty(t, issues)
	v, ok := schedule.Value("LON_001", "NIY")
	require.True(t, ok)
	assert.Equal(t, 0.0475, v)
}

func TestLoadScheduleHeaderHandling(t *testing.T) {
	t.Run("headers trimmed and matched case-insensitively", func(t *testing.T) {
		path := writeWorkbook(t, ScheduleSheetName, [][]any{
			{"  asset_id  ", "ASSET_NAME", " mv "},
			{"LON_001", "100 Bishopsgate", 2500000},
		})

		raw, fields, err := LoadSchedule(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"MV"}, fields)
		assert.Contains(t, raw, "LON_001")
	})

	t.Run("blank header columns skipped", func(t *testing.T) {
		path := writeWorkbook(t, ScheduleSheetName, [][]any{
			{"Asset_ID", "Asset_Name", "", "MV"},
			{"LON_001", "100 Bishopsgate", "note", 2500000},
		})

		_, fields, err := LoadSchedule(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"MV"}, fields)
	})
}

func TestLoadScheduleMissingStructure(t *testing.T) {
	t.Run("missing sheet", func(t *testing.T) {
		path := writeWorkbook(t, "Valuations", [][]any{
			{"Asset_ID", "Asset_Name", "MV"},
			{"LON_001", "100 Bishopsgate", 2500000},
		})

		raw, fields, err := LoadSchedule(path)
		require.NoError(t, err)
		assert.Empty(t, raw)
		assert.Empty(t, fields)

		// The sentinels drive the validator's fatal missing-sheet issue.
		_, issues := ValidateSchedule(raw, fields, path)
		require.Len(t, issues, 1)
		assert.Equal(t, CodeMissingSheet, issues[0].Code)
	})

	t.Run("missing identity column", func(t *testing.T) {
		path := writeWorkbook(t, ScheduleSheetName, [][]any{
			{"Asset_ID", "MV"},
			{"LON_001", 2500000},
		})

		raw, fields, err := LoadSchedule(path)
		require.NoError(t, err)
		assert.Empty(t, raw)
		assert.Empty(t, fields)
	})

	t.Run("empty sheet", func(t *testing.T) {
		path := writeWorkbook(t, ScheduleSheetName, nil)

		raw, fields, err := LoadSchedule(path)
		require.NoError(t, err)
		assert.Empty(t, raw)
		assert.Empty(t, fields)
	})

	t.Run("unreadable file", func(t *testing.T) {
		_, _, err := LoadSchedule(filepath.Join(t.TempDir(), "missing.xlsx"))
		require.Error(t, err)
		assert.True(t, IsScheduleError(err))
	})
}

func TestLoadScheduleKeys(t *testing.T) {
	t.Run("keys trimmed and uppercased", func(t *testing.T) {
		path := writeWorkbook(t, ScheduleSheetName, [][]any{
			{"Asset_ID", "Asset_Name", "MV"},
			{"  lon_001  ", "100 Bishopsgate", 2500000},
		})

		raw, _, err := LoadSchedule(path)
		require.NoError(t, err)
		assert.Contains(t, raw, "LON_001")
	})

	t.Run("duplicate keys mangled per occurrence", func(t *testing.T) {
		path := writeWorkbook(t, ScheduleSheetName, [][]any{
			{"Asset_ID", "Asset_Name", "MV"},
			{"LON_001", "first", 1000},
			{"LON_001", "second", 2000},
			{"LON_001", "third", 3000},
		})

		raw, _, err := LoadSchedule(path)
		require.NoError(t, err)
		assert.Len(t, raw, 3)
		assert.Contains(t, raw, "LON_001")
		assert.Contains(t, raw, "LON_001"+DuplicateKeyMarker+"1")
		assert.Contains(t, raw, "LON_001"+DuplicateKeyMarker+"2")
		assert.Equal(t, "3000", raw["LON_001"+DuplicateKeyMarker+"2"]["MV"])
	})

	t.Run("blank keys marked", func(t *testing.T) {
		path := writeWorkbook(t, ScheduleSheetName, [][]any{
			{"Asset_ID", "Asset_Name", "MV"},
			{"", "unnamed one", 1000},
			{"", "unnamed two", 2000},
		})

		raw, _, err := LoadSchedule(path)
		require.NoError(t, err)
		assert.Contains(t, raw, EmptyKeyMarker)
		assert.Contains(t, raw, EmptyKeyMarker+DuplicateKeyMarker+"1")
	})
}

func TestLoadScheduleRows(t *testing.T) {
	t.Run("blank rows skipped", func(t *testing.T) {
		path := writeWorkbook(t, ScheduleSheetName, [][]any{
			{"Asset_ID", "Asset_Name", "MV"},
			{"LON_001", "100 Bishopsgate", 2500000},
			{},
			{"MCR_001", "1 Spinningfields", 1100000},
		})

		raw, _, err := LoadSchedule(path)
		require.NoError(t, err)
		assert.Len(t, raw, 2)
	})

	t.Run("empty cells read as nil", func(t *testing.T) {
		path := writeWorkbook(t, ScheduleSheetName, [][]any{
			{"Asset_ID", "Asset_Name", "MV", "NIY"},
			{"LON_001", "100 Bishopsgate", nil, 0.0475},
		})

		raw, _, err := LoadSchedule(path)
		require.NoError(t, err)
		require.Contains(t, raw, "LON_001")
		assert.Nil(t, raw["LON_001"]["MV"])
		assert.Equal(t, "0.0475", raw["LON_001"]["NIY"])
	})

	t.Run("short rows read missing cells as nil", func(t *testing.T) {
		path := writeWorkbook(t, ScheduleSheetName, [][]any{
			{"Asset_ID", "Asset_Name", "MV", "NIY"},
			{"LON_001", "100 Bishopsgate"},
		})

		raw, _, err := LoadSchedule(path)
		require.NoError(t, err)
		require.Contains(t, raw, "LON_001")
		assert.Nil(t, raw["LON_001"]["MV"])
		assert.Nil(t, raw["LON_001"]["NIY"])
	})
}

func TestLoadScheduleOptions(t *testing.T) {
	t.Run("custom sheet and columns", func(t *testing.T) {
		path := writeWorkbook(t, "Valuations", [][]any{
			{"Property_Ref", "Property_Name", "MV"},
			{"LON_001", "100 Bishopsgate", 2500000},
		})

		raw, fields, err := LoadScheduleOptions(path, ScheduleOptions{
			SheetName:  "Valuations",
			KeyColumn:  "Property_Ref",
			NameColumn: "Property_Name",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"MV"}, fields)
		assert.Contains(t, raw, "LON_001")
	})

	t.Run("field columns filter and order", func(t *testing.T) {
		path := writeWorkbook(t, ScheduleSheetName, [][]any{
			{"Asset_ID", "Asset_Name", "MV", "NIY", "RENT"},
			{"LON_001", "100 Bishopsgate", 2500000, 0.0475, 112500},
		})

		raw, fields, err := LoadScheduleOptions(path, ScheduleOptions{
			FieldColumns: []string{"rent", "MV", "BOGUS"},
		})
		require.NoError(t, err)

		// Declared order wins and unknown requests are dropped.
		assert.Equal(t, []string{"RENT", "MV"}, fields)
		require.Contains(t, raw, "LON_001")
		assert.Equal(t, "112500", raw["LON_001"]["RENT"])
		assert.NotContains(t, raw["LON_001"], "NIY")
	})
}
