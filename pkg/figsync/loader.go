package figsync

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ScheduleOptions overrides where a schedule is read from inside the
// workbook. Empty fields keep the defaults.
type ScheduleOptions struct {
	SheetName  string
	KeyColumn  string
	NameColumn string
	// FieldColumns restricts and orders the field columns to read. Empty
	// means every non-identity header in sheet order.
	FieldColumns []string
}

func (o ScheduleOptions) withDefaults() ScheduleOptions {
	if o.SheetName == "" {
		o.SheetName = ScheduleSheetName
	}
	if o.KeyColumn == "" {
		o.KeyColumn = ColumnAssetID
	}
	if o.NameColumn == "" {
		o.NameColumn = ColumnAssetName
	}
	return o
}

// LoadSchedule reads the Schedule worksheet of an Excel workbook with
// the default sheet and column names.
func LoadSchedule(path string) (RawSchedule, []string, error) {
	return LoadScheduleOptions(path, ScheduleOptions{})
}

// LoadScheduleOptions reads the schedule worksheet of an Excel workbook
// and returns the raw row data plus the ordered field column names, with
// the identity columns excluded. No semantic checks happen here; a
// missing sheet or missing identity columns read as an empty schedule so
// validation can report the specifics.
//
// Keys are trimmed and uppercased. A blank key cell is presented under
// EmptyKeyMarker and a repeated key under a DuplicateKeyMarker suffix,
// so every row survives into validation.
func LoadScheduleOptions(path string, opts ScheduleOptions) (RawSchedule, []string, error) {
	opts = opts.withDefaults()
	log.Debug("loading schedule",
		zap.String("path", path), zap.String("sheet", opts.SheetName))

	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, NewScheduleError(path, err)
	}
	defer wb.Close()

	idx, err := wb.GetSheetIndex(opts.SheetName)
	if err != nil || idx == -1 {
		log.Debug("schedule sheet not found", zap.String("sheet", opts.SheetName))
		return RawSchedule{}, []string{}, nil
	}

	// Raw cell values, so numbers arrive unformatted the way they were
	// entered rather than with display commas applied.
	rows, err := wb.GetRows(opts.SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, NewScheduleError(path, err)
	}
	if len(rows) == 0 {
		return RawSchedule{}, []string{}, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	// Case-insensitive column lookup; a repeated header keeps its last
	// position.
	headerIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		headerIndex[strings.ToLower(h)] = i
	}

	keyCol, hasKey := headerIndex[strings.ToLower(opts.KeyColumn)]
	_, hasName := headerIndex[strings.ToLower(opts.NameColumn)]
	if !hasKey || !hasName {
		log.Debug("identity columns not found",
			zap.Bool("key_column", hasKey), zap.Bool("name_column", hasName))
		return RawSchedule{}, []string{}, nil
	}

	var fieldNames []string
	if len(opts.FieldColumns) > 0 {
		for _, f := range opts.FieldColumns {
			if _, ok := headerIndex[strings.ToLower(f)]; ok {
				fieldNames = append(fieldNames, strings.ToUpper(f))
			}
		}
	} else {
		for _, h := range headers {
			lower := strings.ToLower(h)
			if h == "" || lower == strings.ToLower(opts.KeyColumn) || lower == strings.ToLower(opts.NameColumn) {
				continue
			}
			fieldNames = append(fieldNames, strings.ToUpper(h))
		}
	}

	raw := RawSchedule{}
	for _, row := range rows[1:] {
		if rowEmpty(row) {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(cellString(row, keyCol)))
		if key == "" {
			key = EmptyKeyMarker
		}

		fields := make(map[string]any, len(fieldNames))
		for _, fn := range fieldNames {
			col, ok := headerIndex[strings.ToLower(fn)]
			if !ok {
				fields[fn] = nil
				continue
			}
			fields[fn] = cellValue(row, col)
		}

		if _, exists := raw[key]; exists {
			raw[mangleDuplicate(raw, key)] = fields
		} else {
			raw[key] = fields
		}
	}

	log.Debug("schedule loaded",
		zap.Int("rows", len(raw)), zap.Int("fields", len(fieldNames)))
	return raw, fieldNames, nil
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

func cellString(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// cellValue maps an empty cell to nil so blank cells and cells that were
// never written read the same way.
func cellValue(row []string, col int) any {
	s := cellString(row, col)
	if s == "" {
		return nil
	}
	return s
}

// mangleDuplicate finds the first free numbered slot for a repeated key,
// so a key occurring three times keeps all three rows.
func mangleDuplicate(raw RawSchedule, key string) string {
	for n := 1; ; n++ {
		mangled := fmt.Sprintf("%s%s%d", key, DuplicateKeyMarker, n)
		if _, taken := raw[mangled]; !taken {
			return mangled
		}
	}
}
