package figsync

// ScheduleSheetName is the worksheet substitution values are read from.
const ScheduleSheetName = "Schedule"

// Reserved column headers that identify a row. Every other non-empty
// header is treated as a numeric field column.
const (
	ColumnAssetID   = "Asset_ID"
	ColumnAssetName = "Asset_Name"
)

// Markers the loader uses to encode row anomalies so every row survives
// into validation. A blank key cell is presented under EmptyKeyMarker; a
// repeated key is presented as key + DuplicateKeyMarker + occurrence
// number.
const (
	EmptyKeyMarker     = "__EMPTY__"
	DuplicateKeyMarker = "__DUP__"
)

// RawSchedule is the loader's untyped output: key → field → raw cell
// value, before any validation.
type RawSchedule map[string]map[string]any

// Schedule is the validated substitution source: key → field → numeric
// value, with blank and "N/A" cells stored as missing. Keys iterate in
// sorted order.
type Schedule struct {
	fields   []string
	fieldSet map[string]struct{}
	keys     []string
	rows     map[string]map[string]*float64
}

func newSchedule(fields []string) *Schedule {
	s := &Schedule{
		fields:   fields,
		fieldSet: make(map[string]struct{}, len(fields)),
		rows:     make(map[string]map[string]*float64),
	}
	for _, f := range fields {
		s.fieldSet[f] = struct{}{}
	}
	return s
}

func (s *Schedule) addRow(key string, values map[string]*float64) {
	s.keys = append(s.keys, key)
	s.rows[key] = values
}

// Fields returns the field column names in spreadsheet order.
func (s *Schedule) Fields() []string {
	return s.fields
}

// Keys returns the row keys in sorted order.
func (s *Schedule) Keys() []string {
	return s.keys
}

// Len returns the number of validated rows.
func (s *Schedule) Len() int {
	return len(s.keys)
}

// HasKey reports whether key identifies a validated row.
func (s *Schedule) HasKey(key string) bool {
	_, ok := s.rows[key]
	return ok
}

// HasField reports whether field is a declared field column.
func (s *Schedule) HasField(field string) bool {
	_, ok := s.fieldSet[field]
	return ok
}

// Value returns the numeric value for key and field. ok is false when the
// cell was blank, "N/A", or otherwise stored as missing; callers must
// check HasKey and HasField first to distinguish those cases.
func (s *Schedule) Value(key, field string) (float64, bool) {
	row, ok := s.rows[key]
	if !ok {
		return 0, false
	}
	v, ok := row[field]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}
