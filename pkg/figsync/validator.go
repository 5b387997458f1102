package figsync

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Severity classifies an Issue. FATAL issues abort a sync before any
// document mutation; ERRORs mark tokens or cells that could not be used
// but never stop a run; WARNs are informational.
type Severity string

const (
	SeverityFatal Severity = "FATAL"
	SeverityError Severity = "ERROR"
	SeverityWarn  Severity = "WARN"
)

// Stable issue codes, used by tests and tooling.
const (
	CodeMissingSheet     = "ERROR_MISSING_SHEET"
	CodeMissingColumn    = "ERROR_MISSING_COLUMN"
	CodeDuplicateAssetID = "ERROR_DUPLICATE_ASSET_ID"
	CodeNoDataRows       = "ERROR_NO_DATA_ROWS"
	CodeNonNumericValue  = "ERROR_NON_NUMERIC_VALUE"
	CodeEmptyFieldValue  = "WARN_EMPTY_FIELD_VALUE"
	CodeUnknownAssetID   = "ERROR_UNKNOWN_ASSET_ID"
	CodeUnknownField     = "ERROR_UNKNOWN_FIELD"
	CodeMissingValue     = "ERROR_MISSING_VALUE"
	CodeUnknownFormat    = "ERROR_UNKNOWN_FORMAT_SPEC"
	CodeMalformed        = "WARN_MALFORMED_PLACEHOLDER"
	CodeUnusedAsset      = "WARN_UNUSED_ASSET"
)

// Issue is one validation or substitution finding.
type Issue struct {
	Code     string
	Severity Severity
	Message  string
	Location string
}

func (i Issue) String() string {
	if i.Location != "" {
		return fmt.Sprintf("[%s] %s [%s]: %s", i.Severity, i.Code, i.Location, i.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", i.Severity, i.Code, i.Message)
}

// HasFatal reports whether any issue is FATAL.
func HasFatal(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// HasErrors reports whether any issue is FATAL or ERROR.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityFatal || i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any issue is WARN.
func HasWarnings(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityWarn {
			return true
		}
	}
	return false
}

// ValidateSchedule turns the loader's raw output into a clean Schedule,
// collecting every problem it finds rather than stopping at the first.
// Checks run in order: required structure, empty keys, duplicate keys,
// at-least-one-row, then per-row per-field value checks. FATAL issues
// mean the caller must not substitute; non-fatal issues are recorded and
// the affected values stored as missing.
func ValidateSchedule(raw RawSchedule, fieldNames []string, sourcePath string) (*Schedule, []Issue) {
	var issues []Issue
	schedule := newSchedule(fieldNames)

	// The loader signals a missing sheet, or missing Asset_ID/Asset_Name
	// columns, by returning an empty mapping and an empty field list.
	if len(raw) == 0 && len(fieldNames) == 0 {
		issues = append(issues, Issue{
			Code:     CodeMissingSheet,
			Severity: SeverityFatal,
			Message: fmt.Sprintf("Sheet '%s' not found in %s, or the '%s'/'%s' columns are absent",
				ScheduleSheetName, filepath.Base(sourcePath), ColumnAssetID, ColumnAssetName),
		})
		return schedule, issues
	}

	emptyCount := 0
	dupKeys := make(map[string]struct{})
	var validKeys []string

	for key := range raw {
		switch {
		case key == EmptyKeyMarker || strings.HasPrefix(key, EmptyKeyMarker+DuplicateKeyMarker):
			emptyCount++
		case strings.Contains(key, DuplicateKeyMarker):
			dupKeys[strings.SplitN(key, DuplicateKeyMarker, 2)[0]] = struct{}{}
		default:
			validKeys = append(validKeys, key)
		}
	}

	if emptyCount > 0 {
		issues = append(issues, Issue{
			Code:     CodeMissingColumn,
			Severity: SeverityFatal,
			Message:  fmt.Sprintf("%d row(s) have an empty %s", emptyCount, ColumnAssetID),
		})
	}

	sortedDups := make([]string, 0, len(dupKeys))
	for dup := range dupKeys {
		sortedDups = append(sortedDups, dup)
	}
	sort.Strings(sortedDups)
	for _, dup := range sortedDups {
		issues = append(issues, Issue{
			Code:     CodeDuplicateAssetID,
			Severity: SeverityFatal,
			Message:  fmt.Sprintf("%s '%s' appears more than once in the schedule", ColumnAssetID, dup),
		})
	}

	if len(validKeys) == 0 && len(dupKeys) == 0 {
		issues = append(issues, Issue{
			Code:     CodeNoDataRows,
			Severity: SeverityFatal,
			Message:  "The Schedule sheet contains no asset data rows",
		})
		return schedule, issues
	}

	sort.Strings(validKeys)
	for _, key := range validKeys {
		rawFields := raw[key]
		clean := make(map[string]*float64, len(fieldNames))
		for _, fn := range fieldNames {
			clean[fn] = cleanValue(rawFields[fn], key, fn, &issues)
		}
		schedule.addRow(key, clean)
	}

	return schedule, issues
}

// cleanValue classifies one raw cell value, appending an issue where the
// value is blank, "N/A", or not numeric. Blank and "N/A" are stored as
// missing with a warning; anything non-numeric is stored as missing with
// an error.
func cleanValue(raw any, key, field string, issues *[]Issue) *float64 {
	location := fmt.Sprintf("asset:%s:field:%s", key, field)

	blank := func(detail string) *float64 {
		*issues = append(*issues, Issue{
			Code:     CodeEmptyFieldValue,
			Severity: SeverityWarn,
			Message:  fmt.Sprintf("Field '%s' for asset '%s' is %s", field, key, detail),
			Location: location,
		})
		return nil
	}

	switch v := raw.(type) {
	case nil:
		return blank("blank")
	case float64:
		return &v
	case float32:
		f := float64(v)
		return &f
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case string:
		stripped := strings.TrimSpace(v)
		if stripped == "" {
			return blank("blank")
		}
		if strings.EqualFold(stripped, "N/A") {
			return blank("'N/A'")
		}
		if f, err := strconv.ParseFloat(strings.ReplaceAll(stripped, ",", ""), 64); err == nil {
			return &f
		}
		*issues = append(*issues, Issue{
			Code:     CodeNonNumericValue,
			Severity: SeverityError,
			Message:  fmt.Sprintf("Field '%s' for asset '%s' contains non-numeric text: '%s'", field, key, v),
			Location: location,
		})
		return nil
	default:
		*issues = append(*issues, Issue{
			Code:     CodeNonNumericValue,
			Severity: SeverityError,
			Message:  fmt.Sprintf("Field '%s' for asset '%s' has unexpected type %T: %v", field, key, v, v),
			Location: location,
		})
		return nil
	}
}

// ValidateDocumentPlaceholders is the document pre-flight check: it walks
// the document without mutating it and flags unknown keys and fields
// exactly as substitution would, plus malformed-token and unused-key
// warnings. It never produces a FATAL.
func ValidateDocumentPlaceholders(doc *ReportDocument, schedule *Schedule) []Issue {
	var issues []Issue
	seenKeys := make(map[string]struct{})

	for _, c := range doc.containers() {
		fragments := runFragments(c.runs)
		if len(fragments) == 0 {
			continue
		}
		combined, _ := BuildSpans(fragments)
		if !strings.Contains(combined, "{{") {
			continue
		}

		tokens := ParseTokens(combined)
		if HasMalformedPlaceholder(combined, tokens) {
			issues = append(issues, Issue{
				Code:     CodeMalformed,
				Severity: SeverityWarn,
				Message:  fmt.Sprintf("Malformed placeholder token near: '%s'", excerpt(combined, 80)),
				Location: c.location,
			})
		}

		for _, tok := range tokens {
			if !schedule.HasKey(tok.Key) {
				issues = append(issues, Issue{
					Code:     CodeUnknownAssetID,
					Severity: SeverityError,
					Message:  unknownKeyMessage(tok.Key, schedule),
					Location: c.location,
				})
			} else if !schedule.HasField(tok.Field) {
				issues = append(issues, Issue{
					Code:     CodeUnknownField,
					Severity: SeverityError,
					Message:  unknownFieldMessage(tok.Field, schedule),
					Location: c.location,
				})
			}
			seenKeys[tok.Key] = struct{}{}
		}
	}

	for _, key := range schedule.Keys() {
		if _, ok := seenKeys[key]; !ok {
			issues = append(issues, Issue{
				Code:     CodeUnusedAsset,
				Severity: SeverityWarn,
				Message:  fmt.Sprintf("Asset '%s' has no placeholders in the document", key),
			})
		}
	}

	return issues
}
