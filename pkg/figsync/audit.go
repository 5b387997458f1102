package figsync

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// SubstitutionRecord is one successful replacement.
type SubstitutionRecord struct {
	Placeholder    string  `json:"placeholder"`
	AssetID        string  `json:"asset_id"`
	Field          string  `json:"field"`
	RawValue       float64 `json:"raw_value"`
	FormattedValue string  `json:"formatted_value"`
	Location       string  `json:"location"`
}

// IssueRecord is one recorded problem. Severity decides whether it lands
// in the audit file's errors or warnings list.
type IssueRecord struct {
	Code        string   `json:"code"`
	Severity    Severity `json:"-"`
	Placeholder string   `json:"placeholder"`
	Location    string   `json:"location"`
	Message     string   `json:"message"`
}

// AuditReport collects the substitutions and issues of one run. It is an
// append-only, single-writer collector: one engine run writes to one
// report, which is then read for the console summary, the exit status,
// and the audit file. It is not safe for concurrent writers and must not
// be shared across simultaneous runs.
type AuditReport struct {
	RunID         string
	Substitutions []SubstitutionRecord
	Issues        []IssueRecord

	placeholdersFound int
}

// NewAuditReport returns an empty report with a fresh run id.
func NewAuditReport() *AuditReport {
	return &AuditReport{
		RunID:         uuid.NewString(),
		Substitutions: make([]SubstitutionRecord, 0),
		Issues:        make([]IssueRecord, 0),
	}
}

// RecordSubstitution records a successful replacement. It counts toward
// the placeholders-found total.
func (r *AuditReport) RecordSubstitution(placeholder, assetID, field string, rawValue float64, formattedValue, location string) {
	r.placeholdersFound++
	r.Substitutions = append(r.Substitutions, SubstitutionRecord{
		Placeholder:    placeholder,
		AssetID:        assetID,
		Field:          field,
		RawValue:       rawValue,
		FormattedValue: formattedValue,
		Location:       location,
	})
}

// issue appends an ERROR-level record. Every error corresponds to a valid
// token that could not be resolved, so it counts toward placeholders
// found.
func (r *AuditReport) issue(code string, severity Severity, message, placeholder, location string) {
	r.placeholdersFound++
	r.Issues = append(r.Issues, IssueRecord{
		Code:        code,
		Severity:    severity,
		Placeholder: placeholder,
		Location:    location,
		Message:     message,
	})
}

// ErrorUnknownAsset records a token whose key has no schedule row. hint
// may carry a "did you mean" suffix.
func (r *AuditReport) ErrorUnknownAsset(placeholder, assetID, hint, location string) {
	r.issue(CodeUnknownAssetID, SeverityError,
		fmt.Sprintf("%s '%s' not found in schedule%s", ColumnAssetID, assetID, hint),
		placeholder, location)
}

// ErrorUnknownField records a token whose field is not a schedule column.
func (r *AuditReport) ErrorUnknownField(placeholder, field, assetID, hint, location string) {
	r.issue(CodeUnknownField, SeverityError,
		fmt.Sprintf("Field '%s' not found for asset '%s'%s", field, assetID, hint),
		placeholder, location)
}

// ErrorMissingValue records a token whose schedule cell holds no value.
func (r *AuditReport) ErrorMissingValue(placeholder, field, assetID, location string) {
	r.issue(CodeMissingValue, SeverityError,
		fmt.Sprintf("Value for field '%s' of asset '%s' is missing", field, assetID),
		placeholder, location)
}

// ErrorFormat records a token whose format spec was rejected.
func (r *AuditReport) ErrorFormat(placeholder, spec, location, detail string) {
	r.issue(CodeUnknownFormat, SeverityError,
		fmt.Sprintf("Format spec '%s' not recognised: %s", spec, detail),
		placeholder, location)
}

// WarnMalformed records stray "{{" text that matched no token. No valid
// placeholder was identified, so this does not count toward placeholders
// found.
func (r *AuditReport) WarnMalformed(textExcerpt, location string) {
	r.Issues = append(r.Issues, IssueRecord{
		Code:     CodeMalformed,
		Severity: SeverityWarn,
		Location: location,
		Message:  fmt.Sprintf("'{{' found but no valid placeholder matched near: '%s'", textExcerpt),
	})
}

// WarnUnusedAsset records a schedule key no successful substitution ever
// referenced.
func (r *AuditReport) WarnUnusedAsset(assetID string) {
	r.Issues = append(r.Issues, IssueRecord{
		Code:     CodeUnusedAsset,
		Severity: SeverityWarn,
		Location: "schedule",
		Message:  fmt.Sprintf("Asset '%s' has no placeholders in the document", assetID),
	})
}

// ErrorCount returns the number of ERROR issues.
func (r *AuditReport) ErrorCount() int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			n++
		}
	}
	return n
}

// WarnCount returns the number of WARN issues.
func (r *AuditReport) WarnCount() int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == SeverityWarn {
			n++
		}
	}
	return n
}

// PlaceholdersFound returns how many valid tokens the run encountered:
// successful substitutions plus errors, excluding malformed and unused
// warnings.
func (r *AuditReport) PlaceholdersFound() int {
	return r.placeholdersFound
}

// SubstitutionsOK returns the number of successful substitutions.
func (r *AuditReport) SubstitutionsOK() int {
	return len(r.Substitutions)
}

type auditSummary struct {
	PlaceholdersFound int `json:"placeholders_found"`
	SubstitutionsOK   int `json:"substitutions_ok"`
	Errors            int `json:"errors"`
	Warnings          int `json:"warnings"`
}

type auditFile struct {
	RunID         string               `json:"run_id"`
	RunTimestamp  string               `json:"run_timestamp"`
	ScheduleFile  string               `json:"schedule_file"`
	ReportFile    string               `json:"report_file"`
	OutputFile    string               `json:"output_file"`
	Summary       auditSummary         `json:"summary"`
	Substitutions []SubstitutionRecord `json:"substitutions"`
	Errors        []IssueRecord        `json:"errors"`
	Warnings      []IssueRecord        `json:"warnings"`
}

func (r *AuditReport) severityRecords(severity Severity) []IssueRecord {
	out := make([]IssueRecord, 0)
	for _, i := range r.Issues {
		if i.Severity == severity {
			out = append(out, i)
		}
	}
	return out
}

// MarshalAudit renders the report as indented audit JSON.
func (r *AuditReport) MarshalAudit(scheduleFile, reportFile, outputFile string) ([]byte, error) {
	data := auditFile{
		RunID:        r.RunID,
		RunTimestamp: time.Now().Format(time.RFC3339),
		ScheduleFile: scheduleFile,
		ReportFile:   reportFile,
		OutputFile:   outputFile,
		Summary: auditSummary{
			PlaceholdersFound: r.PlaceholdersFound(),
			SubstitutionsOK:   r.SubstitutionsOK(),
			Errors:            r.ErrorCount(),
			Warnings:          r.WarnCount(),
		},
		Substitutions: r.Substitutions,
		Errors:        r.severityRecords(SeverityError),
		Warnings:      r.severityRecords(SeverityWarn),
	}
	return json.MarshalIndent(data, "", "  ")
}

// WriteAudit writes the audit JSON to path.
func (r *AuditReport) WriteAudit(path, scheduleFile, reportFile, outputFile string) error {
	data, err := r.MarshalAudit(scheduleFile, reportFile, outputFile)
	if err != nil {
		return fmt.Errorf("marshaling audit report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing audit report: %w", err)
	}
	return nil
}
