package figsync

import "errors"

// SyncFiles loads and validates the schedule at schedulePath, replaces
// every placeholder in the document at reportPath, and writes the synced
// document to outputPath. The returned issues are the schedule
// validation findings; the audit report carries one record per
// substitution and one issue per failed token. A non-nil error means no
// output document was produced.
func SyncFiles(schedulePath, reportPath, outputPath string, opts ScheduleOptions) (*AuditReport, []Issue, error) {
	raw, fields, err := LoadScheduleOptions(schedulePath, opts)
	if err != nil {
		return nil, nil, err
	}
	schedule, issues := ValidateSchedule(raw, fields, schedulePath)
	if HasFatal(issues) {
		return nil, issues, NewScheduleError(schedulePath, errors.New("schedule failed validation"))
	}

	doc, err := OpenReport(reportPath)
	if err != nil {
		return nil, issues, err
	}

	report := NewAuditReport()
	Substitute(doc, schedule, report)

	if err := doc.Save(outputPath); err != nil {
		return report, issues, err
	}
	return report, issues, nil
}
