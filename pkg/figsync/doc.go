// Package figsync synchronises numeric figures from an Excel schedule
// workbook into placeholder tokens embedded in Word report documents.
//
// Reports reference schedule figures through placeholder tokens. A token
// names a field, an asset, and a display format; figsync locates every
// token, looks the figure up in the schedule, formats it, and rewrites
// the document in place. Tokens survive being split across styled runs,
// replacement never disturbs surrounding text or styling, and every
// substitution and failure lands in a machine-readable audit report.
//
// # Quick Start
//
// The one-call pipeline:
//
//	report, issues, err := figsync.SyncFiles(
//	    "schedule.xlsx", "report.docx", "report_synced.docx",
//	    figsync.ScheduleOptions{},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d substitutions, %d errors\n", report.SubstitutionsOK(), report.ErrorCount())
//	_ = issues
//
// Or step by step, keeping control of each stage:
//
//	raw, fields, err := figsync.LoadSchedule("schedule.xlsx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	schedule, issues := figsync.ValidateSchedule(raw, fields, "schedule.xlsx")
//	if figsync.HasFatal(issues) {
//	    log.Fatal("schedule is unusable")
//	}
//
//	doc, err := figsync.OpenReport("report.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report := figsync.NewAuditReport()
//	figsync.Substitute(doc, schedule, report)
//
//	if err := doc.Save("report_synced.docx"); err != nil {
//	    log.Fatal(err)
//	}
//	err = report.WriteAudit("audit.json", "schedule.xlsx", "report.docx", "report_synced.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Placeholder Syntax
//
// Tokens use double curly braces with three colon-separated parts:
//
//	{{FIELD:ASSET_ID:FORMAT}}
//
//	{{MV:LON_001:£,0}}      - market value, pounds with thousands separators
//	{{NIY:LON_001:0.00%}}   - net initial yield, two decimal places
//	{{MV:LON_001:£m}}       - market value in millions
//	{{AREA:LON_001:#,##0 sq ft}} - number with a literal suffix
//
// FIELD is an uppercase schedule column, ASSET_ID an uppercase key from
// the schedule's Asset_ID column, FORMAT one of the specs documented on
// [Format]. A token whose asset, field, or format cannot be resolved is
// left verbatim in the document and recorded as an error in the audit
// report; the run carries on with the remaining tokens.
//
// # Formatting
//
// Figures are rendered with exact decimal arithmetic and half-up
// rounding, so 0.005 formatted as £,0.00 is £0.01 on every platform.
// Thousands separators are commas and the decimal point is a period
// regardless of host locale.
//
// # Audit Trail
//
// Every run produces an [AuditReport]: one record per substitution, one
// issue per failed token, plus warnings for malformed tokens and
// schedule assets no token references. [AuditReport.MarshalAudit] output
// validates against the JSON schema returned by [AuditSchemaJSON].
package figsync
