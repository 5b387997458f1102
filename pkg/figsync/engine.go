package figsync

import (
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Substitute walks every reachable paragraph of doc, resolves the valid
// placeholders against schedule, and rewrites their text in place. Every
// substitution and every failure lands in report; a failed token keeps
// its literal text so the problem stays visible in the output document.
//
// The walk order is fixed, so the same document and schedule always
// produce the same audit trail.
func Substitute(doc *ReportDocument, schedule *Schedule, report *AuditReport) {
	log.Debug("starting document substitution")

	paragraphCount := 0
	for _, c := range doc.containers() {
		if len(c.runs) == 0 {
			continue
		}
		fragments := runFragments(c.runs)
		combined, spans := BuildSpans(fragments)
		if !strings.Contains(combined, "{{") {
			continue
		}
		paragraphCount++
		substituteContainer(fragments, spans, combined, c.location, schedule, report)
	}

	log.Info("substitution complete",
		zap.Int("paragraphs_processed", paragraphCount),
		zap.Int("substitutions", report.SubstitutionsOK()),
		zap.Int("errors", report.ErrorCount()),
		zap.Int("warnings", report.WarnCount()))

	// Schedule rows no successful substitution referenced become unused
	// warnings. Rows referenced only by failed tokens still count as
	// unused.
	referenced := make(map[string]bool, len(report.Substitutions))
	for _, s := range report.Substitutions {
		referenced[s.AssetID] = true
	}
	for _, key := range schedule.Keys() {
		if !referenced[key] {
			report.WarnUnusedAsset(key)
		}
	}
}

// substituteContainer handles one paragraph's combined text. Tokens are
// processed back to front: rewriting a token only disturbs fragment text
// at or after its own start, so the spans built from the original text
// stay valid for every token still pending.
func substituteContainer(fragments []Fragment, spans []RunSpan, combined, location string, schedule *Schedule, report *AuditReport) {
	tokens := ParseTokens(combined)

	if HasMalformedPlaceholder(combined, tokens) {
		report.WarnMalformed(excerpt(combined, 120), location)
	}

	for i := len(tokens) - 1; i >= 0; i-- {
		tok := tokens[i]

		if !schedule.HasKey(tok.Key) {
			report.ErrorUnknownAsset(tok.Raw, tok.Key, didYouMean(tok.Key, schedule.Keys()), location)
			continue
		}
		if !schedule.HasField(tok.Field) {
			report.ErrorUnknownField(tok.Raw, tok.Field, tok.Key, didYouMean(tok.Field, schedule.Fields()), location)
			continue
		}
		value, ok := schedule.Value(tok.Key, tok.Field)
		if !ok {
			report.ErrorMissingValue(tok.Raw, tok.Field, tok.Key, location)
			continue
		}
		formatted, err := Format(value, tok.Spec)
		if err != nil {
			report.ErrorFormat(tok.Raw, tok.Spec, location, formatDetail(err))
			continue
		}
		ReplaceSpan(fragments, spans, tok.Start, tok.End, formatted)
		report.RecordSubstitution(tok.Raw, tok.Key, tok.Field, value, formatted, location)
	}
}

// formatDetail extracts the reason from a formatting failure without
// repeating the spec, which the audit message already carries.
func formatDetail(err error) string {
	var fe *FormattingError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return err.Error()
}
