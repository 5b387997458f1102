package figsync

import "strings"

// Fragment is one mutable unit of styled text inside a container. A
// fragment's styling belongs to the fragment itself, so rewriting its
// text through SetText leaves the styling alone.
type Fragment interface {
	GetText() string
	SetText(text string)
}

// RunSpan maps one fragment onto the half-open byte interval it occupies
// in the combined text of its container.
type RunSpan struct {
	FragmentIndex int
	CharStart     int
	CharEnd       int
}

// BuildSpans concatenates the fragments' texts and records which interval
// of the combined string each fragment covers. The spans partition
// [0, len(combined)) in fragment order.
func BuildSpans(fragments []Fragment) (string, []RunSpan) {
	var b strings.Builder
	spans := make([]RunSpan, 0, len(fragments))
	pos := 0
	for i, f := range fragments {
		text := f.GetText()
		b.WriteString(text)
		spans = append(spans, RunSpan{FragmentIndex: i, CharStart: pos, CharEnd: pos + len(text)})
		pos += len(text)
	}
	return b.String(), spans
}

// ReplaceSpan rewrites fragments so that the [start, end) interval of the
// combined text becomes replacement. The first intersecting fragment
// keeps its prefix and receives the replacement, middle fragments are
// emptied, and the last keeps its suffix; when one fragment covers the
// whole interval it keeps both sides. Fragment count and order never
// change.
//
// Spans keep describing the original combined text and are never rebuilt,
// so a caller replacing several tokens must apply them in descending
// start order: each rewrite only disturbs fragment text at or beyond the
// token it replaces, leaving the offsets of everything earlier valid.
func ReplaceSpan(fragments []Fragment, spans []RunSpan, start, end int, replacement string) {
	var hit []RunSpan
	for _, s := range spans {
		if s.CharEnd > start && s.CharStart < end {
			hit = append(hit, s)
		}
	}
	if len(hit) == 0 {
		return
	}

	first := hit[0]
	last := hit[len(hit)-1]
	firstText := fragments[first.FragmentIndex].GetText()
	prefix := firstText[:start-first.CharStart]

	if first.FragmentIndex == last.FragmentIndex {
		suffix := firstText[end-first.CharStart:]
		fragments[first.FragmentIndex].SetText(prefix + replacement + suffix)
		return
	}

	lastText := fragments[last.FragmentIndex].GetText()
	suffix := lastText[end-last.CharStart:]

	fragments[first.FragmentIndex].SetText(prefix + replacement)
	for _, mid := range hit[1 : len(hit)-1] {
		fragments[mid.FragmentIndex].SetText("")
	}
	fragments[last.FragmentIndex].SetText(suffix)
}
