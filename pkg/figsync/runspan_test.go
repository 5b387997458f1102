package figsync

import (
	"strings"
	"testing"
)

type stubFragment struct {
	text string
}

func (f *stubFragment) GetText() string     { return f.text }
func (f *stubFragment) SetText(text string) { f.text = text }

func makeFragments(texts ...string) []Fragment {
	frags := make([]Fragment, len(texts))
	for i, t := range texts {
		frags[i] = &stubFragment{text: t}
	}
	return frags
}

func joinFragments(frags []Fragment) string {
	var b strings.Builder
	for _, f := range frags {
		b.WriteString(f.GetText())
	}
	return b.String()
}

func TestBuildSpans(t *testing.T) {
	t.Run("single fragment", func(t *testing.T) {
		combined, spans := BuildSpans(makeFragments("hello world"))
		if combined != "hello world" {
			t.Fatalf("combined = %q", combined)
		}
		if len(spans) != 1 || spans[0].CharStart != 0 || spans[0].CharEnd != 11 {
			t.Errorf("spans = %+v", spans)
		}
	})

	t.Run("multiple fragments partition the text", func(t *testing.T) {
		combined, spans := BuildSpans(makeFragments("hello", " ", "world"))
		if combined != "hello world" {
			t.Fatalf("combined = %q", combined)
		}
		want := []RunSpan{
			{FragmentIndex: 0, CharStart: 0, CharEnd: 5},
			{FragmentIndex: 1, CharStart: 5, CharEnd: 6},
			{FragmentIndex: 2, CharStart: 6, CharEnd: 11},
		}
		for i, w := range want {
			if spans[i] != w {
				t.Errorf("spans[%d] = %+v, want %+v", i, spans[i], w)
			}
		}
	})

	t.Run("empty fragment list", func(t *testing.T) {
		combined, spans := BuildSpans(nil)
		if combined != "" || len(spans) != 0 {
			t.Errorf("combined = %q, spans = %v", combined, spans)
		}
	})
}

func TestReplaceSpan(t *testing.T) {
	replaceFirst := func(t *testing.T, frags []Fragment, replacement string) {
		t.Helper()
		combined, spans := BuildSpans(frags)
		tokens := ParseTokens(combined)
		if len(tokens) != 1 {
			t.Fatalf("found %d tokens in %q, want 1", len(tokens), combined)
		}
		ReplaceSpan(frags, spans, tokens[0].Start, tokens[0].End, replacement)
	}

	t.Run("single fragment", func(t *testing.T) {
		frags := makeFragments("{{MV:ASSET_001:£,0}}")
		replaceFirst(t, frags, "£1,250,000")
		if got := frags[0].GetText(); got != "£1,250,000" {
			t.Errorf("fragment = %q", got)
		}
	})

	t.Run("three fragments merge into the first", func(t *testing.T) {
		frags := makeFragments("{{MV", ":ASSET_001", ":£,0}}")
		replaceFirst(t, frags, "£1,250,000")
		if got := frags[0].GetText(); got != "£1,250,000" {
			t.Errorf("first = %q", got)
		}
		if frags[1].GetText() != "" || frags[2].GetText() != "" {
			t.Errorf("later fragments not emptied: %q, %q", frags[1].GetText(), frags[2].GetText())
		}
	})

	t.Run("prefix and suffix survive in one fragment", func(t *testing.T) {
		frags := makeFragments("Value: {{MV:A:£,0}} approx")
		replaceFirst(t, frags, "£100")
		if got := frags[0].GetText(); got != "Value: £100 approx" {
			t.Errorf("fragment = %q", got)
		}
	})

	t.Run("prefix and suffix survive across fragments", func(t *testing.T) {
		frags := makeFragments("Value: {{MV", ":A:£,0}} end")
		replaceFirst(t, frags, "£100")
		if frags[0].GetText() != "Value: £100" {
			t.Errorf("first = %q", frags[0].GetText())
		}
		if frags[1].GetText() != " end" {
			t.Errorf("second = %q", frags[1].GetText())
		}
	})

	t.Run("two tokens replaced in descending order", func(t *testing.T) {
		frags := makeFragments("{{MV:A:£,0}} and {{NIY:A:0.00%}}")
		combined, spans := BuildSpans(frags)
		tokens := ParseTokens(combined)
		if len(tokens) != 2 {
			t.Fatalf("found %d tokens, want 2", len(tokens))
		}
		for i := len(tokens) - 1; i >= 0; i-- {
			replacement := "£100"
			if tokens[i].Field == "NIY" {
				replacement = "5.25%"
			}
			ReplaceSpan(frags, spans, tokens[i].Start, tokens[i].End, replacement)
		}
		if got := joinFragments(frags); got != "£100 and 5.25%" {
			t.Errorf("result = %q", got)
		}
	})

	t.Run("fragmentation does not change the outcome", func(t *testing.T) {
		text := "Rent {{RENT:LON_001:£,0}} against ERV {{ERV:LON_001:£,0}}."
		splits := [][]string{
			{text},
			{"Rent {{RENT", ":LON_001:£,0}} against ERV {{ERV:LON_001:£,0}}."},
			{"Rent {{", "RENT:LON_001", ":£,0}} against ", "ERV {{ERV:LON_001:£,0}}."},
			{"R", "e", "nt {{RENT:LON_001:£,0}} against ERV {{ERV:LON_001:", "£,0}}."},
		}
		var results []string
		for _, split := range splits {
			frags := makeFragments(split...)
			combined, spans := BuildSpans(frags)
			tokens := ParseTokens(combined)
			if len(tokens) != 2 {
				t.Fatalf("split %q found %d tokens", split, len(tokens))
			}
			for i := len(tokens) - 1; i >= 0; i-- {
				ReplaceSpan(frags, spans, tokens[i].Start, tokens[i].End, "£112,500")
			}
			results = append(results, joinFragments(frags))
		}
		for i := 1; i < len(results); i++ {
			if results[i] != results[0] {
				t.Errorf("split %d produced %q, split 0 produced %q", i, results[i], results[0])
			}
		}
		if want := "Rent £112,500 against ERV £112,500."; results[0] != want {
			t.Errorf("result = %q, want %q", results[0], want)
		}
	})

	t.Run("interval outside every span is a no-op", func(t *testing.T) {
		frags := makeFragments("abc")
		_, spans := BuildSpans(frags)
		ReplaceSpan(frags, spans, 10, 15, "x")
		if frags[0].GetText() != "abc" {
			t.Errorf("fragment = %q", frags[0].GetText())
		}
	})
}
