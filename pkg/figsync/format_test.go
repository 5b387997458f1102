package figsync

import (
	"errors"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		spec     string
		expected string
	}{
		// £,0
		{"pounds integer", 1250000, "£,0", "£1,250,000"},
		{"pounds float rounds", 1250000.9, "£,0", "£1,250,001"},
		{"pounds zero", 0, "£,0", "£0"},
		{"pounds negative keeps sign inside", -500000, "£,0", "£-500,000"},
		{"pounds one", 1, "£,0", "£1"},
		{"pounds large", 999999999, "£,0", "£999,999,999"},

		// £,0.00
		{"pounds 2dp", 1250000, "£,0.00", "£1,250,000.00"},
		{"pounds 2dp fractional", 1250000.5, "£,0.00", "£1,250,000.50"},
		{"pounds 2dp half rounds up", 0.005, "£,0.00", "£0.01"},

		// £m / £m2dp
		{"millions 1dp", 1250000, "£m", "£1.3m"},
		{"millions rounds down", 1249999, "£m", "£1.2m"},
		{"millions rounds up", 1250001, "£m", "£1.3m"},
		{"millions exact", 2500000, "£m", "£2.5m"},
		{"millions 2dp", 1250000, "£m2dp", "£1.25m"},
		{"millions 2dp rounds", 1255000, "£m2dp", "£1.26m"},

		// psf
		{"psf basic", 119.05, "psf", "£119 psf"},
		{"psf rounds", 119.9, "psf", "£120 psf"},
		{"psf zero", 0, "psf", "£0 psf"},

		// percentages
		{"percent 2dp", 0.0525, "0.00%", "5.25%"},
		{"percent 0dp", 0.05, "0%", "5%"},
		{"percent 1dp", 0.0475, "0.0%", "4.8%"},
		{"percent zero", 0.0, "0.00%", "0.00%"},
		{"percent hundred", 1.0, "0.00%", "100.00%"},
		{"percent half rounds up", 0.04545, "0.00%", "4.55%"},
		{"percent typical yield", 0.0480, "0.00%", "4.80%"},

		// plain numbers
		{"plain integer", 10500, "#,##0", "10,500"},
		{"plain float rounds", 10500.9, "#,##0", "10,501"},
		{"plain 2dp", 10500.5, "#,##0.00", "10,500.50"},
		{"plain zero", 0, "#,##0", "0"},
		{"plain million", 1000000, "#,##0", "1,000,000"},

		// suffixed numbers
		{"suffix sq ft", 10500, "#,##0 sq ft", "10,500 sq ft"},
		{"suffix sq ft rounds", 10500.4, "#,##0 sq ft", "10,500 sq ft"},
		{"suffix arbitrary", 5000, "#,##0 units", "5,000 units"},
		{"suffix with 2dp", 10500.5, "#,##0.00 sq ft", "10,500.50 sq ft"},

		// whitespace around the spec is ignored
		{"spec is trimmed", 5000, "  £,0  ", "£5,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.value, tt.spec)
			if err != nil {
				t.Fatalf("Format(%v, %q) returned error: %v", tt.value, tt.spec, err)
			}
			if got != tt.expected {
				t.Errorf("Format(%v, %q) = %q, want %q", tt.value, tt.spec, got, tt.expected)
			}
		})
	}
}

func TestFormatYieldRounding(t *testing.T) {
	// Typical net initial yields must never drift under float handling.
	tests := []struct {
		value    float64
		expected string
	}{
		{0.0525, "5.25%"},
		{0.0480, "4.80%"},
		{0.0600, "6.00%"},
		{0.0550, "5.50%"},
		{0.0495, "4.95%"},
		{0.0490, "4.90%"},
		{0.0615, "6.15%"},
	}
	for _, tt := range tests {
		got, err := Format(tt.value, "0.00%")
		if err != nil {
			t.Fatalf("Format(%v): %v", tt.value, err)
		}
		if got != tt.expected {
			t.Errorf("Format(%v, 0.00%%) = %q, want %q", tt.value, got, tt.expected)
		}
	}
}

func TestFormatUnknownSpec(t *testing.T) {
	specs := []string{"unknown_spec", "£.0", "BAD_SPEC", "", "#,#0", "0.0"}
	for _, spec := range specs {
		t.Run(spec, func(t *testing.T) {
			_, err := Format(100, spec)
			if err == nil {
				t.Fatalf("Format(100, %q) succeeded, want error", spec)
			}
			var fe *FormattingError
			if !errors.As(err, &fe) {
				t.Fatalf("Format(100, %q) error is %T, want *FormattingError", spec, err)
			}
			if !strings.Contains(err.Error(), "unknown format spec") {
				t.Errorf("error %q does not mention the unknown spec", err.Error())
			}
		})
	}
}
