package figsync

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// formatKind enumerates the supported format spec shapes. A spec is
// classified once, into exactly one kind carrying its decimal places and
// suffix; there is no fallthrough interpretation of unrecognised specs.
type formatKind int

const (
	kindPounds formatKind = iota
	kindPoundsMillions
	kindPerSquareFoot
	kindPercent
	kindPlainNumber
)

type formatSpec struct {
	kind     formatKind
	decimals int
	suffix   string
}

var (
	percentPattern     = regexp.MustCompile(`^0(\.0+)?%$`)
	plainNumberPattern = regexp.MustCompile(`^#,##0(?:\.(0+))?(?:\s+(.+))?$`)
)

const supportedSpecs = "£,0  £,0.00  £m  £m2dp  0.00%  0%  #,##0  #,##0.00  #,##0 <suffix>  psf"

func classifySpec(spec string) (formatSpec, error) {
	switch spec {
	case "£,0":
		return formatSpec{kind: kindPounds, decimals: 0}, nil
	case "£,0.00":
		return formatSpec{kind: kindPounds, decimals: 2}, nil
	case "£m":
		return formatSpec{kind: kindPoundsMillions, decimals: 1}, nil
	case "£m2dp":
		return formatSpec{kind: kindPoundsMillions, decimals: 2}, nil
	case "psf":
		return formatSpec{kind: kindPerSquareFoot}, nil
	}
	if m := percentPattern.FindStringSubmatch(spec); m != nil {
		decimals := 0
		if m[1] != "" {
			decimals = len(m[1]) - 1
		}
		return formatSpec{kind: kindPercent, decimals: decimals}, nil
	}
	if m := plainNumberPattern.FindStringSubmatch(spec); m != nil {
		return formatSpec{kind: kindPlainNumber, decimals: len(m[1]), suffix: m[2]}, nil
	}
	return formatSpec{}, NewFormattingError(spec, "supported specs are "+supportedSpecs)
}

// Format renders value according to spec:
//
//	£,0          GBP, thousands separators, integer
//	£,0.00       GBP, thousands separators, 2dp
//	£m           GBP millions, 1dp
//	£m2dp        GBP millions, 2dp
//	0%, 0.00%    percentage (value × 100), 0dp / 2dp / any 0.0...0%
//	#,##0        plain number, thousands separators, integer
//	#,##0.00     plain number, 2dp
//	#,##0 <sfx>  plain number plus a literal suffix, e.g. "#,##0 sq ft"
//	psf          £ per sq ft, integer
//
// Rounding is half away from zero at the spec's decimal places.
// Thousands are always comma-separated and the decimal marker is always
// a period, independent of locale.
func Format(value float64, spec string) (string, error) {
	fs, err := classifySpec(strings.TrimSpace(spec))
	if err != nil {
		return "", err
	}
	switch fs.kind {
	case kindPounds:
		return "£" + formatWithCommas(value, fs.decimals), nil
	case kindPoundsMillions:
		return "£" + formatWithCommas(value/1_000_000, fs.decimals) + "m", nil
	case kindPerSquareFoot:
		return "£" + formatWithCommas(value, 0) + " psf", nil
	case kindPercent:
		return formatWithCommas(value*100, fs.decimals) + "%", nil
	case kindPlainNumber:
		out := formatWithCommas(value, fs.decimals)
		if fs.suffix != "" {
			out += " " + fs.suffix
		}
		return out, nil
	}
	return "", NewFormattingError(spec, "supported specs are "+supportedSpecs)
}

// formatWithCommas rounds value half away from zero to decimals places
// and inserts thousands separators.
func formatWithCommas(value float64, decimals int) string {
	fixed := decimal.NewFromFloat(value).Round(int32(decimals)).StringFixed(int32(decimals))
	return groupThousands(fixed)
}

func groupThousands(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	out := sign + b.String()
	if hasFrac {
		out += "." + fracPart
	}
	return out
}
