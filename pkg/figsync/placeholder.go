package figsync

import (
	"regexp"
	"strings"
)

// Token is one parsed placeholder in a container's combined text. Offsets
// are byte positions within that combined text.
type Token struct {
	Raw   string
	Field string
	Key   string
	Spec  string
	Start int
	End   int
}

// Placeholder grammar: {{FIELD:KEY:SPEC}}. FIELD is uppercase letters and
// underscores starting with a letter, KEY is uppercase letters, digits,
// underscores, and spaces, and SPEC is any brace-free text matched
// non-greedily.
var placeholderPattern = regexp.MustCompile(`\{\{([A-Z][A-Z_]*):([ A-Z0-9_]+):([^{}]+?)\}\}`)

var doubleBracePattern = regexp.MustCompile(`\{\{`)

// ParseTokens finds every well-formed placeholder in text, in order of
// appearance. Field, key, and spec come back trimmed; Raw and the offsets
// describe the token exactly as matched.
func ParseTokens(text string) []Token {
	var tokens []Token
	for _, m := range placeholderPattern.FindAllStringSubmatchIndex(text, -1) {
		tokens = append(tokens, Token{
			Raw:   text[m[0]:m[1]],
			Field: strings.TrimSpace(text[m[2]:m[3]]),
			Key:   strings.TrimSpace(text[m[4]:m[5]]),
			Spec:  strings.TrimSpace(text[m[6]:m[7]]),
			Start: m[0],
			End:   m[1],
		})
	}
	return tokens
}

// HasMalformedPlaceholder reports whether text contains a "{{" that does
// not open any token in tokens. Truncated or otherwise invalid tokens are
// flagged, never repaired.
func HasMalformedPlaceholder(text string, tokens []Token) bool {
	starts := make(map[int]struct{}, len(tokens))
	for _, t := range tokens {
		starts[t.Start] = struct{}{}
	}
	for _, loc := range doubleBracePattern.FindAllStringIndex(text, -1) {
		if _, ok := starts[loc[0]]; !ok {
			return true
		}
	}
	return false
}

// excerpt returns at most limit characters of text for diagnostics.
func excerpt(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
