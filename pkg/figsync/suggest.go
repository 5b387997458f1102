package figsync

import (
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// suggestNearest returns the candidate closest to input by edit distance,
// or "" when nothing is close enough to be a plausible typo. Ties resolve
// to the lexicographically smaller candidate so messages stay stable.
func suggestNearest(input string, candidates []string) string {
	best := ""
	bestDist := -1
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(input, c)
		if bestDist == -1 || d < bestDist || (d == bestDist && c < best) {
			best, bestDist = c, d
		}
	}
	if best == "" {
		return ""
	}
	limit := len(input) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist > limit {
		return ""
	}
	return best
}

func didYouMean(input string, candidates []string) string {
	if s := suggestNearest(input, candidates); s != "" {
		return fmt.Sprintf(" (did you mean '%s'?)", s)
	}
	return ""
}

func unknownKeyMessage(key string, schedule *Schedule) string {
	return fmt.Sprintf("%s '%s' not found in schedule%s", ColumnAssetID, key, didYouMean(key, schedule.Keys()))
}

func unknownFieldMessage(field string, schedule *Schedule) string {
	return fmt.Sprintf("Field '%s' not found in schedule columns%s", field, didYouMean(field, schedule.Fields()))
}
