package clickbait

import "strings"

// Quick classifier thresholds. These are tuned separately from Analyze and
// the two may disagree on the same title.
const (
	quickLengthLimit      = 110
	quickExclamationLimit = 1
)

// IsLikelyClickbait is the cheap boolean tagger used for bulk feed items.
// It matches the quick phrases as plain substrings, then falls back to
// length and exclamation-mark heuristics.
func IsLikelyClickbait(title string) bool {
	for _, re := range quickPatterns {
		if re.MatchString(title) {
			return true
		}
	}

	if CountChars(title) > quickLengthLimit {
		return true
	}

	return strings.Count(title, "!") > quickExclamationLimit
}
