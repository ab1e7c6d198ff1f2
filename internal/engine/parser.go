// Package engine implements the scripted health check-in conversation:
// answer parsing, branching rules, the session state machine, scoring,
// red-flag detection, and summary generation.
package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lisahealth/checkin/internal/models"
)

// numberPattern extracts the first contiguous decimal number from free text.
var numberPattern = regexp.MustCompile(`\d+(\.\d+)?`)

// Canonical yes/no keyword sets for yes-no answers.
var (
	yesKeywords = []string{"yes", "yeah", "yep"}
	noKeywords  = []string{"no", "nope", "nah"}
)

// ParseAnswer converts free-form input text into a typed answer value for the
// question's expected shape. Parsing never fails: malformed numeric input
// degrades to 0 or a clamped value, and ambiguous yes-no input is preserved
// verbatim. The assessment must never dead-end on unparseable speech-to-text
// output.
func ParseAnswer(raw string, q models.Question) models.AnswerValue {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)

	switch q.Kind {
	case models.AnswerKindYesNo:
		if containsAny(lower, yesKeywords) {
			return models.StringAnswer("yes")
		}
		if containsAny(lower, noKeywords) {
			return models.StringAnswer("no")
		}
		return models.StringAnswer(trimmed)

	case models.AnswerKindNumeric, models.AnswerKindScale:
		match := numberPattern.FindString(raw)
		if match == "" {
			return models.NumberAnswer(0)
		}
		num := parseFloat(match)
		if q.Range != nil {
			num = clampFloat(num, q.Range.Min, q.Range.Max)
		}
		return models.NumberAnswer(num)

	default:
		return models.StringAnswer(trimmed)
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// parseFloat converts a string already matched by numberPattern; the match
// guarantees it parses.
func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
