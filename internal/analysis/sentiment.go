package analysis

import (
	"strings"

	"github.com/spacesedan/goalpulse/internal/models"
)

const EXCLAMATION_CAP = 2

// ClassifySentiment scores text with additive keyword, emoji, and
// punctuation signals and returns one of the three labels. It is a total
// function: text with no recognizable signal is Neutral, as is any tie.
func ClassifySentiment(text string) models.SentimentLabel {
	// Lower-case for keyword matching only; punctuation and emoji are
	// counted on the original text.
	lowered := strings.ToLower(text)

	var positive, negative int
	for _, p := range positivePatterns {
		positive += len(p.FindAllStringIndex(lowered, -1))
	}
	for _, p := range negativePatterns {
		negative += len(p.FindAllStringIndex(lowered, -1))
	}

	for _, e := range POSITIVE_EMOJI {
		positive += strings.Count(text, e)
	}
	for _, e := range NEGATIVE_EMOJI {
		negative += strings.Count(text, e)
	}

	// Exclamation marks read as enthusiasm, capped so a single excited
	// line cannot dominate the keyword signal.
	exclamations := strings.Count(text, "!")
	if exclamations > EXCLAMATION_CAP {
		exclamations = EXCLAMATION_CAP
	}
	positive += exclamations

	// Repeated questioning reads as uncertainty. Any repetition counts
	// once, regardless of how many question marks follow.
	if strings.Count(text, "?") > 1 {
		negative++
	}

	score := positive - negative
	switch {
	case score > 0:
		return models.SentimentPositive
	case score < 0:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
