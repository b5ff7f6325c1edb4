package analysis

import "github.com/spacesedan/goalpulse/internal/models"

var nextSteps = map[models.SentimentLabel]string{
	models.SentimentPositive: "Reinforce this positive habit",
	models.SentimentNegative: "Pick one small task to move forward",
	models.SentimentNeutral:  "Define your next concrete action",
}

// SuggestNextStep is a pure lookup from label to advisory. Unrecognized
// labels fall back to the neutral advisory.
func SuggestNextStep(label models.SentimentLabel) string {
	if step, ok := nextSteps[label]; ok {
		return step
	}
	return nextSteps[models.SentimentNeutral]
}
