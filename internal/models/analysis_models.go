package models

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentNegative SentimentLabel = "Negative"
)

// AnalysisResult is the composite produced by a single engine call.
// It has no identity of its own; persistence is the caller's concern.
type AnalysisResult struct {
	SummaryBullets []string       `json:"summary_bullets"`
	SentimentLabel SentimentLabel `json:"sentiment_label"`
	NextStep       string         `json:"next_step"`
}

// ValidSentimentLabel reports whether s is one of the three known labels.
func ValidSentimentLabel(s string) bool {
	switch SentimentLabel(s) {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}
