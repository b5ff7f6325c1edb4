// Package analysis classifies short free-text goal updates with fixed
// deterministic rules: additive sentiment scoring, extractive summaries,
// and a sentiment-keyed next step. Every routine is a pure function of
// its input and the package's constant tables, so concurrent calls need
// no synchronization.
package analysis

import "github.com/spacesedan/goalpulse/internal/models"

// Analyze runs the classifier, the summary extractor, and the next-step
// lookup over text and assembles the composite result. The caller is
// expected to hand in trimmed, non-empty text; the engine tolerates any
// string and cannot fail.
func Analyze(text string) models.AnalysisResult {
	label := ClassifySentiment(text)
	return models.AnalysisResult{
		SummaryBullets: ExtractSummary(text),
		SentimentLabel: label,
		NextStep:       SuggestNextStep(label),
	}
}
