// Package sentiment wraps govader for offline comparison against the
// rule engine. Nothing on the serving path uses it.
package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/spacesedan/goalpulse/internal/models"
)

const (
	POSITIVE_THRESHOLD = 0.20
	NEGATIVE_THRESHOLD = -0.20
)

var analyzer = govader.NewSentimentIntensityAnalyzer()

func RemoveLinks(input string) string {
	linkPattern := regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text

	urlPattern := regexp.MustCompile(`https?://\S+|www\.\S+`)
	input = urlPattern.ReplaceAllString(input, "")

	return input
}

func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := strings.Join(strings.Fields(string(output)), " ")

	return RemoveLinks(plainText)
}

// AnalyzeWithVADER scores text with govader's compound polarity and maps
// it onto the engine's three labels for agreement reporting.
func AnalyzeWithVADER(text string) (float64, models.SentimentLabel) {
	plainText := ConvertMarkdownToText(text)

	score := analyzer.PolarityScores(plainText).Compound

	var label models.SentimentLabel
	switch {
	case score >= POSITIVE_THRESHOLD:
		label = models.SentimentPositive
	case score <= NEGATIVE_THRESHOLD:
		label = models.SentimentNegative
	default:
		label = models.SentimentNeutral
	}

	return score, label
}
