package analysis

import (
	"testing"

	"github.com/spacesedan/goalpulse/internal/models"
)

func TestSuggestNextStep(t *testing.T) {
	tests := []struct {
		label models.SentimentLabel
		want  string
	}{
		{models.SentimentPositive, "Reinforce this positive habit"},
		{models.SentimentNegative, "Pick one small task to move forward"},
		{models.SentimentNeutral, "Define your next concrete action"},
		// Unknown labels fall back to the neutral advisory.
		{models.SentimentLabel("Confused"), "Define your next concrete action"},
		{models.SentimentLabel(""), "Define your next concrete action"},
	}

	for _, tt := range tests {
		if got := SuggestNextStep(tt.label); got != tt.want {
			t.Errorf("SuggestNextStep(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}
