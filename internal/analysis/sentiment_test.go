package analysis

import (
	"testing"

	"github.com/spacesedan/goalpulse/internal/models"
)

func TestClassifySentiment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.SentimentLabel
	}{
		{
			name: "positive keywords with exclamation",
			text: "Made great progress today! Completed my workout.",
			want: models.SentimentPositive,
		},
		{
			name: "negative keywords with repeated questions",
			text: "I'm stuck and frustrated, nothing is working. Why does this keep happening? Why??",
			want: models.SentimentNegative,
		},
		{
			name: "no signal at all",
			text: "Went for a walk.",
			want: models.SentimentNeutral,
		},
		{
			name: "equal counts tie to neutral",
			text: "good bad",
			want: models.SentimentNeutral,
		},
		{
			name: "every occurrence counts",
			text: "good good good bad",
			want: models.SentimentPositive,
		},
		{
			name: "keywords match whole words only",
			text: "goodness me, a cannotated scanner",
			want: models.SentimentNeutral,
		},
		{
			name: "case insensitive matching",
			text: "GREAT Progress",
			want: models.SentimentPositive,
		},
		{
			name: "positive emoji",
			text: "leg day 🎉🎉",
			want: models.SentimentPositive,
		},
		{
			name: "negative emoji",
			text: "skipped the gym 💔",
			want: models.SentimentNegative,
		},
		{
			name: "contraction keyword",
			text: "I can't focus on anything",
			want: models.SentimentNegative,
		},
		{
			name: "single question mark carries no signal",
			text: "maybe tomorrow then?",
			want: models.SentimentNeutral,
		},
		{
			name: "two question marks count once",
			text: "maybe tomorrow? or not?",
			want: models.SentimentNegative,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifySentiment(tt.text); got != tt.want {
				t.Errorf("ClassifySentiment(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifySentimentExclamationCap(t *testing.T) {
	// Three negative keywords against four exclamation marks: without the
	// cap the score would be +1, with it -1.
	text := "bad bad bad day!!!!"
	if got := ClassifySentiment(text); got != models.SentimentNegative {
		t.Errorf("ClassifySentiment(%q) = %v, want Negative (cap not applied?)", text, got)
	}

	// Capped and uncapped exclamation counts must score identically.
	few := ClassifySentiment("good good good good good!!")
	many := ClassifySentiment("good good good good good!!!!!")
	if few != many {
		t.Errorf("exclamation cap broken: %v vs %v", few, many)
	}
}

func TestClassifySentimentQuestionThreshold(t *testing.T) {
	// One question mark is free; two or twenty contribute exactly one.
	if got := ClassifySentiment("good?"); got != models.SentimentPositive {
		t.Errorf("single ? should not add negative signal, got %v", got)
	}

	two := ClassifySentiment("good? really?")
	twenty := ClassifySentiment("good????????????????????")
	if two != models.SentimentNeutral {
		t.Errorf("two ? should add exactly one negative, got %v", two)
	}
	if twenty != two {
		t.Errorf("question signal should be binary: %v vs %v", twenty, two)
	}
}
