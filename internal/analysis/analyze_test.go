package analysis

import (
	"reflect"
	"testing"

	"github.com/spacesedan/goalpulse/internal/models"
)

func TestAnalyzeEndToEnd(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.AnalysisResult
	}{
		{
			name: "positive update",
			text: "Made great progress today! Completed my workout.",
			want: models.AnalysisResult{
				SummaryBullets: []string{"Made great progress today!", "Completed my workout."},
				SentimentLabel: models.SentimentPositive,
				NextStep:       "Reinforce this positive habit",
			},
		},
		{
			name: "negative update",
			text: "I'm stuck and frustrated, nothing is working. Why does this keep happening? Why??",
			want: models.AnalysisResult{
				SummaryBullets: []string{
					"I'm stuck and frustrated, nothing is working.",
					"Why does this keep happening?",
				},
				SentimentLabel: models.SentimentNegative,
				NextStep:       "Pick one small task to move forward",
			},
		},
		{
			name: "neutral update",
			text: "Went for a walk.",
			want: models.AnalysisResult{
				SummaryBullets: []string{"Went for a walk."},
				SentimentLabel: models.SentimentNeutral,
				NextStep:       "Define your next concrete action",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Analyze(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Analyze(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestAnalyzeDeterminism(t *testing.T) {
	inputs := []string{
		"Made great progress today! Completed my workout.",
		"mixed feelings about this week? good days and bad days?",
		"🎉 finally finished the big refactor 🎉",
		"no signal here at all",
	}
	for _, text := range inputs {
		first := Analyze(text)
		for i := 0; i < 50; i++ {
			if got := Analyze(text); !reflect.DeepEqual(got, first) {
				t.Fatalf("Analyze(%q) not deterministic on call %d: %+v vs %+v", text, i, got, first)
			}
		}
	}
}

func TestAnalyzeNextStepFollowsLabelOnly(t *testing.T) {
	// Two very different texts with the same label must share a next step.
	a := Analyze("Made great progress today!")
	b := Analyze("so proud and grateful 🎉")
	if a.SentimentLabel != b.SentimentLabel {
		t.Fatalf("setup broken: labels differ (%v, %v)", a.SentimentLabel, b.SentimentLabel)
	}
	if a.NextStep != b.NextStep {
		t.Errorf("next step should depend on the label only: %q vs %q", a.NextStep, b.NextStep)
	}
}
