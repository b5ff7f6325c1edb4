package analysis

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractSummarySentenceSplitting(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two sentences kept in order",
			text: "Made great progress today! Completed my workout.",
			want: []string{"Made great progress today!", "Completed my workout."},
		},
		{
			name: "terminator runs reattach to their sentence",
			text: "I'm stuck and frustrated, nothing is working. Why does this keep happening? Why??",
			want: []string{
				"I'm stuck and frustrated, nothing is working.",
				"Why does this keep happening?",
			},
		},
		{
			name: "short fragments filtered out",
			text: "Ok. Went for a long walk today. No.",
			want: []string{"Went for a long walk today."},
		},
		{
			name: "unterminated trailing text is not a candidate",
			text: "Finished the first draft. More edits coming tomorrow",
			want: []string{"Finished the first draft."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractSummary(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractSummary(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractSummarySelectsShortestInDocumentOrder(t *testing.T) {
	// Five sentences of distinct lengths; the three shortest must come
	// back in their original relative order, not sorted by length.
	text := "Alpha beta gamma delta. Keep going. This sentence is rather long indeed. Nice work today. Middling length here."
	want := []string{"Keep going.", "Nice work today.", "Middling length here."}
	if got := ExtractSummary(text); !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSummary() = %v, want %v", got, want)
	}
}

func TestExtractSummaryLengthTiesKeepDocumentOrder(t *testing.T) {
	// The last three sentences have equal length; the earliest two of
	// them must win the tie.
	text := "red apples. big oranges. old bananas. ripe kiwies."
	want := []string{"red apples.", "big oranges.", "old bananas."}
	if got := ExtractSummary(text); !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSummary() = %v, want %v", got, want)
	}
}

func TestExtractSummaryFallback(t *testing.T) {
	t.Run("no terminal punctuation returns trimmed input", func(t *testing.T) {
		got := ExtractSummary("  short note with no punctuation  ")
		want := []string{"short note with no punctuation"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ExtractSummary() = %v, want %v", got, want)
		}
	})

	t.Run("long unpunctuated input is truncated with ellipsis", func(t *testing.T) {
		text := strings.Repeat("a", 250)
		got := ExtractSummary(text)
		if len(got) != 1 {
			t.Fatalf("expected one fallback bullet, got %d", len(got))
		}
		want := strings.Repeat("a", 200) + "..."
		if got[0] != want {
			t.Errorf("fallback bullet = %q, want %q", got[0], want)
		}
	})

	t.Run("all fragments too short falls back to prefix", func(t *testing.T) {
		got := ExtractSummary("Ok. No. Hm.")
		want := []string{"Ok. No. Hm."}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ExtractSummary() = %v, want %v", got, want)
		}
	})
}

func TestExtractSummaryBounds(t *testing.T) {
	inputs := []string{
		"x",
		"Went for a walk.",
		"One long sentence here. Another long sentence here. A third long sentence. A fourth long sentence. A fifth long sentence.",
		strings.Repeat("word ", 500),
		"!!!???...",
	}
	for _, text := range inputs {
		bullets := ExtractSummary(text)
		if len(bullets) < 1 || len(bullets) > MAX_SUMMARY_BULLETS {
			t.Errorf("ExtractSummary(%.30q) returned %d bullets", text, len(bullets))
		}
	}
}
