package analysis

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	MIN_SENTENCE_LENGTH    = 10
	MAX_SUMMARY_BULLETS    = 3
	FALLBACK_PREFIX_LENGTH = 200
)

// ExtractSummary returns 1-3 bullets drawn verbatim from text. Sentences
// are split at runs of terminal punctuation, fragments under
// MIN_SENTENCE_LENGTH runes are dropped, and when more than three remain
// the three shortest are kept and re-emitted in document order.
func ExtractSummary(text string) []string {
	var kept []string
	for _, s := range splitSentences(text) {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) >= MIN_SENTENCE_LENGTH {
			kept = append(kept, s)
		}
	}

	if len(kept) == 0 {
		return []string{fallbackBullet(text)}
	}
	if len(kept) <= MAX_SUMMARY_BULLETS {
		return kept
	}

	type candidate struct {
		index  int
		length int
		text   string
	}
	ranked := make([]candidate, len(kept))
	for i, s := range kept {
		ranked[i] = candidate{index: i, length: utf8.RuneCountInString(s), text: s}
	}

	// Shortest first as a concision proxy; the explicit index tie-break
	// keeps equal-length sentences in document order.
	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].length != ranked[b].length {
			return ranked[a].length < ranked[b].length
		}
		return ranked[a].index < ranked[b].index
	})

	selected := ranked[:MAX_SUMMARY_BULLETS]
	sort.Slice(selected, func(a, b int) bool {
		return selected[a].index < selected[b].index
	})

	bullets := make([]string, 0, MAX_SUMMARY_BULLETS)
	for _, c := range selected {
		bullets = append(bullets, c.text)
	}
	return bullets
}

// splitSentences breaks text at runs of '.', '!', '?', reattaching each
// run to the sentence it closes rather than discarding it. Written as an
// explicit scan so consecutive terminators ("Why??") stay with their
// sentence. Trailing text without a terminator is not a candidate; input
// with no terminal punctuation at all yields none and is handled by the
// prefix fallback.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])
		if !isTerminator(runes[i]) {
			continue
		}
		for i+1 < len(runes) && isTerminator(runes[i+1]) {
			i++
			current.WriteRune(runes[i])
		}
		sentences = append(sentences, current.String())
		current.Reset()
	}
	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// fallbackBullet covers input where no sentence survives filtering: the
// first FALLBACK_PREFIX_LENGTH runes, with an ellipsis when truncated.
func fallbackBullet(text string) string {
	trimmed := strings.TrimSpace(text)
	runes := []rune(trimmed)
	if len(runes) <= FALLBACK_PREFIX_LENGTH {
		return trimmed
	}
	return strings.TrimSpace(string(runes[:FALLBACK_PREFIX_LENGTH])) + "..."
}
