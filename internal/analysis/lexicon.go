package analysis

import "regexp"

// Fixed lexical tables. Keyword entries are matched as whole words,
// case-insensitively, against the lower-cased input; every occurrence
// counts, not just presence.
var POSITIVE_WORDS = []string{
	"good", "great", "progress", "achieved", "completed", "happy",
	"improved", "success", "proud", "excited", "motivated", "grateful",
	"accomplished", "consistent", "energized", "finished", "better", "win",
}

var NEGATIVE_WORDS = []string{
	"bad", "failed", "struggled", "difficult", "stuck", "frustrated",
	"blocked", "overwhelmed", "can't", "cannot", "tired", "behind",
	"missed", "worse", "anxious", "stressed", "quit", "lost",
}

// Emoji are counted as raw substring occurrences so that sequences with
// variation selectors still match.
var POSITIVE_EMOJI = []string{
	"😀", "😄", "😊", "🙂", "💪", "🎉", "🔥", "👍", "✅", "🚀",
}

var NEGATIVE_EMOJI = []string{
	"😞", "😢", "😭", "😔", "😩", "😫", "😤", "👎", "💔", "😰",
}

var (
	positivePatterns = compileWordPatterns(POSITIVE_WORDS)
	negativePatterns = compileWordPatterns(NEGATIVE_WORDS)
)

// compileWordPatterns builds one boundary-anchored pattern per word so
// that "hard" never matches inside "hardly".
func compileWordPatterns(words []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return patterns
}
