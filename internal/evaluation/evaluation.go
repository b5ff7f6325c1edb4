// Package evaluation compares the rule engine's sentiment labels with
// govader's over a corpus of goal updates. It exists to sanity-check
// lexicon changes offline; the serving path never consults VADER.
package evaluation

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spacesedan/goalpulse/internal/analysis"
	"github.com/spacesedan/goalpulse/internal/models"
	"github.com/spacesedan/goalpulse/internal/sentiment"
	"github.com/spacesedan/goalpulse/internal/utils"
)

// Comparison is the pair of verdicts for one update.
type Comparison struct {
	Text       string                `json:"text"`
	RuleLabel  models.SentimentLabel `json:"rule_label"`
	VaderLabel models.SentimentLabel `json:"vader_label"`
	VaderScore float64               `json:"vader_score"`
}

type Report struct {
	Total         int                           `json:"total"`
	Agreed        int                           `json:"agreed"`
	ByRuleLabel   map[models.SentimentLabel]int `json:"by_rule_label"`
	Disagreements []Comparison                  `json:"disagreements"`
}

func (r Report) AgreementRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Agreed) / float64(r.Total)
}

// ReadCorpus loads updates from r, one per line. Blank lines and lines
// starting with '#' are skipped.
func ReadCorpus(r io.Reader) ([]string, error) {
	var updates []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		updates = append(updates, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("[Evaluation] failed to read corpus: %w", err)
	}
	return updates, nil
}

// CompareCorpus labels every update with both analyzers, working through
// the corpus in batches so progress is visible on large files.
func CompareCorpus(updates []string) Report {
	report := Report{
		ByRuleLabel: map[models.SentimentLabel]int{},
	}

	buffer := utils.NewBatchBuffer[string]()
	flush := func() {
		batch := buffer.GetAndClear()
		if len(batch) == 0 {
			return
		}
		for _, text := range batch {
			cmp := compareOne(text)
			report.Total++
			report.ByRuleLabel[cmp.RuleLabel]++
			if cmp.RuleLabel == cmp.VaderLabel {
				report.Agreed++
			} else {
				report.Disagreements = append(report.Disagreements, cmp)
			}
		}
		slog.Info("[Evaluation] Processed batch",
			slog.Int("batch_size", len(batch)),
			slog.Int("total", report.Total))
	}

	for _, text := range updates {
		buffer.Add(text)
		if buffer.Size() >= utils.BATCH_SIZE {
			flush()
		}
	}
	if buffer.HasData() {
		flush()
	}

	return report
}

func compareOne(text string) Comparison {
	ruleLabel := analysis.ClassifySentiment(text)
	score, vaderLabel := sentiment.AnalyzeWithVADER(text)
	return Comparison{
		Text:       text,
		RuleLabel:  ruleLabel,
		VaderLabel: vaderLabel,
		VaderScore: score,
	}
}
