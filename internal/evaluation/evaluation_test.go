package evaluation

import (
	"strings"
	"testing"

	"github.com/spacesedan/goalpulse/internal/models"
)

func TestReadCorpus(t *testing.T) {
	input := `# fixture corpus
Made great progress today!

Went for a walk.
  I'm stuck and frustrated.
`
	updates, err := ReadCorpus(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCorpus() error: %v", err)
	}

	want := []string{
		"Made great progress today!",
		"Went for a walk.",
		"I'm stuck and frustrated.",
	}
	if len(updates) != len(want) {
		t.Fatalf("ReadCorpus() returned %d updates, want %d", len(updates), len(want))
	}
	for i := range want {
		if updates[i] != want[i] {
			t.Errorf("updates[%d] = %q, want %q", i, updates[i], want[i])
		}
	}
}

func TestCompareCorpus(t *testing.T) {
	updates := []string{
		"Made great progress today! Completed my workout.",
		"I'm stuck and frustrated, nothing is working.",
		"Went for a walk.",
	}

	report := CompareCorpus(updates)

	if report.Total != len(updates) {
		t.Errorf("report.Total = %d, want %d", report.Total, len(updates))
	}
	if report.ByRuleLabel[models.SentimentPositive] != 1 {
		t.Errorf("positive count = %d, want 1", report.ByRuleLabel[models.SentimentPositive])
	}
	if report.ByRuleLabel[models.SentimentNegative] != 1 {
		t.Errorf("negative count = %d, want 1", report.ByRuleLabel[models.SentimentNegative])
	}
	if report.ByRuleLabel[models.SentimentNeutral] != 1 {
		t.Errorf("neutral count = %d, want 1", report.ByRuleLabel[models.SentimentNeutral])
	}
	if report.Agreed+len(report.Disagreements) != report.Total {
		t.Errorf("agreed (%d) + disagreements (%d) != total (%d)",
			report.Agreed, len(report.Disagreements), report.Total)
	}
}

func TestCompareCorpusBatchesLargeInput(t *testing.T) {
	// More updates than one batch holds; every one must be counted.
	var updates []string
	for i := 0; i < 60; i++ {
		updates = append(updates, "Went for a walk.")
	}

	report := CompareCorpus(updates)
	if report.Total != 60 {
		t.Errorf("report.Total = %d, want 60", report.Total)
	}
}

func TestReportAgreementRate(t *testing.T) {
	r := Report{Total: 4, Agreed: 3}
	if got := r.AgreementRate(); got != 0.75 {
		t.Errorf("AgreementRate() = %v, want 0.75", got)
	}

	var empty Report
	if got := empty.AgreementRate(); got != 0 {
		t.Errorf("AgreementRate() on empty report = %v, want 0", got)
	}
}
