package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/spacesedan/goalpulse/config"
	"github.com/spacesedan/goalpulse/internal/evaluation"
	"github.com/spacesedan/goalpulse/internal/logging"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	corpusPath := flag.String("corpus", "", "path to a corpus file, one goal update per line")
	showDisagreements := flag.Bool("disagreements", false, "print every update the two analyzers label differently")
	flag.Parse()

	if *corpusPath == "" {
		slog.Error("[Evaluate] -corpus is required")
		os.Exit(2)
	}

	f, err := os.Open(*corpusPath)
	if err != nil {
		slog.Error("[Evaluate] Failed to open corpus",
			slog.String("path", *corpusPath),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer f.Close()

	updates, err := evaluation.ReadCorpus(f)
	if err != nil {
		slog.Error("[Evaluate] Failed to read corpus", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(updates) == 0 {
		slog.Error("[Evaluate] Corpus is empty", slog.String("path", *corpusPath))
		os.Exit(1)
	}

	report := evaluation.CompareCorpus(updates)

	fmt.Printf("updates:        %d\n", report.Total)
	fmt.Printf("agreed:         %d (%.1f%%)\n", report.Agreed, report.AgreementRate()*100)
	fmt.Printf("rule labels:    Positive=%d Neutral=%d Negative=%d\n",
		report.ByRuleLabel["Positive"], report.ByRuleLabel["Neutral"], report.ByRuleLabel["Negative"])
	fmt.Printf("disagreements:  %d\n", len(report.Disagreements))

	if *showDisagreements {
		for _, d := range report.Disagreements {
			fmt.Printf("  rule=%-8s vader=%-8s (%.3f)  %s\n", d.RuleLabel, d.VaderLabel, d.VaderScore, d.Text)
		}
	}
}
