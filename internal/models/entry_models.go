package models

import "time"

const (
	STATUS_ACTIVE   = "active"
	STATUS_ARCHIVED = "archived"
)

// GoalUpdate is a stored goal-update entry together with the analysis
// computed when it was created.
type GoalUpdate struct {
	ID             string         `json:"id"`
	Text           string         `json:"text"`
	Area           string         `json:"area,omitempty"`
	Tags           []string       `json:"tags,omitempty"`
	Status         string         `json:"status"`
	SummaryBullets []string       `json:"summary_bullets"`
	SentimentLabel SentimentLabel `json:"sentiment_label"`
	NextStep       string         `json:"next_step"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// EntryFilter narrows a listing; zero values mean "no constraint".
type EntryFilter struct {
	Area      string
	Tag       string
	Status    string
	Sentiment string
}

// EntryPatch carries the mutable fields of an entry. Nil means "leave as is".
// Entry text is immutable; the analysis belongs to the text it was run on.
type EntryPatch struct {
	Area   *string   `json:"area"`
	Tags   *[]string `json:"tags"`
	Status *string   `json:"status"`
}

func ValidStatus(s string) bool {
	return s == STATUS_ACTIVE || s == STATUS_ARCHIVED
}
