package cardscan

import (
	"context"
	"time"
)

// StandardItem is the flattened, externally-visible unit: one per card
// across all groups.
type StandardItem struct {
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	ContentType ContentType `json:"content_type"`
	SourceURL   string      `json:"source_url"`
}

// Result is the standardized output of a scrape pass.
type Result struct {
	Site  string          `json:"site"`
	Items []*StandardItem `json:"items"`
}

// ScrapeRun records a persisted scrape pass.
type ScrapeRun struct {
	ID        string    `json:"id"`
	Site      string    `json:"site"`
	ItemCount int       `json:"itemCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// ItemService persists scrape results.
type ItemService interface {
	// SaveResult stores a result as a new run and returns the run ID.
	SaveResult(ctx context.Context, result *Result) (string, error)

	// FindResultByRunID reassembles the result saved under a run.
	// Returns ENOTFOUND if the run does not exist.
	FindResultByRunID(ctx context.Context, runID string) (*Result, error)

	// FindRuns lists saved runs, most recent first.
	FindRuns(ctx context.Context) ([]*ScrapeRun, error)
}
