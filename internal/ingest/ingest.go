package ingest

import (
	"time"
)

const (
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Run summarizes one pass over an input file.
type Run struct {
	StartedAt       time.Time
	FinishedAt      *time.Time
	Status          string
	RowsRead        int
	BooksInserted   int
	AuthorsInserted int
	Skipped         int
	Failed          int
	Error           string
}

type Outcome int

const (
	OutcomeInserted Outcome = iota
	// OutcomeNoMatch means the search API had nothing for the row.
	OutcomeNoMatch
	// OutcomeInvalid means the row lacked a title or author.
	OutcomeInvalid
	// OutcomeFailed means fetching or storing the row returned an error.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeNoMatch:
		return "no_match"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}
