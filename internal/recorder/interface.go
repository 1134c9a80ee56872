package recorder

import (
	"context"
	"time"

	"codeberg.org/mutker/devconsole/internal/telemetry"
)

// Recorder persists the samples of every board tick under one run.
type Recorder interface {
	// Record stores the samples taken during one tick. Calls are
	// numbered consecutively from 1 within the run.
	Record(ctx context.Context, samples []telemetry.Sample) error
	Flush() error
	Close() error
	// RunID identifies this process's recording; empty when disabled.
	RunID() string
}

// Repository is the storage behind a Recorder.
type Repository interface {
	StartRun(run Run) error
	Append(records []Entry) error
	Flush() error
	Close() error
	Runs() ([]Run, error)
	Entries(runID, series string) ([]Entry, error)
}

// Run is one recording session.
type Run struct {
	ID        string
	StartedAt time.Time
	Host      string
}

// Entry is one stored sample.
type Entry struct {
	RunID     string
	Tick      int64
	Series    string
	Value     float64
	Timestamp time.Time
}
