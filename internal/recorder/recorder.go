// Package recorder persists telemetry samples to SQLite so a session's
// graphs can be inspected after the overlay is gone.
package recorder

import (
	"context"
	"os"
	"sync"
	"time"

	"codeberg.org/mutker/devconsole/internal/errors"
	"codeberg.org/mutker/devconsole/internal/logger"
	"codeberg.org/mutker/devconsole/internal/telemetry"
	"github.com/google/uuid"
)

type service struct {
	repo  Repository
	runID string
	now   func() time.Time
	mu    sync.Mutex
	tick  int64
}

type noopRecorder struct{}

// New returns a Recorder for cfg. A disabled config yields a recorder that
// discards everything.
func New(cfg Config, log logger.Logger) (Recorder, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled {
		logger.Debug().Msg("Telemetry recording disabled, using no-op recorder")
		return noopRecorder{}, nil
	}

	if log == nil {
		log = logger.New()
	}

	repo, err := NewRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	return newService(repo, time.Now)
}

func newService(repo Repository, now func() time.Time) (*service, error) {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}

	run := Run{
		ID:        uuid.NewString(),
		StartedAt: now(),
		Host:      host,
	}
	if err := repo.StartRun(run); err != nil {
		repo.Close()
		return nil, errors.New().Wrap(ErrStorageInit, err)
	}

	logger.Info().
		Str("run_id", run.ID).
		Str("host", host).
		Msg("Telemetry recording started")

	return &service{repo: repo, runID: run.ID, now: now}, nil
}

func (s *service) Record(ctx context.Context, samples []telemetry.Sample) error {
	errFactory := errors.New()

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	default:
	}

	s.mu.Lock()
	s.tick++
	tick := s.tick
	s.mu.Unlock()

	if len(samples) == 0 {
		return nil
	}

	ts := s.now()
	entries := make([]Entry, len(samples))
	for i, sample := range samples {
		entries[i] = Entry{
			RunID:     s.runID,
			Tick:      tick,
			Series:    sample.Series,
			Value:     sample.Value,
			Timestamp: ts,
		}
	}

	if err := s.repo.Append(entries); err != nil {
		return errFactory.Wrap(ErrRecordFailed, err)
	}

	return nil
}

func (s *service) Flush() error {
	return s.repo.Flush()
}

func (s *service) Close() error {
	return s.repo.Close()
}

func (s *service) RunID() string {
	return s.runID
}

func (noopRecorder) Record(context.Context, []telemetry.Sample) error { return nil }
func (noopRecorder) Flush() error                                     { return nil }
func (noopRecorder) Close() error                                     { return nil }
func (noopRecorder) RunID() string                                    { return "" }
