package recorder

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/devconsole/internal/errors"
	"codeberg.org/mutker/devconsole/internal/logger"
	"codeberg.org/mutker/devconsole/internal/telemetry"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, batch int) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		Enabled:   true,
		DBPath:    filepath.Join(dir, "telemetry.db"),
		BatchSize: batch,
		BackupDir: filepath.Join(dir, "backups"),
	}
}

func fixedClock() func() time.Time {
	ts := time.UnixMilli(1_700_000_000_000)
	return func() time.Time { return ts }
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.DBPath = ""
	assert.True(t, errors.HasCode(cfg.Validate(), ErrInvalidDBPath))

	cfg.DBPath = "x.db"
	cfg.BatchSize = 0
	assert.True(t, errors.HasCode(cfg.Validate(), ErrInvalidConfig))
}

func TestDisabledRecorderDiscards(t *testing.T) {
	rec, err := New(DefaultConfig(), nil)
	require.NoError(t, err)

	assert.Empty(t, rec.RunID())
	assert.NoError(t, rec.Record(context.Background(), []telemetry.Sample{{Series: "fps", Value: 60}}))
	assert.NoError(t, rec.Close())
}

func TestRecordFlushesFullBatches(t *testing.T) {
	repo, err := NewRepository(testConfig(t, 4), logger.New())
	require.NoError(t, err)
	svc, err := newService(repo, fixedClock())
	require.NoError(t, err)
	defer svc.Close()

	_, err = uuid.Parse(svc.RunID())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, svc.Record(ctx, []telemetry.Sample{{Series: "fps", Value: 60}, {Series: "cpu", Value: 10}, {Series: "heap", Value: 3}}))

	entries, err := repo.Entries(svc.RunID(), "cpu")
	require.NoError(t, err)
	assert.Empty(t, entries, "below batch size nothing is written")

	require.NoError(t, svc.Record(ctx, []telemetry.Sample{{Series: "fps", Value: 59}, {Series: "cpu", Value: 20}}))

	entries, err = repo.Entries(svc.RunID(), "cpu")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(1), entries[0].Tick)
	assert.Equal(t, 10.0, entries[0].Value)
	assert.Equal(t, int64(2), entries[1].Tick)
	assert.Equal(t, 20.0, entries[1].Value)
	assert.Equal(t, fixedClock()(), entries[1].Timestamp)

	runs, err := repo.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, svc.RunID(), runs[0].ID)
}

func TestEmptyTickStillCounts(t *testing.T) {
	repo, err := NewRepository(testConfig(t, 1), logger.New())
	require.NoError(t, err)
	svc, err := newService(repo, fixedClock())
	require.NoError(t, err)
	defer svc.Close()

	ctx := context.Background()
	require.NoError(t, svc.Record(ctx, nil))
	require.NoError(t, svc.Record(ctx, []telemetry.Sample{{Series: "fps", Value: 30}}))

	entries, err := repo.Entries(svc.RunID(), "fps")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].Tick)
}

func TestCloseFlushesPending(t *testing.T) {
	cfg := testConfig(t, 100)

	rec, err := New(cfg, logger.New())
	require.NoError(t, err)
	require.NoError(t, rec.Record(context.Background(), []telemetry.Sample{{Series: "fps", Value: 60}}))
	runID := rec.RunID()
	require.NoError(t, rec.Close())

	assert.True(t, errors.HasCode(rec.Record(context.Background(), []telemetry.Sample{{Series: "fps", Value: 1}}), ErrClosed))

	repo, err := NewRepository(cfg, logger.New())
	require.NoError(t, err)
	defer repo.Close()

	entries, err := repo.Entries(runID, "fps")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 60.0, entries[0].Value)
}

func TestRecordCancelledContext(t *testing.T) {
	repo, err := NewRepository(testConfig(t, 1), logger.New())
	require.NoError(t, err)
	svc, err := newService(repo, fixedClock())
	require.NoError(t, err)
	defer svc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = svc.Record(ctx, []telemetry.Sample{{Series: "fps", Value: 60}})
	assert.True(t, errors.HasCode(err, ErrOperationTimeout))
}

func TestSchemaMismatchIsBackedUpAndRecreated(t *testing.T) {
	cfg := testConfig(t, 1)

	db, err := sql.Open("sqlite3", cfg.DBPath)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE schema_versions (version INTEGER PRIMARY KEY, applied_at TEXT NOT NULL);
		INSERT INTO schema_versions VALUES (99, datetime('now'));
		CREATE TABLE samples (legacy INTEGER);`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	repo, err := NewRepository(cfg, logger.New())
	require.NoError(t, err)
	defer repo.Close()

	backups, err := os.ReadDir(cfg.BackupDir)
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Contains(t, backups[0].Name(), "telemetry_v99_")

	svc, err := newService(repo, fixedClock())
	require.NoError(t, err)
	require.NoError(t, svc.Record(context.Background(), []telemetry.Sample{{Series: "cpu", Value: 5}}))

	entries, err := repo.Entries(svc.RunID(), "cpu")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
