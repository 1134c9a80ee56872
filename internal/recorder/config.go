package recorder

import (
	"os"
	"path/filepath"

	"codeberg.org/mutker/devconsole/internal/errors"
)

const (
	// File system permissions and paths
	defaultDirPerm   = 0o755
	defaultBatchSize = 64
)

type Config struct {
	Enabled   bool
	DBPath    string
	BatchSize int
	// BackupDir receives a copy of the database before an incompatible
	// schema is dropped. Empty means a "backups" directory next to DBPath.
	BackupDir string
}

func DefaultConfig() Config {
	return Config{
		DBPath:    filepath.Join(os.TempDir(), "devconsole", "telemetry.db"),
		BatchSize: defaultBatchSize,
		Enabled:   false, // Disabled by default
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	// Only validate storage settings if recording is enabled
	if !c.Enabled {
		return nil
	}
	if c.DBPath == "" {
		return errFactory.New(ErrInvalidDBPath)
	}
	if c.BatchSize < 1 {
		return errFactory.WithData(ErrInvalidConfig, "batch size must be positive")
	}
	return nil
}

func (c Config) backupDir() string {
	if c.BackupDir != "" {
		return c.BackupDir
	}
	return filepath.Join(filepath.Dir(c.DBPath), "backups")
}
