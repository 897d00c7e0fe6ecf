package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yamkelajack06/Study-Flow/internal/config"
	"github.com/yamkelajack06/Study-Flow/internal/logging"
)

// NewStrategyFromConfig picks the strategy for the current session. A
// signed-in session uses the configured durable driver; otherwise entries
// stay in the local data directory. log receives stored entries that had to
// be skipped while loading.
func NewStrategyFromConfig(ctx context.Context, cfg *config.Config, log logging.Logger) (Strategy, error) {
	userID := cfg.Session.UserID
	if userID == "" {
		if err := os.MkdirAll(cfg.LocalDir(), 0755); err != nil {
			return nil, fmt.Errorf("creating local data directory: %w", err)
		}
		l := NewLocal(cfg.LocalDir())
		l.SetLogger(log)
		return l, nil
	}

	switch cfg.Storage.Driver {
	case config.DriverSQLite, "":
		dbPath := cfg.Storage.SQLite.Path
		if dbPath == "" {
			return nil, fmt.Errorf("storage.sqlite.path required for sqlite storage")
		}
		if dbPath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		return NewSQLite(dbPath, userID)
	case config.DriverS3:
		s3cfg := cfg.Storage.S3
		s, err := NewS3(ctx, S3Config{
			Bucket:          s3cfg.Bucket,
			Region:          s3cfg.Region,
			Endpoint:        s3cfg.Endpoint,
			Prefix:          s3cfg.Prefix,
			PathStyle:       s3cfg.PathStyle,
			AccessKeyID:     s3cfg.AccessKeyID,
			SecretAccessKey: s3cfg.SecretAccessKey,
		}, userID)
		if err != nil {
			return nil, err
		}
		s.SetLogger(log)
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}
