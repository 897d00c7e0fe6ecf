package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamkelajack06/Study-Flow/internal/config"
	"github.com/yamkelajack06/Study-Flow/internal/logging"
)

func TestNewStrategyFromConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("signed out uses local", func(t *testing.T) {
		cfg := config.Default(t.TempDir())
		s, err := NewStrategyFromConfig(ctx, cfg, logging.NewNopLogger())
		require.NoError(t, err)
		assert.IsType(t, &Local{}, s)
	})

	t.Run("signed in uses sqlite", func(t *testing.T) {
		cfg := config.Default(t.TempDir())
		cfg.Session.UserID = "user-1"
		cfg.Storage.SQLite.Path = filepath.Join(t.TempDir(), "nested", "studyflow.db")

		s, err := NewStrategyFromConfig(ctx, cfg, logging.NewNopLogger())
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		assert.IsType(t, &SQLite{}, s)
	})

	t.Run("signed in uses s3", func(t *testing.T) {
		cfg := config.Default(t.TempDir())
		cfg.Session.UserID = "user-1"
		cfg.Storage.Driver = config.DriverS3
		cfg.Storage.S3 = config.S3Config{
			Bucket:          "timetables",
			Region:          "eu-west-1",
			AccessKeyID:     "AKIA",
			SecretAccessKey: "SECRET",
		}

		s, err := NewStrategyFromConfig(ctx, cfg, logging.NewNopLogger())
		require.NoError(t, err)
		assert.IsType(t, &S3{}, s)
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := config.Default(t.TempDir())
		cfg.Session.UserID = "user-1"
		cfg.Storage.Driver = "ftp"

		_, err := NewStrategyFromConfig(ctx, cfg, logging.NewNopLogger())
		assert.Error(t, err)
	})
}
