package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerRead(t *testing.T) {
	input := `
data_dir = "/data"
log_level = "debug"

[session]
user_id = "u-1"

[storage]
driver = "s3"

[storage.s3]
bucket = "timetables"
region = "eu-west-1"
path_style = true

[[categories]]
name = "Lab"
color = "#14b8a6"
`
	m := &Manager{}
	cfg, err := m.Read(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "/data", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "u-1", cfg.Session.UserID)
	assert.Equal(t, DriverS3, cfg.Storage.Driver)
	assert.Equal(t, "timetables", cfg.Storage.S3.Bucket)
	assert.True(t, cfg.Storage.S3.PathStyle)
	require.Len(t, cfg.Categories, 1)
	assert.Equal(t, CategoryConfig{Name: "Lab", Color: "#14b8a6"}, cfg.Categories[0])
}

func TestManagerReadInvalid(t *testing.T) {
	m := &Manager{}
	_, err := m.Read(strings.NewReader("data_dir = "))
	assert.Error(t, err)
}

func TestManagerWriteRead(t *testing.T) {
	cfg := Default("/home/me")
	cfg.Categories = []CategoryConfig{{Name: "Lab", Color: "#14b8a6"}}

	var buf bytes.Buffer
	m := &Manager{}
	require.NoError(t, m.Write(&buf, cfg))

	got, err := m.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefault(t *testing.T) {
	cfg := Default("/home/me")

	assert.Equal(t, filepath.Join("/home/me", ".studyflow"), cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, filepath.Join("/home/me", ".studyflow", "studyflow.db"), cfg.Storage.SQLite.Path)
	assert.Equal(t, filepath.Join("/home/me", ".studyflow", "local"), cfg.LocalDir())
	assert.Empty(t, cfg.Session.UserID)
}

func TestLoadMissingFile(t *testing.T) {
	home := t.TempDir()
	cfg, err := Load(filepath.Join(home, "nope.toml"), home)
	require.NoError(t, err)
	assert.Equal(t, Default(home), cfg)
}

func TestLoadFillsDefaults(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[session]\nuser_id = \"u-1\"\n"), 0644))

	cfg, err := Load(path, home)
	require.NoError(t, err)
	assert.Equal(t, "u-1", cfg.Session.UserID)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, Dir(home), cfg.DataDir)
}

func TestLoadRejectsInvalidStorage(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown driver", "[storage]\ndriver = \"ftp\"\n"},
		{"s3 without bucket", "[storage]\ndriver = \"s3\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			path := filepath.Join(home, "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path, home)
			assert.Error(t, err)
		})
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "nested", "config.toml")
	cfg := Default(home)
	cfg.Session.UserID = "u-2"

	require.NoError(t, Save(path, cfg))

	got, err := Load(path, home)
	require.NoError(t, err)
	assert.Equal(t, "u-2", got.Session.UserID)
}

func TestPathEnvOverride(t *testing.T) {
	t.Setenv(EnvPath, "/tmp/custom.toml")
	assert.Equal(t, "/tmp/custom.toml", Path("/home/me"))

	t.Setenv(EnvPath, "")
	assert.Equal(t, filepath.Join("/home/me", ".studyflow", "config.toml"), Path("/home/me"))
}

func TestLoadExpandsHomeDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir = "~/timetable"

[storage.sqlite]
path = "~/db/studyflow.db"
`), 0644))

	cfg, err := Load(path, home)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "timetable"), cfg.DataDir)
	assert.Equal(t, filepath.Join(home, "db", "studyflow.db"), cfg.Storage.SQLite.Path)
}
