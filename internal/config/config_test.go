package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, FileName))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, SnapshotFileName), cfg.SnapshotPath)
	assert.Equal(t, "", cfg.User)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `
snapshot_path: /tmp/storyarch/projects.json
user: alice
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/storyarch/projects.json", cfg.SnapshotPath)
	assert.Equal(t, "alice", cfg.User)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format, "unset keys keep their defaults")
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("user: alice\n"), 0644))

	t.Setenv("STORYARCH_USER", "bob")
	t.Setenv("STORYARCH_SNAPSHOT_PATH", "/srv/projects.json")
	t.Setenv("STORYARCH_LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bob", cfg.User)
	assert.Equal(t, "/srv/projects.json", cfg.SnapshotPath)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad yaml", content: "user: [alice"},
		{name: "bad level", content: "log:\n  level: loud\n"},
		{name: "bad format", content: "log:\n  format: xml\n"},
		{name: "empty snapshot path", content: "snapshot_path: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default(filepath.Dir(path))
	cfg.User = "carol"
	cfg.Log.Level = "info"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "snapshot_path", envKey("STORYARCH_SNAPSHOT_PATH"))
	assert.Equal(t, "user", envKey("STORYARCH_USER"))
	assert.Equal(t, "log.level", envKey("STORYARCH_LOG_LEVEL"))
	assert.Equal(t, "log.format", envKey("STORYARCH_LOG_FORMAT"))
}
