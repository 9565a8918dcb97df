package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"api_base_url":          "https://json.example",
		"online_check_interval": "10s",
		"admin":                 true,
		"upload":                map[string]any{"backend": "http", "endpoint": "https://img"},
	})

	t.Run("loads from flags", func(t *testing.T) {
		cfg := &Config{PortfolioID: "kept"}
		require.NoError(t, parseJson(cfg, []string{"-config", pathFlag}))

		assert.Equal(t, "https://json.example", cfg.APIBaseURL)
		assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
		assert.True(t, cfg.Admin)
		assert.Equal(t, "kept", cfg.PortfolioID, "absent fields keep earlier values")
		assert.Equal(t, UploadConfig{Backend: "http", Endpoint: "https://img"}, cfg.Upload)
	})

	t.Run("no flags → no changes", func(t *testing.T) {
		cfg := &Config{APIBaseURL: "https://default", OnlineCheckInterval: 42 * time.Second}
		require.NoError(t, parseJson(cfg, []string{"-id", "x"}))

		assert.Equal(t, "https://default", cfg.APIBaseURL)
		assert.Equal(t, 42*time.Second, cfg.OnlineCheckInterval)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Error(t, parseJson(&Config{}, []string{"-c", bad}))
	})

	t.Run("missing file → error", func(t *testing.T) {
		require.Error(t, parseJson(&Config{}, []string{"-c", filepath.Join(dir, "nope.json")}))
	})
}
