package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(".", name), []byte(content), 0o644))
}

func Test_Load_Defaults(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	// when
	cfg, err := Load("")
	// then
	require.NoError(t, err)
	assert.Equal(t, "inventaire_sauvegarde.txt", cfg.Storage.Path)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, "historique.log", cfg.Audit.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func Test_Load_Layers(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	writeFile(t, "config.yaml", "storage:\n  path: stock.txt\nlog:\n  level: debug\n  format: text\n")
	writeFile(t, ".env", "BGRS_AUDIT_ENABLED=false\nBGRS_LOG_LEVEL=error\nUNRELATED=1\n")
	t.Setenv("BGRS_LOG_LEVEL", "warn")
	// when
	cfg, err := Load("")
	// then
	require.NoError(t, err)
	assert.Equal(t, "stock.txt", cfg.Storage.Path)
	assert.False(t, cfg.Audit.Enabled)
	assert.Equal(t, "warn", cfg.Log.Level, "process environment wins over .env")
	assert.Equal(t, "text", cfg.Log.Format)
}

func Test_Load_ExplicitFile(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	writeFile(t, "config.yaml", "storage:\n  path: ignored.txt\n")
	writeFile(t, "custom.yaml", "storage:\n  path: custom.txt\naudit:\n  path: custom.log\n")
	// when
	cfg, err := Load("custom.yaml")
	// then
	require.NoError(t, err)
	assert.Equal(t, "custom.txt", cfg.Storage.Path)
	assert.Equal(t, "custom.log", cfg.Audit.Path)
}

func Test_Load_Invalid(t *testing.T) {
	testCases := []struct {
		name      string
		key       string
		value     string
		errorText string
	}{
		{name: "Unknown log level", key: "BGRS_LOG_LEVEL", value: "verbose", errorText: "invalid log level"},
		{name: "Unknown log format", key: "BGRS_LOG_FORMAT", value: "xml", errorText: "invalid log format"},
		{name: "Blank storage path", key: "BGRS_STORAGE_PATH", value: " ", errorText: "storage path is not configured"},
		{name: "Blank audit path", key: "BGRS_AUDIT_PATH", value: " ", errorText: "audit log path is not configured"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			t.Chdir(t.TempDir())
			t.Setenv(tc.key, tc.value)
			// when
			_, err := Load("")
			// then
			assert.ErrorContains(t, err, tc.errorText)
		})
	}
}

func Test_Config_String(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	// when
	out := cfg.String()
	// then
	assert.Contains(t, out, "--- Storage ---")
	assert.Contains(t, out, "path: inventaire_sauvegarde.txt")
	assert.Contains(t, out, "enabled: true")
	assert.Contains(t, out, "level: info")
}
