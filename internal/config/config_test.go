package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no cleancorp.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "", cfg.Terms.Path)
	assert.False(t, cfg.Classify.FoldUnicode)
	assert.Equal(t, 8, cfg.Batch.Concurrency)
	assert.Equal(t, "name", cfg.Batch.NameColumn)
	assert.Equal(t, "jsonl", cfg.Batch.Format)
	assert.Equal(t, 600, cfg.Batch.CacheTTLSecs)
	assert.Equal(t, "", cfg.Batch.Sheet)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
  format: console
terms:
  path: /etc/cleancorp/terms.yaml
classify:
  fold_unicode: true
batch:
  concurrency: 2
  format: csv
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cleancorp.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "/etc/cleancorp/terms.yaml", cfg.Terms.Path)
	assert.True(t, cfg.Classify.FoldUnicode)
	assert.Equal(t, 2, cfg.Batch.Concurrency)
	assert.Equal(t, "csv", cfg.Batch.Format)
	// Defaults still apply for unset values
	assert.Equal(t, "name", cfg.Batch.NameColumn)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
batch:
  name_column: company
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cleancorp.yaml"), []byte(yaml), 0644))

	t.Setenv("CLEANCORP_LOG_LEVEL", "warn")
	t.Setenv("CLEANCORP_BATCH_NAME_COLUMN", "legal_name")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "legal_name", cfg.Batch.NameColumn)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("CLEANCORP_BATCH_CONCURRENCY", "32")
	t.Setenv("CLEANCORP_CLASSIFY_FOLD_UNICODE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Batch.Concurrency)
	assert.True(t, cfg.Classify.FoldUnicode)
}

func TestLoadBadFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cleancorp.yaml"), []byte("log: [unclosed"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func validDefaults() *Config {
	cfg := &Config{}
	cfg.Batch.Concurrency = 8
	cfg.Batch.Format = "jsonl"
	cfg.Batch.CacheTTLSecs = 600
	return cfg
}

func TestValidate_OK(t *testing.T) {
	for _, format := range BatchFormats {
		cfg := validDefaults()
		cfg.Batch.Format = format
		assert.NoError(t, cfg.Validate(), format)
	}
}

func TestValidate_Invalid(t *testing.T) {
	cfg := validDefaults()
	cfg.Batch.Concurrency = 0
	cfg.Batch.Format = "xml"
	cfg.Batch.CacheTTLSecs = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch.concurrency must be at least 1")
	assert.Contains(t, err.Error(), `batch.format must be one of jsonl, json, csv (got "xml")`)
	assert.Contains(t, err.Error(), "batch.cache_ttl_secs must not be negative")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
