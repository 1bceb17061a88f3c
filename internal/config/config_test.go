package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, '=', cfg.HeaderSep())
	require.Equal(t, '|', cfg.ColumnSep())
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
log:
  level: debug
table:
  header_sep: "-"
resource:
  allowed: ["/data/**"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
	require.Equal(t, '-', cfg.HeaderSep())
	require.Equal(t, '|', cfg.ColumnSep())
	require.Equal(t, []string{"/data/**"}, cfg.Resource.Allowed)
	require.Equal(t, "continue? Y/N", cfg.Console.ContinuePrompt)
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[log]
format = "json"

[console]
prompt = ">"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, ">", cfg.Console.Prompt)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "config.yml", "table:\n  column_sep: \"||\"\n")
	_, err := Load(path)
	require.True(t, errors.Is(err, errInvalidConfig), "got %v", err)

	path = writeConfig(t, "config.yml", "log:\n  format: xml\n")
	_, err = Load(path)
	require.True(t, errors.Is(err, errInvalidConfig), "got %v", err)

	path = writeConfig(t, "config.yml", "log:\n  level: dbug\n")
	_, err = Load(path)
	require.True(t, errors.Is(err, errInvalidConfig), "got %v", err)

	path = writeConfig(t, "config.yml", "console:\n  max_line_bytes: 0\n")
	_, err = Load(path)
	require.True(t, errors.Is(err, errInvalidConfig), "got %v", err)
}

func TestLoadAcceptsLevelSpellings(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "warn", "error", "info+2"} {
		cfg, err := Load(writeConfig(t, "config.yaml", "log:\n  level: "+level+"\n"))
		require.NoError(t, err, level)
		require.Equal(t, level, cfg.Log.Level)
	}
}

func TestLoadConsoleLineLimit(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.toml", "[console]\nmax_line_bytes = 4096\n"))
	require.NoError(t, err)
	require.Equal(t, 4096, cfg.Console.MaxLineBytes)
	require.Equal(t, "continue? Y/N", cfg.Console.ContinuePrompt)
}

func TestLoadEmptyFile(t *testing.T) {
	_, err := Load(writeConfig(t, "config.yaml", ""))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
