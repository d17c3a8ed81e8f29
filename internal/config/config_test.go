package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "c.yaml", `
colors:
  string: "#87CEEB"
  int: "212"
hotkeys:
  open: ["o", "ctrl+o"]
logging:
  level: debug
  format: json
start_dir: /data
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "#87CEEB", cfg.Colors.String)
	assert.Equal(t, "212", cfg.Colors.Int)
	assert.Empty(t, cfg.Colors.Float)
	assert.Equal(t, []string{"o", "ctrl+o"}, cfg.Hotkeys["open"])
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/data", cfg.StartDir)
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "c.json", `{"colors": {"bool": "#DDA0DD"}, "hotkeys": {"quit": ["x"]}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "#DDA0DD", cfg.Colors.Bool)
	assert.Equal(t, []string{"x"}, cfg.Hotkeys["quit"])
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"syntax":       "colors: [",
		"bad level":    "logging:\n  level: loud\n",
		"bad format":   "logging:\n  format: xml\n",
		"empty hotkey": "hotkeys:\n  open: [\"\"]\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "c.yaml", data))
			assert.Error(t, err)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "data"), ExpandHome("~/data"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/abs", ExpandHome("/abs"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
	assert.Equal(t, "", ExpandHome(""))
}
