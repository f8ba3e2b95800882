package automl

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.TPOT.Generations = 5

	written, err := WriteConfigFile(path, cfg)
	require.NoError(t, err)
	require.Equal(t, path, written)

	loaded, err := LoadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestConfigFileShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	_, err := WriteConfigFile(path, DefaultConfig())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var tree map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &tree))
	require.Len(t, tree, 3)
	require.Contains(t, tree, "tpot")
	require.Contains(t, tree, "autosklearn")
	require.Contains(t, tree, "wrapper")

	// Sorted keys and 4-space indentation.
	text := string(data)
	require.Less(t, strings.Index(text, `"autosklearn"`), strings.Index(text, `"tpot"`))
	require.Contains(t, text, "\n    \"autosklearn\"")
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.TPOT.Generations = 0
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.AutoSklearn.PerRunTimeLimit = cfg.AutoSklearn.TimeLeftForThisTask + 1
	require.Error(t, cfg.Validate())
}
