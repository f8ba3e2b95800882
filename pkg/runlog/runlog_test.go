package runlog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")

	require.NoError(t, Append(path, 1, "urlA"))

	records, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"1": "urlA"}, records)
}

func TestAppendMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"1": "urlA"}`), 0644))

	require.NoError(t, Append(path, 2, "urlB"))

	records, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"1": "urlA", "2": "urlB"}, records)
}

func TestAppendOverwritesExistingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	require.NoError(t, Append(path, 1, "urlA"))
	require.NoError(t, Append(path, 1, "urlB"))

	records, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"1": "urlB"}, records)
}

func TestReadMissingFile(t *testing.T) {
	records, err := Read(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestReadRejectsNonObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	require.NoError(t, os.WriteFile(path, []byte(`["urlA"]`), 0644))

	_, err := Read(path)
	require.Error(t, err)
}
