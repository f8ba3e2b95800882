// Package runlog persists the mapping from run identifier to result URL.
// The log is a single JSON object shared across runner invocations. There is
// no cross-process locking: concurrent writers can lose updates.
package runlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Append merges one run record into the log file and rewrites it. An absent
// file is treated as an empty object; a present file must be a single JSON
// object. The rewrite goes through a temp file and rename so an interrupted
// process cannot leave a half-written log.
func Append(path string, runID int64, url string) error {
	records, err := Read(path)
	if err != nil {
		return err
	}
	records[strconv.FormatInt(runID, 10)] = url

	data, err := json.Marshal(records)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("runlog: write %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("runlog: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("runlog: write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("runlog: write %s: %w", path, err)
	}
	return nil
}

// Read loads the log file. An absent file yields an empty map.
func Read(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("runlog: read %s: %w", path, err)
	}
	records := map[string]string{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("runlog: %s is not a JSON object: %w", path, err)
	}
	return records, nil
}
