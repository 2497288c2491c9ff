package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// checkpointFile records which (destination, category) pairs have already
// been generated and uploaded. It is rewritten after every successful guide
// so an interrupted run loses at most the request in flight.
type checkpointFile struct {
	Completed map[string]bool `json:"completed"`
}

func checkpointKey(slug, category string, restaurant bool) string {
	kind := "category"
	if restaurant {
		kind = "restaurant"
	}
	return fmt.Sprintf("%s/%s/%s", kind, slug, category)
}

func loadCheckpoint(path string) (*checkpointFile, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &checkpointFile{Completed: map[string]bool{}}, nil
	}
	if err != nil {
		return nil, err
	}

	var cp checkpointFile
	if err := json.Unmarshal(raw, &cp); err != nil {
		return nil, fmt.Errorf("checkpoint file %s is corrupt: %w", path, err)
	}
	if cp.Completed == nil {
		cp.Completed = map[string]bool{}
	}
	return &cp, nil
}

func (cp *checkpointFile) Done(key string) bool {
	return cp.Completed[key]
}

func (cp *checkpointFile) Mark(key string) {
	cp.Completed[key] = true
}

func (cp *checkpointFile) Save(path string) error {
	raw, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
