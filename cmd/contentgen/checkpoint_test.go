package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckpointRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")

	cp, err := loadCheckpoint(path)
	if err != nil {
		t.Fatalf("loadCheckpoint on a missing file returned %v", err)
	}
	if cp.Done("category/aruba/things-to-do") {
		t.Error("fresh checkpoint reports work as done")
	}

	cp.Mark("category/aruba/things-to-do")
	cp.Mark("restaurant/aruba/fine-dining")
	if err := cp.Save(path); err != nil {
		t.Fatalf("Save returned %v", err)
	}

	reloaded, err := loadCheckpoint(path)
	if err != nil {
		t.Fatalf("loadCheckpoint after save returned %v", err)
	}
	if !reloaded.Done("category/aruba/things-to-do") {
		t.Error("completed category entry lost across save/load")
	}
	if !reloaded.Done("restaurant/aruba/fine-dining") {
		t.Error("completed restaurant entry lost across save/load")
	}
	if reloaded.Done("category/lisbon/things-to-do") {
		t.Error("never-marked entry reported done")
	}
}

func TestLoadCheckpointCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadCheckpoint(path); err == nil {
		t.Error("loadCheckpoint accepted a corrupt file")
	}
}

func TestCheckpointKey(t *testing.T) {
	category := checkpointKey("aruba", "things-to-do", false)
	restaurant := checkpointKey("aruba", "things-to-do", true)
	if category == restaurant {
		t.Errorf("category and restaurant keys collide: %q", category)
	}
	if checkpointKey("aruba", "day-trips", false) == category {
		t.Error("different categories share a key")
	}
}
