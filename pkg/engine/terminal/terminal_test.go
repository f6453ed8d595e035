package terminal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestColorEnabledExplicitModes(t *testing.T) {
	if !ColorEnabled(ColorAlways, nil) {
		t.Error("ColorEnabled(always) = false, want true")
	}
	if ColorEnabled(ColorNever, os.Stdout) {
		t.Error("ColorEnabled(never) = true, want false")
	}
}

func TestColorEnabledAutoOnRegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if ColorEnabled(ColorAuto, f) {
		t.Error("ColorEnabled(auto, regular file) = true, want false")
	}
}

func TestGetSizeFallsBack(t *testing.T) {
	w, h := GetSize(nil)
	if w != DefaultWidth || h != DefaultHeight {
		t.Errorf("GetSize(nil) = %d, %d; want %d, %d", w, h, DefaultWidth, DefaultHeight)
	}
	if !FitsWidth(nil, DefaultWidth) {
		t.Error("FitsWidth(nil, DefaultWidth) = false, want true")
	}
}
