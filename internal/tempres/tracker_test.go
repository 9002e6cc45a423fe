// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tempres

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pdiddy/catalog-engine/pkg/types"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	tracker, err := NewTracker(types.TempConfig{BaseDir: t.TempDir()}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return tracker
}

func TestReserveAndRelease(t *testing.T) {
	tracker := newTestTracker(t)

	path, err := tracker.Reserve("POP.xml", "samples")
	if err != nil {
		t.Fatalf("Reserve returned error: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(tracker.BaseDir(), "samples") {
		t.Errorf("path = %q, want it under samples/", path)
	}

	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !tracker.Release(path) {
		t.Error("Release = false for a tracked path")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("released file still exists")
	}

	// Releasing again is a harmless no-op.
	if tracker.Release(path) {
		t.Error("second Release = true, want false")
	}
}

func TestReleaseUntrackedPath(t *testing.T) {
	tracker := newTestTracker(t)

	outside := filepath.Join(t.TempDir(), "keep.txt")
	if err := os.WriteFile(outside, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if tracker.Release(outside) {
		t.Error("Release = true for an untracked path")
	}
	if _, err := os.Stat(outside); err != nil {
		t.Error("untracked file was removed")
	}
}

func TestReserveSanitizesName(t *testing.T) {
	tracker := newTestTracker(t)

	path, err := tracker.Reserve("../../etc/passwd", "samples")
	if err != nil {
		t.Fatalf("Reserve returned error: %v", err)
	}
	if !strings.HasPrefix(path, tracker.BaseDir()) {
		t.Errorf("path = %q escapes the base directory", path)
	}
}

func TestConcurrentReserveAndRelease(t *testing.T) {
	tracker := newTestTracker(t)

	var wg sync.WaitGroup
	paths := make([]string, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path, err := tracker.Reserve(fmt.Sprintf("S%02d.xml", i), "samples")
			if err != nil {
				t.Errorf("Reserve: %v", err)
				return
			}
			paths[i] = path
			os.WriteFile(path, []byte("x"), 0o644)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tracker.Release(paths[i])
		}(i)
	}
	wg.Wait()

	for _, r := range tracker.Tracked() {
		if r.Kind == KindFile {
			t.Errorf("file %s still tracked after release", r.Path)
		}
	}
}

func TestSweepOlderThan(t *testing.T) {
	tracker := newTestTracker(t)

	oldPath, err := tracker.Reserve("old.xml", "samples")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(oldPath, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	stale := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(oldPath, stale, stale); err != nil {
		t.Fatal(err)
	}

	freshPath, err := tracker.Reserve("fresh.xml", "samples")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(freshPath, []byte("fresh"), 0o644); err != nil {
		t.Fatal(err)
	}

	removed, err := tracker.SweepOlderThan(24)
	if err != nil {
		t.Fatalf("SweepOlderThan returned error: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Error("stale file survived the sweep")
	}
	if _, err := os.Stat(freshPath); err != nil {
		t.Error("fresh file was swept")
	}
}

func TestCleanupRemovesEverything(t *testing.T) {
	tracker := newTestTracker(t)

	for i := 0; i < 3; i++ {
		path, err := tracker.Reserve(fmt.Sprintf("S%d.xml", i), "samples")
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	removed := tracker.Cleanup()
	if removed != 4 { // 3 files + samples directory
		t.Errorf("removed = %d, want 4", removed)
	}
	if entries := tracker.Tracked(); len(entries) != 0 {
		t.Errorf("registry still holds %d entries after cleanup", len(entries))
	}

	// Cleanup after cleanup is a no-op.
	if again := tracker.Cleanup(); again != 0 {
		t.Errorf("second Cleanup removed %d, want 0", again)
	}
}
