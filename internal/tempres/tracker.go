// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tempres tracks ephemeral files and directories with guaranteed
// cleanup. One Tracker is built at startup and handed to every consumer;
// it supports concurrent registration from in-flight probes.
// See docs/ARCHITECTURE § Temp Resources.
package tempres

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/catalog-engine/pkg/types"
)

// Kind distinguishes tracked files from tracked directories.
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
)

// Resource is one tracked ephemeral path.
type Resource struct {
	Path      string
	Kind      Kind
	CreatedAt time.Time
}

// Tracker is a process-wide registry of ephemeral paths. Cleanup is
// idempotent: releasing an already-released path is a no-op, and removal
// errors never leave the registry entry behind.
type Tracker struct {
	baseDir string
	w       io.Writer

	mu        sync.Mutex
	resources map[string]Resource
}

// NewTracker creates the base directory and returns a tracker rooted there.
// An empty baseDir falls back to a catalog-engine directory under the OS
// temp root. Warnings go to w.
func NewTracker(cfg types.TempConfig, w io.Writer) (*Tracker, error) {
	baseDir := cfg.BaseDir
	if baseDir == "" {
		baseDir = filepath.Join(os.TempDir(), "catalog-engine")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating temp base directory: %w", err)
	}
	if w == nil {
		w = io.Discard
	}
	return &Tracker{
		baseDir:   baseDir,
		w:         w,
		resources: make(map[string]Resource),
	}, nil
}

// BaseDir returns the tracker's root directory.
func (t *Tracker) BaseDir() string {
	return t.baseDir
}

// Reserve registers a file path under subdir (created on demand, itself
// tracked) and returns it. The caller writes the file; the path is tracked
// whether or not the write ever happens.
func (t *Tracker) Reserve(name, subdir string) (string, error) {
	name = sanitizeName(name)
	if name == "" {
		return "", fmt.Errorf("resource name is empty after sanitizing")
	}

	dir := t.baseDir
	if subdir != "" {
		dir = filepath.Join(t.baseDir, sanitizeName(subdir))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating temp subdirectory: %w", err)
		}
		t.track(dir, KindDirectory)
	}

	path := filepath.Join(dir, name)
	t.track(path, KindFile)
	return path, nil
}

// Release removes the path from disk and from the registry. It reports
// whether the path was tracked; untracked paths are left alone. Releasing
// a path whose file never existed, or releasing twice, is harmless.
func (t *Tracker) Release(path string) bool {
	t.mu.Lock()
	_, tracked := t.resources[path]
	delete(t.resources, path)
	t.mu.Unlock()

	if !tracked {
		return false
	}
	if err := os.RemoveAll(path); err != nil {
		fmt.Fprintf(t.w, "warning: removing %s: %v\n", path, err)
	}
	return true
}

// SweepOlderThan removes files under the base directory whose modification
// time is older than maxAgeHours, returning how many were removed.
// Directories are kept; tracked entries for removed files are dropped.
func (t *Tracker) SweepOlderThan(maxAgeHours int) (int, error) {
	cutoff := time.Now().Add(-time.Duration(maxAgeHours) * time.Hour)

	removed := 0
	err := filepath.Walk(t.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !info.ModTime().Before(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			fmt.Fprintf(t.w, "warning: sweeping %s: %v\n", path, err)
			return nil
		}
		t.mu.Lock()
		delete(t.resources, path)
		t.mu.Unlock()
		removed++
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("sweeping %s: %w", t.baseDir, err)
	}
	return removed, nil
}

// Cleanup removes every tracked resource, files before directories, and
// returns how many were removed. Intended as a process-exit hook; calling
// it again is a no-op.
func (t *Tracker) Cleanup() int {
	t.mu.Lock()
	var files, dirs []string
	for path, r := range t.resources {
		if r.Kind == KindDirectory {
			dirs = append(dirs, path)
		} else {
			files = append(files, path)
		}
	}
	t.resources = make(map[string]Resource)
	t.mu.Unlock()

	removed := 0
	for _, path := range append(files, dirs...) {
		if err := os.RemoveAll(path); err != nil {
			fmt.Fprintf(t.w, "warning: removing %s: %v\n", path, err)
			continue
		}
		removed++
	}
	return removed
}

// Tracked returns a snapshot of the registry, for inspection and tests.
func (t *Tracker) Tracked() []Resource {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Resource, 0, len(t.resources))
	for _, r := range t.resources {
		out = append(out, r)
	}
	return out
}

func (t *Tracker) track(path string, kind Kind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.resources[path]; exists {
		return
	}
	t.resources[path] = Resource{Path: path, Kind: kind, CreatedAt: time.Now()}
}

// sanitizeName strips path separators and traversal sequences so a series
// id cannot escape the base directory.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "..", "")
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, name)
	return strings.TrimSpace(name)
}
