//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Seed builds the CLI and loads rules/seed.yaml into the rule database.
func Seed() error {
	if err := Build(); err != nil {
		return err
	}
	return runCLI("rules", "seed", filepath.Join("rules", "seed.yaml"))
}

// Analyze builds the CLI and runs the full analysis over every catalog
// document under catalogs/, writing one report per catalog into output/.
func Analyze() error {
	if err := Build(); err != nil {
		return err
	}
	entries, err := os.ReadDir("catalogs")
	if err != nil {
		return fmt.Errorf("reading catalogs directory: %w", err)
	}
	ran := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".xml" {
			continue
		}
		in := filepath.Join("catalogs", entry.Name())
		base := entry.Name()[:len(entry.Name())-len(".xml")]
		out := filepath.Join("output", base+".yaml")
		if err := runCLI("analyze", in, "--output", out); err != nil {
			return fmt.Errorf("analyzing %s: %w", in, err)
		}
		ran++
	}
	if ran == 0 {
		fmt.Println("No catalog documents found under catalogs/.")
	}
	return nil
}

// Sweep builds the CLI and removes stale sample files.
func Sweep() error {
	if err := Build(); err != nil {
		return err
	}
	return runCLI("sweep")
}

func runCLI(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
