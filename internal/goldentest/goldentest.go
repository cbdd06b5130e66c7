// Package goldentest reads and writes the golden log files used to
// pin down a scheduler's exact output for a named scenario. Set
// WRITE_OUTPUT to regenerate the golden file instead of comparing
// against it, mirroring how the reference test harness this project
// grew out of re-baselines its fixtures.
package goldentest

import (
	"fmt"
	"os"
	"path/filepath"
)

// Params identifies one run: the scheduler under test and the knobs it
// was constructed with. Golden files are keyed by all of these so a
// different timeslice/remaining/cpu-slices combination never collides.
type Params struct {
	Scheduler string
	Folder    string
	Name      string
	Timeslice int
	Remaining int
	CPUSlices int
}

func (p Params) path(baseDir string) string {
	file := fmt.Sprintf("%s___%d_%d_%d.log", p.Name, p.Timeslice, p.Remaining, p.CPUSlices)
	return filepath.Join(baseDir, p.Scheduler, p.Folder, file)
}

// Write saves output as the golden file for p under baseDir.
func Write(baseDir string, p Params, output string) error {
	path := p.path(baseDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("goldentest: create dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
		return fmt.Errorf("goldentest: write golden: %w", err)
	}
	return nil
}

// Read loads the golden file for p under baseDir.
func Read(baseDir string, p Params) (string, error) {
	out, err := os.ReadFile(p.path(baseDir))
	if err != nil {
		return "", fmt.Errorf("goldentest: read golden: %w", err)
	}
	return string(out), nil
}

// ShouldWrite reports whether WRITE_OUTPUT asks to regenerate goldens
// rather than compare against them.
func ShouldWrite() bool {
	_, ok := os.LookupEnv("WRITE_OUTPUT")
	return ok
}
