package project

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/mte/internal/model"
)

// DefaultDir is where generated projects land when no path is given.
const DefaultDir = "projects"

// ProjectPath creates a timestamped project filename in dir.
func ProjectPath(dir string) string {
	if dir == "" {
		dir = DefaultDir
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("project_%s.json", timestamp))
}

// WriteFile writes p to path atomically.
func WriteFile(p model.Project, path string) error {
	data, err := Export(p)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

// ReadFile reads a project document from path.
func ReadFile(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("read project: %w", err)
	}
	return Import(data)
}

// WriteYAML dumps p as YAML, handy for diffing projects by eye.
func WriteYAML(p model.Project, path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return writeAtomic(path, data)
}

// FindLatestProject finds the most recently modified .json file in dir.
func FindLatestProject(dir string) (string, error) {
	if dir == "" {
		dir = DefaultDir
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read projects directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no project files found in %s", dir)
	}

	// Sort by modification time (newest first)
	sort.Slice(files, func(i, j int) bool {
		infoI, _ := os.Stat(files[i])
		infoJ, _ := os.Stat(files[j])
		return infoI.ModTime().After(infoJ.ModTime())
	})
	return files[0], nil
}

// FormatClock renders seconds as mm:ss, or hh:mm:ss from one hour on.
// Negative input reads as zero.
func FormatClock(sec float64) string {
	sec = math.Max(0, sec)
	h := int(sec / 3600)
	m := int(math.Mod(sec, 3600) / 60)
	s := int(math.Mod(sec, 60))
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

func writeAtomic(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename tmp: %w", err)
	}
	return nil
}

// IsNotExist reports whether err came from a missing file.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
