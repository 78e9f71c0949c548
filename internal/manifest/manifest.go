// Package manifest parses the YAML dataset manifest consumed by the importer.
// A manifest groups related CSV exports into named datasets and lets each
// dataset override the encoding, delimiter, and gap tolerance, so one import
// run can cover exports from different vintages of the upstream exporter.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest is the root document of a dataset manifest file.
type Manifest struct {
	Datasets []Dataset `yaml:"datasets"`
}

// Dataset names one group of CSV exports to be combined into a single
// timeline. Files and Glob may be combined; duplicates are removed.
type Dataset struct {
	Name  string   `yaml:"name"`
	Files []string `yaml:"files,omitempty"`
	Glob  string   `yaml:"glob,omitempty"`

	// Encoding and Delimiter override the importer-wide CSV format.
	// Empty values fall back to the exporter defaults (ISO-8859-1, ";").
	Encoding  string `yaml:"encoding,omitempty"`
	Delimiter string `yaml:"delimiter,omitempty"`

	// GapThresholdHours overrides the 6-hour gap tolerance. Zero keeps the default.
	GapThresholdHours int `yaml:"gap_threshold_hours,omitempty"`
}

// Parse decodes and validates a manifest payload.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}
	if len(m.Datasets) == 0 {
		return nil, fmt.Errorf("manifest: no datasets defined")
	}

	seen := make(map[string]struct{}, len(m.Datasets))
	for i, d := range m.Datasets {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			return nil, fmt.Errorf("manifest: dataset %d has no name", i+1)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("manifest: duplicate dataset name %q", name)
		}
		seen[name] = struct{}{}

		if len(d.Files) == 0 && strings.TrimSpace(d.Glob) == "" {
			return nil, fmt.Errorf("manifest: dataset %q lists neither files nor a glob", name)
		}
		if d.GapThresholdHours < 0 {
			return nil, fmt.Errorf("manifest: dataset %q: gap_threshold_hours must not be negative", name)
		}
	}
	return &m, nil
}

// Load reads a manifest file from disk.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest: %s: %w", path, err)
	}
	return m, nil
}

// Resolve expands the dataset's glob (relative to baseDir when not absolute),
// merges it with the explicit file list, and returns the deduplicated result.
// The pipeline sorts files itself, so Resolve makes no ordering promise.
func (d Dataset) Resolve(baseDir string) ([]string, error) {
	files := slices.Clone(d.Files)
	for i, f := range files {
		if !filepath.IsAbs(f) {
			files[i] = filepath.Join(baseDir, f)
		}
	}

	if g := strings.TrimSpace(d.Glob); g != "" {
		if !filepath.IsAbs(g) {
			g = filepath.Join(baseDir, g)
		}
		matches, err := filepath.Glob(g)
		if err != nil {
			return nil, fmt.Errorf("manifest: dataset %q: bad glob %q: %w", d.Name, d.Glob, err)
		}
		files = append(files, matches...)
	}

	slices.Sort(files)
	files = slices.Compact(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("manifest: dataset %q matched no files", d.Name)
	}
	return files, nil
}

// GapThreshold returns the dataset's gap tolerance, or fallback when unset.
func (d Dataset) GapThreshold(fallback time.Duration) time.Duration {
	if d.GapThresholdHours > 0 {
		return time.Duration(d.GapThresholdHours) * time.Hour
	}
	return fallback
}
