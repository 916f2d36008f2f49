// Package project locates and parses crest.toml, the per-project manifest
// that configures the pipeline.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the project root is identified by.
const ManifestName = "crest.toml"

var (
	// ErrPackageSectionMissing indicates that [package] is missing in a manifest.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing or empty.
	ErrPackageNameMissing = errors.New("missing [package].name")
	// ErrBadMaxRounds indicates a non-positive [lift].max_rounds value.
	ErrBadMaxRounds = errors.New("[lift].max_rounds must be positive")
)

// LiftConfig is the [lift] section: pass tuning knobs.
type LiftConfig struct {
	// MaxRounds caps the capture-analysis fixed point; 0 keeps the default.
	MaxRounds int
	// Validate runs the structural output checks after the rewrite.
	Validate bool
	// Jobs bounds driver parallelism; 0 means one worker per CPU.
	Jobs int
}

// Manifest is the parsed crest.toml.
type Manifest struct {
	Name string
	Lift LiftConfig
}

type manifestFile struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Lift struct {
		MaxRounds int  `toml:"max_rounds"`
		Validate  bool `toml:"validate"`
		Jobs      int  `toml:"jobs"`
	} `toml:"lift"`
}

// LoadManifest parses a crest.toml at path.
func LoadManifest(path string) (Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	name := strings.TrimSpace(cfg.Package.Name)
	if !meta.IsDefined("package", "name") || name == "" {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	if meta.IsDefined("lift", "max_rounds") && cfg.Lift.MaxRounds <= 0 {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrBadMaxRounds)
	}
	return Manifest{
		Name: name,
		Lift: LiftConfig{
			MaxRounds: cfg.Lift.MaxRounds,
			Validate:  cfg.Lift.Validate,
			Jobs:      cfg.Lift.Jobs,
		},
	}, nil
}

// FindManifest walks up from startDir to locate crest.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindProjectRoot returns the directory containing crest.toml, if any.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(manifestPath), true, nil
}
