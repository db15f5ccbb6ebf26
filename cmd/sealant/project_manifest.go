package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noSealantTomlMessage = "no sealant.toml found\nplease specify the bundle manifest explicitly, e.g.:\n  sealant seal --bundle dist/bundle.json"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig

	algorithmsMeta *toml.MetaData
}

type projectConfig struct {
	Bundle    bundleConfig    `toml:"bundle"`
	Integrity integrityConfig `toml:"integrity"`
}

type bundleConfig struct {
	Manifest   string `toml:"manifest"`
	Output     string `toml:"output"`
	PublicPath string `toml:"public_path"`
}

type integrityConfig struct {
	// Algorithms accepts a single string or a list of strings; decoded
	// lazily so both shapes validate through the same path.
	Algorithms toml.Primitive `toml:"algorithms"`
	Record     string         `toml:"record"`
}

func findSealantToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "sealant.toml")
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

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findSealantToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, meta, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	m := &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}
	m.algorithmsMeta = meta
	return m, true, nil
}

func loadProjectConfig(path string) (projectConfig, *toml.MetaData, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("bundle") {
		return projectConfig{}, nil, fmt.Errorf("%s: missing [bundle]", path)
	}
	if !meta.IsDefined("bundle", "manifest") || strings.TrimSpace(cfg.Bundle.Manifest) == "" {
		return projectConfig{}, nil, fmt.Errorf("%s: missing [bundle].manifest", path)
	}
	return cfg, &meta, nil
}

// Algorithms decodes the string-or-list algorithm setting. Returns nil when
// the key is absent so the caller can fall back to flags or the default.
func (m *projectManifest) Algorithms() (any, error) {
	if m.algorithmsMeta == nil || !m.algorithmsMeta.IsDefined("integrity", "algorithms") {
		return nil, nil
	}
	var single string
	if err := m.algorithmsMeta.PrimitiveDecode(m.Config.Integrity.Algorithms, &single); err == nil {
		return single, nil
	}
	var many []string
	if err := m.algorithmsMeta.PrimitiveDecode(m.Config.Integrity.Algorithms, &many); err == nil {
		return many, nil
	}
	return nil, fmt.Errorf("%s: [integrity].algorithms must be a string or a list of strings", m.Path)
}
