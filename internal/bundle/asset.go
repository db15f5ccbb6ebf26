package bundle

import (
	"sort"
)

// Asset is one emitted output file. Content is replaced wholesale when
// placeholder substitution occurs; Integrity is attached exactly once by the
// resolution or sweep pass and never overwritten.
type Asset struct {
	Path      string
	content   []byte
	dirty     bool
	Integrity string
}

// NewAsset constructs an asset with its initial content.
func NewAsset(path string, content []byte) *Asset {
	return &Asset{Path: path, content: content}
}

// Text returns the current content as a string.
func (a *Asset) Text() string {
	return string(a.content)
}

// Bytes returns the current content. Do not mutate the returned slice.
func (a *Asset) Bytes() []byte {
	return a.content
}

// Replace swaps the whole content.
func (a *Asset) Replace(content []byte) {
	a.content = content
	a.dirty = true
}

// ReplaceText swaps the whole content from a string.
func (a *Asset) ReplaceText(content string) {
	a.content = []byte(content)
	a.dirty = true
}

// Dirty reports whether the content changed since loading.
func (a *Asset) Dirty() bool {
	return a.dirty
}

// AssetMap indexes assets by output path.
type AssetMap map[string]*Asset

// Paths returns all asset paths in sorted order for deterministic iteration.
func (m AssetMap) Paths() []string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Add inserts an asset, keeping the first entry on duplicate paths.
func (m AssetMap) Add(a *Asset) {
	if _, ok := m[a.Path]; ok {
		return
	}
	m[a.Path] = a
}
