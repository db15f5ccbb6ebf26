package bundle

import (
	"encoding/json"
	"fmt"
	"os"
)

// Manifest describes a bundle as emitted by the bundler: the chunk graph,
// loose assets outside the graph, and optional loader/markup entry points.
// The format interops with JS bundler stats output, hence JSON.
type Manifest struct {
	// Chunks is the full chunk graph.
	Chunks []Chunk `json:"chunks"`
	// Assets lists output files not owned by any chunk (static copies).
	Assets []string `json:"assets,omitempty"`
	// Loader names the asset holding the runtime chunk-fetch template.
	Loader string `json:"loader,omitempty"`
	// Pages lists HTML outputs that reference sealed assets.
	Pages []string `json:"pages,omitempty"`
}

// LoadManifest reads and decodes a bundle manifest file.
func LoadManifest(path string) (*Manifest, error) {
	// #nosec G304 -- path comes from the user's own manifest flag
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle manifest: %w", err)
	}
	return DecodeManifest(data)
}

// DecodeManifest decodes manifest bytes and checks structural invariants:
// every chunk has a name, names are unique.
func DecodeManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse bundle manifest: %w", err)
	}
	seen := make(map[string]struct{}, len(m.Chunks))
	for i := range m.Chunks {
		name := m.Chunks[i].Name
		if name == "" {
			return nil, fmt.Errorf("bundle manifest: chunk %d has no name", i)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("bundle manifest: duplicate chunk %q", name)
		}
		seen[name] = struct{}{}
	}
	return &m, nil
}

// OutputFiles returns every file the manifest mentions, chunk files first,
// then loose assets, de-duplicated in first-mention order.
func (m *Manifest) OutputFiles() []string {
	seen := make(map[string]struct{})
	files := make([]string, 0, len(m.Chunks)+len(m.Assets))
	add := func(f string) {
		if f == "" {
			return
		}
		if _, ok := seen[f]; ok {
			return
		}
		seen[f] = struct{}{}
		files = append(files, f)
	}
	for i := range m.Chunks {
		for _, f := range m.Chunks[i].Files {
			add(f)
		}
	}
	for _, f := range m.Assets {
		add(f)
	}
	add(m.Loader)
	return files
}
