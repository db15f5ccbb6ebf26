package testkit

import (
	"fmt"
	"strings"

	"sealant/internal/bundle"
	"sealant/internal/graph"
	"sealant/internal/placeholder"
	"sealant/internal/resolve"
)

// Chunk builds a chunk value for tests.
func Chunk(name string, files, children []string, entry bool) bundle.Chunk {
	return bundle.Chunk{Name: name, Files: files, Children: children, Entry: entry}
}

// Assets builds an asset map from path→content pairs.
func Assets(contents map[string]string) bundle.AssetMap {
	m := make(bundle.AssetMap, len(contents))
	for path, content := range contents {
		m.Add(bundle.NewAsset(path, []byte(content)))
	}
	return m
}

// CheckResolutionInvariants runs the core post-resolution invariants:
// 1) every entry-reachable chunk with output files has a digest
// 2) each digest reproduces from the asset's final content
// 3) no resolved dependency's placeholder token survives in any parent
func CheckResolutionInvariants(g *graph.Graph, assets bundle.AssetMap, integrity map[string]string, algorithms []string) error {
	for _, entry := range g.Entries {
		ids := append([]graph.ChunkID{entry}, g.Dependencies(entry)...)
		for _, id := range ids {
			chunk := g.Chunk(id)
			if chunk == nil {
				continue
			}
			primary, ok := chunk.PrimaryFile()
			if !ok {
				continue
			}
			asset, ok := assets[primary]
			if !ok {
				continue
			}

			// 1) digest exists
			digest, ok := integrity[chunk.Name]
			if !ok {
				return fmt.Errorf("chunk %q reachable from entry %q has no digest", chunk.Name, g.Name(entry))
			}

			// 2) digest matches final bytes
			if got := resolve.Digest(algorithms, asset.Bytes()); got != digest {
				return fmt.Errorf("chunk %q digest does not reproduce from final content: got %q want %q", chunk.Name, got, digest)
			}

			// 3) no leftover tokens for resolved deps
			for _, dep := range g.DependencyNames(id) {
				if _, resolved := integrity[dep]; !resolved {
					continue
				}
				if strings.Contains(asset.Text(), placeholder.Token(dep)) {
					return fmt.Errorf("chunk %q still contains placeholder for resolved dependency %q", chunk.Name, dep)
				}
			}
		}
	}
	return nil
}
