package graph

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"sealant/internal/bundle"
	"sealant/internal/diag"
)

// Graph is the chunk dependency graph in dense-ID form.
type Graph struct {
	Index   Index
	Edges   [][]ChunkID // Edges[from] = []to
	Present []bool      // chunk actually declared, not only referenced
	Chunks  []*bundle.Chunk
	Entries []ChunkID
}

// Build indexes the chunks and wires edges. Self references and references
// to undeclared chunks are reported as warnings and skipped or kept edgeless
// respectively; the graph stays usable either way.
func Build(chunks []bundle.Chunk, reporter diag.Reporter) *Graph {
	idx := BuildIndex(chunks)
	nodeCount := len(idx.IDToName)
	g := &Graph{
		Index:   idx,
		Edges:   make([][]ChunkID, nodeCount),
		Present: make([]bool, nodeCount),
		Chunks:  make([]*bundle.Chunk, nodeCount),
	}

	for i := range chunks {
		chunk := &chunks[i]
		if chunk.Name == "" {
			continue
		}
		id, ok := idx.NameToID[chunk.Name]
		if !ok {
			// index is built from the same metadata, should not happen
			continue
		}
		g.Present[int(id)] = true
		g.Chunks[int(id)] = chunk
		if chunk.Entry {
			g.Entries = append(g.Entries, id)
		}
	}

	for i := range chunks {
		chunk := &chunks[i]
		from, ok := idx.NameToID[chunk.Name]
		if !ok || len(chunk.Children) == 0 {
			continue
		}
		seen := make(map[ChunkID]struct{}, len(chunk.Children))
		for _, child := range chunk.Children {
			if child == "" {
				continue
			}
			to, ok := idx.NameToID[child]
			if !ok {
				continue
			}
			if to == from {
				diag.Warn(reporter, diag.GraphSelfReference, chunk.Name,
					fmt.Sprintf("chunk %q lists itself as a child", chunk.Name))
				continue
			}
			if _, dup := seen[to]; dup {
				continue
			}
			seen[to] = struct{}{}
			if !g.Present[int(to)] {
				diag.Warn(reporter, diag.GraphUnknownChild, chunk.Name,
					fmt.Sprintf("chunk %q references undeclared chunk %q", chunk.Name, child))
			}
			g.Edges[int(from)] = append(g.Edges[int(from)], to)
		}
		if len(g.Edges[int(from)]) > 1 {
			slices.Sort(g.Edges[int(from)])
		}
	}

	slices.Sort(g.Entries)
	return g
}

// ID resolves a chunk name, converting through safecast-checked dense ids.
func (g *Graph) ID(name string) (ChunkID, bool) {
	id, ok := g.Index.NameToID[name]
	return id, ok
}

// Name returns the chunk name for a dense id.
func (g *Graph) Name(id ChunkID) string {
	i, err := safecast.Conv[int](uint32(id))
	if err != nil || i >= len(g.Index.IDToName) {
		return ""
	}
	return g.Index.IDToName[i]
}

// Chunk returns the declared chunk for id, or nil if only referenced.
func (g *Graph) Chunk(id ChunkID) *bundle.Chunk {
	if int(id) >= len(g.Chunks) {
		return nil
	}
	return g.Chunks[int(id)]
}
