// Package resolve implements the two-phase integrity resolution over the
// chunk graph: a post-order, memoized traversal that resolves child digests
// first, splices them over placeholder tokens in the parent's primary output
// file, and hashes the final spliced bytes. Every chunk is hashed exactly
// once regardless of graph shape, including diamonds and cycles.
package resolve

import (
	"fmt"

	"sealant/internal/bundle"
	"sealant/internal/diag"
	"sealant/internal/graph"
	"sealant/internal/placeholder"
)

// Resolver owns one resolution run. The visited set and integrity map are
// scoped to the run and never shared; construct a fresh Resolver per build.
type Resolver struct {
	graph      *graph.Graph
	assets     bundle.AssetMap
	algorithms []string
	reporter   diag.Reporter

	visited   map[graph.ChunkID]struct{}
	integrity map[string]string
	ran       bool
}

// New validates the algorithm list and builds a resolver. Algorithm
// validation failures are fatal configuration errors, surfaced before any
// phase runs.
func New(g *graph.Graph, assets bundle.AssetMap, algorithms []string, reporter diag.Reporter) (*Resolver, error) {
	algos, err := validateAlgorithms(algorithms)
	if err != nil {
		return nil, err
	}
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Resolver{
		graph:      g,
		assets:     assets,
		algorithms: algos,
		reporter:   reporter,
		visited:    make(map[graph.ChunkID]struct{}),
		integrity:  make(map[string]string),
	}, nil
}

// Run resolves every entry chunk and returns the authoritative
// chunk-name→digest map. Entries are processed in sorted id order; work
// shared between entries is performed once. Run may be called once per
// Resolver.
func (r *Resolver) Run() (map[string]string, error) {
	if r.ran {
		return nil, fmt.Errorf("resolver already ran; construct a new one per build")
	}
	r.ran = true
	for _, entry := range r.graph.Entries {
		r.resolve(entry)
	}
	return r.integrity, nil
}

// IntegrityMap returns the digests resolved so far, keyed by chunk name.
func (r *Resolver) IntegrityMap() map[string]string {
	return r.integrity
}

// resolve visits id post-order: children first, then substitution and
// hashing for id itself. The visited set makes revisits a no-op, so a chunk
// shared by several parents is hashed exactly once, and a cycle back to an
// in-progress ancestor simply contributes no substitution yet.
func (r *Resolver) resolve(id graph.ChunkID) {
	if _, done := r.visited[id]; done {
		return
	}
	r.visited[id] = struct{}{}

	for _, child := range r.graph.Edges[int(id)] {
		r.resolve(child)
	}

	chunk := r.graph.Chunk(id)
	if chunk == nil {
		// referenced but never declared; graph.Build already warned
		return
	}

	name := chunk.Name
	primary, ok := chunk.PrimaryFile()
	if !ok {
		diag.Warn(r.reporter, diag.ResolveChunkWithoutFiles, name,
			fmt.Sprintf("chunk %q declares no output files, nothing to seal", name))
		return
	}

	asset, ok := r.assets[primary]
	if !ok {
		diag.Warn(r.reporter, diag.GraphMissingAsset, name,
			fmt.Sprintf("output file %q of chunk %q is not in the asset map", primary, name))
		return
	}

	// Substitute over the same transitive dependency set the instrumenter
	// emitted tokens for. Dependencies resolved above already carry
	// digests; an in-progress cycle ancestor has none yet and is skipped.
	content := asset.Text()
	for _, depName := range r.graph.DependencyNames(id) {
		digest, ok := r.integrity[depName]
		if !ok {
			continue
		}
		// absent token is a tolerated no-op: the reference may have been
		// dropped by the optimizer or never emitted for this parent
		content, _ = placeholder.Replace(content, depName, digest)
	}
	asset.ReplaceText(content)

	digest := Digest(r.algorithms, asset.Bytes())
	r.integrity[name] = digest
	if asset.Integrity == "" {
		asset.Integrity = digest
	}
}
