// Package instrument injects integrity plumbing into generated loader code
// at code-generation time, before any digest can exist. It writes
// placeholder tokens only; real digests arrive later via resolution.
package instrument

import (
	"fmt"
	"strconv"
	"strings"

	"sealant/internal/bundle"
	"sealant/internal/diag"
	"sealant/internal/graph"
	"sealant/internal/placeholder"
)

// HashesVar is the name of the per-chunk mapping the loader consults for
// expected digests.
const HashesVar = "__sealantHashes__"

// Instrumenter emits the two injection points: a per-chunk preamble mapping
// every transitively reachable dependency to its placeholder token, and a
// one-time patch for the generic chunk-fetch template.
type Instrumenter struct {
	graph *graph.Graph
}

func New(g *graph.Graph) *Instrumenter {
	return &Instrumenter{graph: g}
}

// Preamble returns the declaration to prepend to a chunk's primary output.
// Returns false when the chunk has no dependencies and needs no mapping.
// The mapping covers the full transitive set so the loader can look up any
// chunk it may end up fetching, not just direct children.
func (in *Instrumenter) Preamble(id graph.ChunkID) (string, bool) {
	deps := in.graph.DependencyNames(id)
	if len(deps) == 0 {
		return "", false
	}
	var b strings.Builder
	b.WriteString("var ")
	b.WriteString(HashesVar)
	b.WriteString(" = {")
	for i, dep := range deps {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(dep))
		b.WriteString(": ")
		b.WriteString(strconv.Quote(placeholder.Token(dep)))
	}
	b.WriteString("};\n")
	return b.String(), true
}

// LoadPatch returns the fragment appended to the loader's chunk-fetch
// template: attach the expected digest and the cross-origin policy to the
// element before the fetch starts.
func (in *Instrumenter) LoadPatch() string {
	return "script.integrity = " + HashesVar + "[chunkId];\n" +
		"script.crossOrigin = \"anonymous\";\n"
}

// Apply runs both injection points against the asset map: preambles are
// prepended to each dependent chunk's primary file, and the fetch patch is
// appended once to the loader template asset when one is declared. Missing
// assets are reported and skipped; instrumentation never aborts the build.
func (in *Instrumenter) Apply(assets bundle.AssetMap, loaderPath string, reporter diag.Reporter) {
	for id := range in.graph.Chunks {
		chunk := in.graph.Chunks[id]
		if chunk == nil {
			continue
		}
		preamble, ok := in.Preamble(graph.ChunkID(id))
		if !ok {
			continue
		}
		primary, ok := chunk.PrimaryFile()
		if !ok {
			continue
		}
		asset, ok := assets[primary]
		if !ok {
			diag.Warn(reporter, diag.GraphMissingAsset, chunk.Name,
				fmt.Sprintf("cannot instrument chunk %q: output file %q not in asset map", chunk.Name, primary))
			continue
		}
		asset.ReplaceText(preamble + asset.Text())
	}

	if loaderPath == "" {
		return
	}
	loader, ok := assets[loaderPath]
	if !ok {
		diag.Warn(reporter, diag.GraphMissingAsset, loaderPath,
			fmt.Sprintf("loader template %q not in asset map, fetch patch skipped", loaderPath))
		return
	}
	text := loader.Text()
	if !strings.HasSuffix(text, "\n") && text != "" {
		text += "\n"
	}
	loader.ReplaceText(text + in.LoadPatch())
}
