package graph

import (
	"sort"

	"sealant/internal/bundle"
)

type ChunkID uint32

type Index struct {
	NameToID map[string]ChunkID
	IDToName []string
}

// BuildIndex collects the unique chunk names (declared and referenced),
// sorts them, and assigns dense IDs in order.
func BuildIndex(chunks []bundle.Chunk) Index {
	uniq := make(map[string]struct{}, len(chunks))
	for i := range chunks {
		if chunks[i].Name != "" {
			uniq[chunks[i].Name] = struct{}{}
		}
		for _, child := range chunks[i].Children {
			if child == "" {
				continue
			}
			uniq[child] = struct{}{}
		}
	}

	names := make([]string, 0, len(uniq))
	for name := range uniq {
		names = append(names, name)
	}
	sort.Strings(names)

	nameToID := make(map[string]ChunkID, len(names))
	for i, name := range names {
		nameToID[name] = ChunkID(i)
	}

	return Index{
		NameToID: nameToID,
		IDToName: names,
	}
}
