package graph

// Dependencies returns every chunk id transitively reachable from id's
// children, de-duplicated, in first-visit order over sorted edges. Cycles
// are handled by the seen set: revisiting an id is a no-op, and the starting
// chunk never lists itself.
func (g *Graph) Dependencies(id ChunkID) []ChunkID {
	seen := map[ChunkID]struct{}{id: {}}
	var out []ChunkID
	g.collect(id, seen, &out)
	return out
}

func (g *Graph) collect(id ChunkID, seen map[ChunkID]struct{}, out *[]ChunkID) {
	if int(id) >= len(g.Edges) {
		return
	}
	for _, child := range g.Edges[int(id)] {
		if _, ok := seen[child]; ok {
			continue
		}
		seen[child] = struct{}{}
		*out = append(*out, child)
		g.collect(child, seen, out)
	}
}

// DependencyNames is Dependencies mapped back to chunk names.
func (g *Graph) DependencyNames(id ChunkID) []string {
	ids := g.Dependencies(id)
	names := make([]string, len(ids))
	for i, depID := range ids {
		names[i] = g.Name(depID)
	}
	return names
}
