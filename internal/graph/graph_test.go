package graph

import (
	"reflect"
	"testing"

	"sealant/internal/bundle"
	"sealant/internal/diag"
)

func names(g *Graph, ids []ChunkID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = g.Name(id)
	}
	return out
}

func TestBuildIndexIncludesChildren(t *testing.T) {
	chunks := []bundle.Chunk{
		{Name: "main", Children: []string{"vendor", "shared"}},
		{Name: "shared"},
	}

	idx := BuildIndex(chunks)

	if len(idx.IDToName) != 3 {
		t.Fatalf("unexpected chunk count: %d", len(idx.IDToName))
	}

	wantNames := []string{"main", "shared", "vendor"}
	for i, want := range wantNames {
		if got := idx.IDToName[i]; got != want {
			t.Fatalf("idx.IDToName[%d] = %q, want %q", i, got, want)
		}
		if id, ok := idx.NameToID[want]; !ok || int(id) != i {
			t.Fatalf("idx.NameToID[%q] = %v, want %d", want, id, i)
		}
	}
}

func TestBuildWarnsOnSelfReference(t *testing.T) {
	chunks := []bundle.Chunk{
		{Name: "app", Children: []string{"app", "lib"}},
		{Name: "lib"},
	}
	bag := diag.NewBag(10)
	g := Build(chunks, diag.BagReporter{Bag: bag})

	appID, ok := g.ID("app")
	if !ok {
		t.Fatalf("app not indexed")
	}
	if got := names(g, g.Edges[int(appID)]); !reflect.DeepEqual(got, []string{"lib"}) {
		t.Fatalf("self edge not dropped: %v", got)
	}
	if !bag.HasWarnings() {
		t.Fatalf("expected a self-reference warning")
	}
	if bag.Items()[0].Code != diag.GraphSelfReference {
		t.Fatalf("unexpected code: %v", bag.Items()[0].Code)
	}
}

func TestBuildWarnsOnUndeclaredChild(t *testing.T) {
	chunks := []bundle.Chunk{
		{Name: "app", Children: []string{"ghost"}, Entry: true},
	}
	bag := diag.NewBag(10)
	g := Build(chunks, diag.BagReporter{Bag: bag})

	if !bag.HasWarnings() {
		t.Fatalf("expected a warning for undeclared child")
	}
	ghostID, ok := g.ID("ghost")
	if !ok {
		t.Fatalf("referenced chunk must still be indexed")
	}
	if g.Present[int(ghostID)] {
		t.Fatalf("ghost must not be marked present")
	}
	if g.Chunk(ghostID) != nil {
		t.Fatalf("ghost must have no chunk metadata")
	}
}

func TestDependenciesLinear(t *testing.T) {
	chunks := []bundle.Chunk{
		{Name: "a", Children: []string{"b"}, Entry: true},
		{Name: "b", Children: []string{"c"}},
		{Name: "c"},
	}
	g := Build(chunks, diag.NopReporter{})

	aID, _ := g.ID("a")
	got := names(g, g.Dependencies(aID))
	want := []string{"b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("dependencies = %v, want %v", got, want)
	}
}

func TestDependenciesDiamondDeduplicates(t *testing.T) {
	chunks := []bundle.Chunk{
		{Name: "a", Children: []string{"b", "c"}, Entry: true},
		{Name: "b", Children: []string{"d"}},
		{Name: "c", Children: []string{"d"}},
		{Name: "d"},
	}
	g := Build(chunks, diag.NopReporter{})

	aID, _ := g.ID("a")
	got := names(g, g.Dependencies(aID))
	want := []string{"b", "d", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("dependencies = %v, want %v", got, want)
	}
}

func TestDependenciesCycleTerminates(t *testing.T) {
	chunks := []bundle.Chunk{
		{Name: "a", Children: []string{"b"}, Entry: true},
		{Name: "b", Children: []string{"a"}},
	}
	g := Build(chunks, diag.NopReporter{})

	aID, _ := g.ID("a")
	got := names(g, g.Dependencies(aID))
	want := []string{"b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("dependencies = %v, want %v", got, want)
	}

	bID, _ := g.ID("b")
	gotB := names(g, g.Dependencies(bID))
	wantB := []string{"a"}
	if !reflect.DeepEqual(gotB, wantB) {
		t.Fatalf("dependencies of b = %v, want %v", gotB, wantB)
	}
}

func TestDependenciesDeterministic(t *testing.T) {
	chunks := []bundle.Chunk{
		{Name: "root", Children: []string{"z", "m", "a"}, Entry: true},
		{Name: "z"}, {Name: "m"}, {Name: "a"},
	}
	g := Build(chunks, diag.NopReporter{})
	rootID, _ := g.ID("root")

	first := names(g, g.Dependencies(rootID))
	for range 10 {
		if got := names(g, g.Dependencies(rootID)); !reflect.DeepEqual(got, first) {
			t.Fatalf("order not stable: %v vs %v", got, first)
		}
	}
	// edges are sorted by dense id, which follows sorted names
	want := []string{"a", "m", "z"}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("dependencies = %v, want %v", first, want)
	}
}

func TestEntriesSorted(t *testing.T) {
	chunks := []bundle.Chunk{
		{Name: "zeta", Entry: true},
		{Name: "alpha", Entry: true},
		{Name: "mid"},
	}
	g := Build(chunks, diag.NopReporter{})
	got := names(g, g.Entries)
	want := []string{"alpha", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
}
