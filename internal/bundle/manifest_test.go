package bundle

import (
	"reflect"
	"testing"
)

func TestDecodeManifest(t *testing.T) {
	data := []byte(`{
		"chunks": [
			{"name": "app", "files": ["app.js", "app.js.map"], "children": ["vendor"], "entry": true},
			{"name": "vendor", "files": ["vendor.js"]}
		],
		"assets": ["logo.svg"],
		"loader": "runtime.js",
		"pages": ["index.html"]
	}`)
	m, err := DecodeManifest(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(m.Chunks) != 2 || !m.Chunks[0].Entry {
		t.Fatalf("chunks decoded wrong: %+v", m.Chunks)
	}
	if m.Loader != "runtime.js" {
		t.Fatalf("loader = %q", m.Loader)
	}

	files := m.OutputFiles()
	want := []string{"app.js", "app.js.map", "vendor.js", "logo.svg", "runtime.js"}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("output files = %v, want %v", files, want)
	}
}

func TestDecodeManifestRejectsDuplicates(t *testing.T) {
	data := []byte(`{"chunks": [{"name": "a"}, {"name": "a"}]}`)
	if _, err := DecodeManifest(data); err == nil {
		t.Fatalf("duplicate chunk names must be rejected")
	}
}

func TestDecodeManifestRejectsUnnamedChunk(t *testing.T) {
	data := []byte(`{"chunks": [{"files": ["x.js"]}]}`)
	if _, err := DecodeManifest(data); err == nil {
		t.Fatalf("unnamed chunk must be rejected")
	}
}

func TestPrimaryFile(t *testing.T) {
	c := Chunk{Name: "a", Files: []string{"a.js", "a.js.map"}}
	primary, ok := c.PrimaryFile()
	if !ok || primary != "a.js" {
		t.Fatalf("primary = %q, %v", primary, ok)
	}
	empty := Chunk{Name: "b"}
	if _, ok := empty.PrimaryFile(); ok {
		t.Fatalf("chunk without files must report no primary")
	}
}

func TestAssetReplaceMarksDirty(t *testing.T) {
	a := NewAsset("x.js", []byte("one"))
	if a.Dirty() {
		t.Fatalf("fresh asset must be clean")
	}
	a.ReplaceText("two")
	if !a.Dirty() {
		t.Fatalf("replacement must mark the asset dirty")
	}
	if a.Text() != "two" {
		t.Fatalf("content = %q", a.Text())
	}
}

func TestAssetMapAddKeepsFirst(t *testing.T) {
	m := AssetMap{}
	m.Add(NewAsset("a.js", []byte("first")))
	m.Add(NewAsset("a.js", []byte("second")))
	if m["a.js"].Text() != "first" {
		t.Fatalf("duplicate add must keep the first asset")
	}
	m.Add(NewAsset("b.js", nil))
	if got := m.Paths(); !reflect.DeepEqual(got, []string{"a.js", "b.js"}) {
		t.Fatalf("paths = %v", got)
	}
}
