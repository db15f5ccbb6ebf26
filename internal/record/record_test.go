package record

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestWriteLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultName)

	rec := New(
		[]string{"sha256", "sha384"},
		map[string]string{"app": "sha256-AAAA sha384-BBBB"},
		map[string]string{"app.js": "sha256-AAAA sha384-BBBB", "logo.svg": "sha256-CCCC"},
	)
	if err := Write(path, rec); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, found, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !found {
		t.Fatalf("record must be found")
	}
	if !reflect.DeepEqual(got, rec) {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, rec)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, found, err := Load(filepath.Join(t.TempDir(), "absent.rec"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if found {
		t.Fatalf("missing file must report found=false")
	}
}

func TestLoadRejectsSchemaMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultName)

	stale := &Record{Schema: schemaVersion + 1, Algorithms: []string{"sha256"}}
	data, err := msgpack.Marshal(stale)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, _, err := Load(path); err == nil {
		t.Fatalf("schema mismatch must be an error")
	}
}

func TestWriteIsAtomicReplacement(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultName)

	first := New([]string{"sha256"}, map[string]string{"a": "sha256-1"}, nil)
	if err := Write(path, first); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	second := New([]string{"sha256"}, map[string]string{"a": "sha256-2"}, nil)
	if err := Write(path, second); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	got, _, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Chunks["a"] != "sha256-2" {
		t.Fatalf("replacement not visible: %+v", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files must not survive, dir has %d entries", len(entries))
	}
}
