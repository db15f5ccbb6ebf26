// Package record persists the outcome of a sealing run: the chunk digest
// map and per-asset digests, msgpack-encoded with a schema version so stale
// records invalidate safely. `sealant verify` diffs a later tree against it.
package record

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Record format changes
const schemaVersion uint16 = 1

// DefaultName is the record file written into the output directory.
const DefaultName = "sealant.rec"

// Record is the persisted result of one sealing run.
type Record struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	// Algorithms in configuration order; part of the digest contract.
	Algorithms []string

	// Chunks maps chunk name to its final digest string.
	Chunks map[string]string

	// Assets maps output path to its final digest string.
	Assets map[string]string
}

// New builds a record at the current schema version.
func New(algorithms []string, chunks, assets map[string]string) *Record {
	return &Record{
		Schema:     schemaVersion,
		Algorithms: algorithms,
		Chunks:     chunks,
		Assets:     assets,
	}
}

// Write serializes the record atomically: encode into a temp file in the
// same directory, then rename over the target.
func Write(path string, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("nil record")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(rec); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// Load reads a record. Returns found=false when the file does not exist.
// A schema mismatch is an error: the caller should reseal rather than trust
// a record it cannot interpret.
func Load(path string) (*Record, bool, error) {
	// #nosec G304 -- path is derived from the output directory configuration
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() {
		_ = f.Close()
	}()

	var rec Record
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&rec); err != nil {
		return nil, false, fmt.Errorf("failed to decode record %q: %w", path, err)
	}
	if rec.Schema != schemaVersion {
		return nil, false, fmt.Errorf("record %q has schema %d, want %d", path, rec.Schema, schemaVersion)
	}
	return &rec, true, nil
}
