package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"sealant/internal/diag"
	"sealant/internal/record"
	"sealant/internal/resolve"
)

// VerifyResult reports how the current output tree compares against a
// previously written integrity record.
type VerifyResult struct {
	RecordPath string
	Checked    int
	Drifted    []string
	Missing    []string
	Warnings   *diag.Bag
}

// Ok reports whether every recorded asset is present and byte-identical.
func (r VerifyResult) Ok() bool {
	return len(r.Drifted) == 0 && len(r.Missing) == 0
}

// Verify recomputes digests for every asset in the record and compares.
// Drift and missing files are warnings, not errors: the caller decides
// whether a stale tree is fatal.
func Verify(ctx context.Context, outputDir, recordPath string, maxDiagnostics int) (VerifyResult, error) {
	if outputDir == "" {
		outputDir = "."
	}
	if recordPath == "" {
		recordPath = filepath.Join(outputDir, record.DefaultName)
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}

	result := VerifyResult{
		RecordPath: recordPath,
		Warnings:   diag.NewBag(maxDiagnostics),
	}
	reporter := diag.BagReporter{Bag: result.Warnings}

	rec, found, err := record.Load(recordPath)
	if err != nil {
		return result, err
	}
	if !found {
		return result, fmt.Errorf("no integrity record at %q, run seal first", recordPath)
	}

	paths := make([]string, 0, len(rec.Assets))
	for path := range rec.Assets {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		want := rec.Assets[path]
		// #nosec G304 -- paths come from the record the user asked to verify
		data, err := os.ReadFile(filepath.Join(outputDir, filepath.FromSlash(path)))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				result.Missing = append(result.Missing, path)
				diag.Warn(reporter, diag.RecordUnknownAsset, path,
					fmt.Sprintf("recorded asset %q is missing from the output tree", path))
				continue
			}
			return result, fmt.Errorf("failed to read %q: %w", path, err)
		}
		result.Checked++
		if got := resolve.Digest(rec.Algorithms, data); got != want {
			result.Drifted = append(result.Drifted, path)
			diag.Warn(reporter, diag.RecordDigestDrift, path,
				fmt.Sprintf("asset %q no longer matches its sealed digest", path))
		}
	}

	result.Warnings.Sort()
	return result, nil
}
