package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"sealant/internal/bundle"
)

// loadAssets reads every manifest-declared output file from dir into an
// asset map, in parallel. Only the load is concurrent; everything the
// resolution phases touch afterwards is single-threaded by design.
func loadAssets(ctx context.Context, dir string, files []string, progress ProgressSink) (bundle.AssetMap, error) {
	assets := make(bundle.AssetMap, len(files))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			emit(progress, file, StageLoad, StatusWorking, nil, 0)
			// #nosec G304 -- paths come from the user's own bundle manifest
			data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(file)))
			if err != nil {
				err = fmt.Errorf("failed to read output file %q: %w", file, err)
				emit(progress, file, StageLoad, StatusError, err, 0)
				return err
			}
			mu.Lock()
			assets.Add(bundle.NewAsset(file, data))
			mu.Unlock()
			emit(progress, file, StageLoad, StatusDone, nil, time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return assets, nil
}

// writeAssets persists every dirty asset back under dir.
func writeAssets(dir string, assets bundle.AssetMap, progress ProgressSink) error {
	for _, path := range assets.Paths() {
		asset := assets[path]
		if !asset.Dirty() {
			continue
		}
		start := time.Now()
		emit(progress, path, StageWrite, StatusWorking, nil, 0)
		target := filepath.Join(dir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			emit(progress, path, StageWrite, StatusError, err, 0)
			return fmt.Errorf("failed to create output dir for %q: %w", path, err)
		}
		if err := os.WriteFile(target, asset.Bytes(), 0o600); err != nil {
			emit(progress, path, StageWrite, StatusError, err, 0)
			return fmt.Errorf("failed to write output file %q: %w", path, err)
		}
		emit(progress, path, StageWrite, StatusDone, nil, time.Since(start))
	}
	return nil
}
