// Package pipeline orchestrates a sealing run over a bundle: load the
// manifest and assets, instrument loader code with placeholders, resolve
// integrity over the chunk graph, sweep stragglers, inject markup, and
// write everything back. Phases run strictly in order; each signals
// completion through a single-shot callback.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sealant/internal/bundle"
	"sealant/internal/diag"
	"sealant/internal/graph"
	"sealant/internal/instrument"
	"sealant/internal/markup"
	"sealant/internal/observ"
	"sealant/internal/record"
	"sealant/internal/resolve"
)

// SealRequest configures one sealing run.
type SealRequest struct {
	ManifestPath   string
	OutputDir      string
	Algorithms     []string
	PublicPath     string
	RecordPath     string
	NoRecord       bool
	DryRun         bool
	MaxDiagnostics int
	Progress       ProgressSink
}

// SealResult captures the outcome of a sealing run.
type SealResult struct {
	Manifest     *bundle.Manifest
	Assets       bundle.AssetMap
	Integrity    map[string]string
	Swept        []string
	InjectedTags int
	Warnings     *diag.Bag
	Timings      Timings
	TimingReport observ.Report
	RecordPath   string
}

// Seal runs the full pipeline. Configuration errors (bad algorithm list)
// surface before any phase executes; per-asset and per-tag problems are
// collected as warnings and never abort the run.
func Seal(ctx context.Context, req *SealRequest) (SealResult, error) {
	var result SealResult
	if req == nil {
		return result, fmt.Errorf("missing seal request")
	}
	reqCopy := *req
	req = &reqCopy

	if req.OutputDir == "" {
		req.OutputDir = "."
	}
	if req.MaxDiagnostics <= 0 {
		req.MaxDiagnostics = 100
	}

	algorithms, err := resolve.ParseAlgorithms(req.Algorithms)
	if err != nil {
		return result, fmt.Errorf("configuration: %w", err)
	}

	bag := diag.NewBag(req.MaxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	result.Warnings = bag

	timer := observ.NewTimer()

	manifest, err := bundle.LoadManifest(req.ManifestPath)
	if err != nil {
		return result, err
	}
	result.Manifest = manifest
	g := graph.Build(manifest.Chunks, reporter)

	// load
	loadStart := time.Now()
	emit(req.Progress, "", StageLoad, StatusWorking, nil, 0)
	loadIdx := timer.Begin(string(StageLoad))
	var assets bundle.AssetMap
	err = runPhase(ctx, StageLoad, func(done func(error)) {
		var loadErr error
		assets, loadErr = loadAssets(ctx, req.OutputDir, manifest.OutputFiles(), req.Progress)
		done(loadErr)
	})
	timer.End(loadIdx, fmt.Sprintf("%d files", len(assets)))
	if err != nil {
		emit(req.Progress, "", StageLoad, StatusError, err, 0)
		return result, err
	}
	result.Assets = assets
	result.Timings.Set(StageLoad, time.Since(loadStart))
	emit(req.Progress, "", StageLoad, StatusDone, nil, result.Timings.Duration(StageLoad))

	// instrument
	instStart := time.Now()
	emit(req.Progress, "", StageInstrument, StatusWorking, nil, 0)
	instIdx := timer.Begin(string(StageInstrument))
	err = runPhase(ctx, StageInstrument, func(done func(error)) {
		instrument.New(g).Apply(assets, manifest.Loader, reporter)
		done(nil)
	})
	timer.End(instIdx, "")
	if err != nil {
		return result, err
	}
	result.Timings.Set(StageInstrument, time.Since(instStart))
	emit(req.Progress, "", StageInstrument, StatusDone, nil, result.Timings.Duration(StageInstrument))

	// resolve
	resolveStart := time.Now()
	emit(req.Progress, "", StageResolve, StatusWorking, nil, 0)
	resolveIdx := timer.Begin(string(StageResolve))
	var integrity map[string]string
	err = runPhase(ctx, StageResolve, func(done func(error)) {
		resolver, newErr := resolve.New(g, assets, algorithms, reporter)
		if newErr != nil {
			done(newErr)
			return
		}
		integrity, newErr = resolver.Run()
		done(newErr)
	})
	timer.End(resolveIdx, fmt.Sprintf("%d chunks", len(integrity)))
	if err != nil {
		emit(req.Progress, "", StageResolve, StatusError, err, 0)
		return result, err
	}
	result.Integrity = integrity
	result.Timings.Set(StageResolve, time.Since(resolveStart))
	emit(req.Progress, "", StageResolve, StatusDone, nil, result.Timings.Duration(StageResolve))

	// sweep
	sweepStart := time.Now()
	sweepIdx := timer.Begin(string(StageSweep))
	err = runPhase(ctx, StageSweep, func(done func(error)) {
		result.Swept = resolve.Sweep(assets, algorithms)
		done(nil)
	})
	timer.End(sweepIdx, fmt.Sprintf("%d assets", len(result.Swept)))
	if err != nil {
		return result, err
	}
	result.Timings.Set(StageSweep, time.Since(sweepStart))
	emit(req.Progress, "", StageSweep, StatusDone, nil, result.Timings.Duration(StageSweep))

	// markup
	markupStart := time.Now()
	markupIdx := timer.Begin(string(StageMarkup))
	pages := make(map[string][]byte, len(manifest.Pages))
	err = runPhase(ctx, StageMarkup, func(done func(error)) {
		injector := markup.NewInjector(assets, req.PublicPath, reporter)
		for _, page := range manifest.Pages {
			emit(req.Progress, page, StageMarkup, StatusWorking, nil, 0)
			// #nosec G304 -- page paths come from the user's own manifest
			content, readErr := os.ReadFile(filepath.Join(req.OutputDir, filepath.FromSlash(page)))
			if readErr != nil {
				emit(req.Progress, page, StageMarkup, StatusError, readErr, 0)
				done(fmt.Errorf("failed to read page %q: %w", page, readErr))
				return
			}
			rewritten, count, injErr := injector.InjectFile(content)
			if injErr != nil {
				emit(req.Progress, page, StageMarkup, StatusError, injErr, 0)
				done(fmt.Errorf("page %q: %w", page, injErr))
				return
			}
			pages[page] = rewritten
			result.InjectedTags += count
			emit(req.Progress, page, StageMarkup, StatusDone, nil, 0)
		}
		done(nil)
	})
	timer.End(markupIdx, fmt.Sprintf("%d tags", result.InjectedTags))
	if err != nil {
		return result, err
	}
	result.Timings.Set(StageMarkup, time.Since(markupStart))
	emit(req.Progress, "", StageMarkup, StatusDone, nil, result.Timings.Duration(StageMarkup))

	// write
	if !req.DryRun {
		writeStart := time.Now()
		writeIdx := timer.Begin(string(StageWrite))
		err = runPhase(ctx, StageWrite, func(done func(error)) {
			if writeErr := writeAssets(req.OutputDir, assets, req.Progress); writeErr != nil {
				done(writeErr)
				return
			}
			for _, page := range manifest.Pages {
				target := filepath.Join(req.OutputDir, filepath.FromSlash(page))
				if writeErr := os.WriteFile(target, pages[page], 0o600); writeErr != nil {
					done(fmt.Errorf("failed to write page %q: %w", page, writeErr))
					return
				}
			}
			if !req.NoRecord {
				recPath := req.RecordPath
				if recPath == "" {
					recPath = filepath.Join(req.OutputDir, record.DefaultName)
				}
				rec := record.New(algorithms, integrity, assetDigests(assets))
				if writeErr := record.Write(recPath, rec); writeErr != nil {
					done(fmt.Errorf("failed to write integrity record: %w", writeErr))
					return
				}
				result.RecordPath = recPath
			}
			done(nil)
		})
		timer.End(writeIdx, "")
		if err != nil {
			emit(req.Progress, "", StageWrite, StatusError, err, 0)
			return result, err
		}
		result.Timings.Set(StageWrite, time.Since(writeStart))
		emit(req.Progress, "", StageWrite, StatusDone, nil, result.Timings.Duration(StageWrite))
	}

	bag.Sort()
	bag.Dedup()
	result.TimingReport = timer.Report()
	return result, nil
}

func assetDigests(assets bundle.AssetMap) map[string]string {
	out := make(map[string]string, len(assets))
	for _, path := range assets.Paths() {
		if integrity := assets[path].Integrity; integrity != "" {
			out[path] = integrity
		}
	}
	return out
}
