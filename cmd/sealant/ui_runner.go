package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sealant/internal/bundle"
	"sealant/internal/pipeline"
	"sealant/internal/ui"
)

type sealOutcome struct {
	result pipeline.SealResult
	err    error
}

func runSealWithUI(ctx context.Context, title string, req *pipeline.SealRequest) (pipeline.SealResult, error) {
	if req == nil {
		return pipeline.SealResult{}, fmt.Errorf("missing seal request")
	}

	// The model needs the file list up front, before the pipeline's own
	// load phase reads the manifest.
	manifest, err := bundle.LoadManifest(req.ManifestPath)
	if err != nil {
		return pipeline.SealResult{}, err
	}
	files := manifest.OutputFiles()

	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan sealOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := pipeline.Seal(ctx, &reqCopy)
		outcomeCh <- sealOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
