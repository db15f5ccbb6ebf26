package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"sealant/internal/diag"
	"sealant/internal/pipeline"
)

var (
	warnColor  = color.New(color.FgYellow, color.Bold)
	errColor   = color.New(color.FgRed, color.Bold)
	doneColor  = color.New(color.FgGreen)
	stageColor = color.New(color.FgCyan)
)

func applyColorMode(mode string) {
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	}
	// auto: leave fatih/color's terminal detection alone
}

// textSink prints stage completion lines when the TUI is off.
type textSink struct {
	out io.Writer
}

func (s textSink) OnEvent(ev pipeline.Event) {
	if s.out == nil || ev.File != "" {
		return
	}
	switch ev.Status {
	case pipeline.StatusDone:
		fmt.Fprintf(s.out, "%s %s (%.1f ms)\n", doneColor.Sprint("done"), stageColor.Sprint(string(ev.Stage)), toMillis(ev.Elapsed))
	case pipeline.StatusError:
		fmt.Fprintf(s.out, "%s %s: %v\n", errColor.Sprint("fail"), string(ev.Stage), ev.Err)
	}
}

func printWarnings(out io.Writer, bag *diag.Bag) {
	if out == nil || bag == nil {
		return
	}
	for _, d := range bag.Items() {
		label := warnColor.Sprint("warning")
		if d.Severity >= diag.SevError {
			label = errColor.Sprint("error")
		}
		if d.Ref != "" {
			fmt.Fprintf(out, "%s[%s] %s: %s\n", label, d.Code, d.Ref, d.Message)
		} else {
			fmt.Fprintf(out, "%s[%s] %s\n", label, d.Code, d.Message)
		}
		for _, note := range d.Notes {
			fmt.Fprintf(out, "  note: %s\n", note.Msg)
		}
	}
}

func printSealSummary(out io.Writer, result pipeline.SealResult, dryRun bool) {
	fmt.Fprintf(out, "sealed %d chunks, swept %d assets, injected %d tags\n",
		len(result.Integrity), len(result.Swept), result.InjectedTags)
	if dryRun {
		fmt.Fprintln(out, "dry run: nothing written")
		return
	}
	if result.RecordPath != "" {
		fmt.Fprintf(out, "record: %s\n", result.RecordPath)
	}
}

func printStageTimings(out io.Writer, timings pipeline.Timings) {
	if out == nil {
		return
	}
	stages := []pipeline.Stage{
		pipeline.StageLoad,
		pipeline.StageInstrument,
		pipeline.StageResolve,
		pipeline.StageSweep,
		pipeline.StageMarkup,
		pipeline.StageWrite,
	}
	for _, stage := range stages {
		if !timings.Has(stage) {
			continue
		}
		fmt.Fprintf(out, "%-12s %.1f ms\n", string(stage), toMillis(timings.Duration(stage)))
	}
	fmt.Fprintf(out, "%-12s %.1f ms\n", "total", toMillis(timings.Sum(stages...)))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
