package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"sealant/internal/bundle"
	"sealant/internal/diag"
	"sealant/internal/graph"
)

var planCmd = &cobra.Command{
	Use:   "plan [flags]",
	Short: "Show the chunk graph and resolution order",
	Long:  "Show which chunks each entry will resolve, without touching any output.",
	Args:  cobra.NoArgs,
	RunE:  planExecution,
}

func init() {
	planCmd.Flags().String("bundle", "", "path to the bundle manifest (JSON)")
}

func planExecution(cmd *cobra.Command, args []string) error {
	bundlePath, err := cmd.Flags().GetString("bundle")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	applyColorMode(colorMode)

	if bundlePath == "" {
		project, found, err := loadProjectManifest(".")
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%s", noSealantTomlMessage)
		}
		bundlePath = filepath.Join(project.Root, project.Config.Bundle.Manifest)
	}

	manifest, err := bundle.LoadManifest(bundlePath)
	if err != nil {
		return err
	}

	bag := diag.NewBag(maxDiagnostics)
	g := graph.Build(manifest.Chunks, diag.BagReporter{Bag: bag})

	out := cmd.OutOrStdout()
	if len(g.Entries) == 0 {
		fmt.Fprintln(out, "no entry chunks; the sweep phase would digest every asset")
	}
	for _, entry := range g.Entries {
		fmt.Fprintf(out, "entry %s\n", g.Name(entry))
		for _, dep := range g.DependencyNames(entry) {
			marker := " "
			if id, ok := g.ID(dep); !ok || g.Chunk(id) == nil {
				marker = "?"
			}
			fmt.Fprintf(out, "  %s %s\n", marker, dep)
		}
	}
	if extra := len(manifest.Assets); extra > 0 {
		fmt.Fprintf(out, "%d loose assets handled by sweep\n", extra)
	}

	bag.Sort()
	printWarnings(cmd.ErrOrStderr(), bag)
	return nil
}
