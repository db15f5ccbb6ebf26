// Package main implements the sealant CLI.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"sealant/internal/pipeline"
	"sealant/internal/resolve"
)

var sealCmd = &cobra.Command{
	Use:   "seal [flags]",
	Short: "Seal a bundle with subresource integrity",
	Long:  "Seal a bundle: instrument loader code, resolve digests over the chunk graph, and inject integrity attributes into markup.",
	Args:  cobra.NoArgs,
	RunE:  sealExecution,
}

func init() {
	sealCmd.Flags().String("bundle", "", "path to the bundle manifest (JSON)")
	sealCmd.Flags().String("output", "", "bundle output directory (default: manifest directory)")
	sealCmd.Flags().String("public-path", "", "public path prefix used by markup references")
	sealCmd.Flags().StringArray("algorithm", nil, "hash algorithm, repeatable (sha256|sha384|sha512)")
	sealCmd.Flags().String("record", "", "integrity record path (default: <output>/sealant.rec)")
	sealCmd.Flags().Bool("no-record", false, "do not write an integrity record")
	sealCmd.Flags().Bool("dry-run", false, "resolve everything but write nothing")
	sealCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

func sealExecution(cmd *cobra.Command, args []string) error {
	bundlePath, err := cmd.Flags().GetString("bundle")
	if err != nil {
		return err
	}
	outputDir, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	publicPath, err := cmd.Flags().GetString("public-path")
	if err != nil {
		return err
	}
	algorithmFlags, err := cmd.Flags().GetStringArray("algorithm")
	if err != nil {
		return err
	}
	recordPath, err := cmd.Flags().GetString("record")
	if err != nil {
		return err
	}
	noRecord, err := cmd.Flags().GetBool("no-record")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
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

	project, projectFound, err := loadProjectManifest(".")
	if err != nil {
		return err
	}

	algorithms := algorithmFlags
	if projectFound {
		if bundlePath == "" {
			bundlePath = filepath.Join(project.Root, project.Config.Bundle.Manifest)
		}
		if outputDir == "" && project.Config.Bundle.Output != "" {
			outputDir = filepath.Join(project.Root, project.Config.Bundle.Output)
		}
		if publicPath == "" {
			publicPath = project.Config.Bundle.PublicPath
		}
		if recordPath == "" && project.Config.Integrity.Record != "" {
			recordPath = filepath.Join(project.Root, project.Config.Integrity.Record)
		}
		if len(algorithms) == 0 {
			configured, algErr := project.Algorithms()
			if algErr != nil {
				return algErr
			}
			if configured != nil {
				parsed, algErr := resolve.ParseAlgorithms(configured)
				if algErr != nil {
					return fmt.Errorf("%s: %w", project.Path, algErr)
				}
				algorithms = parsed
			}
		}
	}
	if bundlePath == "" {
		return fmt.Errorf("%s", noSealantTomlMessage)
	}
	if outputDir == "" {
		outputDir = filepath.Dir(bundlePath)
	}
	if len(algorithms) == 0 {
		algorithms = []string{"sha384"}
	}

	req := &pipeline.SealRequest{
		ManifestPath:   bundlePath,
		OutputDir:      outputDir,
		Algorithms:     algorithms,
		PublicPath:     publicPath,
		RecordPath:     recordPath,
		NoRecord:       noRecord,
		DryRun:         dryRun,
		MaxDiagnostics: maxDiagnostics,
	}

	ctx := cmd.Context()
	var result pipeline.SealResult
	if shouldUseTUI(uiModeValue) {
		result, err = runSealWithUI(ctx, "sealing "+filepath.Base(bundlePath), req)
	} else {
		if !quiet {
			req.Progress = textSink{out: cmd.OutOrStdout()}
		}
		result, err = pipeline.Seal(ctx, req)
	}

	printWarnings(cmd.ErrOrStderr(), result.Warnings)
	if err != nil {
		return err
	}

	if !quiet {
		printSealSummary(cmd.OutOrStdout(), result, dryRun)
	}
	if timings {
		printStageTimings(cmd.OutOrStdout(), result.Timings)
	}
	return nil
}
