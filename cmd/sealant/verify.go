package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sealant/internal/pipeline"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [flags]",
	Short: "Verify outputs against the integrity record",
	Long:  "Recompute digests for every recorded asset and report drift since the last seal.",
	Args:  cobra.NoArgs,
	RunE:  verifyExecution,
}

func init() {
	verifyCmd.Flags().String("output", ".", "bundle output directory")
	verifyCmd.Flags().String("record", "", "integrity record path (default: <output>/sealant.rec)")
}

func verifyExecution(cmd *cobra.Command, args []string) error {
	outputDir, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	recordPath, err := cmd.Flags().GetString("record")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
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

	result, err := pipeline.Verify(cmd.Context(), outputDir, recordPath, maxDiagnostics)
	if err != nil {
		return err
	}

	printWarnings(cmd.ErrOrStderr(), result.Warnings)
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "checked %d assets against %s\n", result.Checked, result.RecordPath)
	}
	if !result.Ok() {
		return fmt.Errorf("%d drifted, %d missing", len(result.Drifted), len(result.Missing))
	}
	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "all assets match their sealed digests")
	}
	return nil
}
