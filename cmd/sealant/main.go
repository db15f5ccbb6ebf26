package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sealant/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sealant",
	Short: "Subresource-integrity sealing for web bundles",
	Long:  `Sealant computes SRI digests for a bundle's outputs and injects them into loader code and markup`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(sealCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
