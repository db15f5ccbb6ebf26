// Package diag defines the diagnostic model shared by all sealing phases.
//
// Diagnostic is the central record: a Severity, a compact numeric Code with a
// stable string form, a short human-oriented Message, and a Ref naming the
// asset, chunk, or tag reference the finding concerns. Phases emit through a
// Reporter so producers stay decoupled from storage; BagReporter aggregates
// into a Bag, which supports capping, stable sorting, and deduplication.
//
// The package performs no formatting or IO. Rendering lives with the CLI.
package diag
