// Package cli constructs the shellkit command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives. Unknown subcommands and malformed arguments surface as
// toolerrors values so that main can map them to exit codes.
package cli
