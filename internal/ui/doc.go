// Package ui renders terminal feedback for long-running commands.
//
// Progress lines go to stderr independently of the configured log level so
// that the user sees each external tool as it runs.
package ui
