// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with lifecycle logging and converts
// non-zero exits into CommandFailedError values. OSCommandRunner is the
// default os/exec backed runner. Commands are always typed argv lists; no
// shell string is ever interpolated.
package execshell
