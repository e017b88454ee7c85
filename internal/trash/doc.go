// Package trash finds regular files by extension beneath a root directory
// and hands each one to an external trash facility (gio trash by default).
// Moves are best effort: a refused file is reported and the rest proceed.
package trash
