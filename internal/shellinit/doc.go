// Package shellinit renders the shell functions that turn shellkit output into
// changes of the interactive shell state, such as the cd performed by up.
package shellinit
