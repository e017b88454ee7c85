// Package submodules runs an argument vector inside every initialized Git
// submodule of a repository, nested submodules included.
package submodules
