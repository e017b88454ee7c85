// Package navigation resolves ancestor directories for the up command.
//
// A child process cannot change the working directory of its parent shell,
// so the command prints the resolved path and the shell-init function
// performs the cd.
package navigation
