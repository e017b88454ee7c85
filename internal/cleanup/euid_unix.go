//go:build unix

package cleanup

import "golang.org/x/sys/unix"

// CurrentEffectiveUserID reads the effective user id from the kernel.
func CurrentEffectiveUserID() int {
	return unix.Geteuid()
}
