//go:build !unix

package cleanup

import "os"

// CurrentEffectiveUserID reports -1 on platforms without user ids, forcing elevation.
func CurrentEffectiveUserID() int {
	return os.Geteuid()
}
