// Package branches prunes local Git branches whose remote-tracking
// counterparts no longer exist.
//
// Service fetches the remote with --prune, enumerates local heads and force
// deletes each head that has no refs/remotes/<remote>/<branch> reference.
// The checked-out branch is protected unless IncludeCurrent is requested.
// CommandBuilder exposes the service as the prune-branches Cobra command.
package branches
