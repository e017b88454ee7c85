// Package cleanup runs the clean-system pipeline: an ordered list of
// package-management steps executed fail-fast through apt-get, dpkg,
// journalctl, localepurge and deborphan.
//
// Pipeline executes Step values in order and stops at the first failure,
// leaving later steps Pending. Mutating commands are prefixed with the
// configured elevation tool when the effective user is not root. Free disk
// space is sampled with gopsutil before and after the run.
package cleanup
