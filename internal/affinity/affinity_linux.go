//go:build linux

// Package affinity pins the calling thread to one physical core so a
// start/stop counter pair stays on a single counter. It is a thin
// shim over the platform primitive; callers must hold
// runtime.LockOSThread for the pin to mean anything.
package affinity

import "golang.org/x/sys/unix"

// Supported reports whether pinning works on this platform.
func Supported() bool { return true }

// Pin restricts the calling thread to the given core.
func Pin(core int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(core)
	return unix.SchedSetaffinity(0, &set)
}
