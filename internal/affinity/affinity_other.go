//go:build !linux

// Package affinity pins the calling thread to one physical core so a
// start/stop counter pair stays on a single counter. It is a thin
// shim over the platform primitive; callers must hold
// runtime.LockOSThread for the pin to mean anything.
package affinity

import "errors"

// ErrUnsupported is returned where no affinity primitive exists.
var ErrUnsupported = errors.New("affinity: not supported on this platform")

// Supported reports whether pinning works on this platform.
func Supported() bool { return false }

// Pin restricts the calling thread to the given core.
func Pin(core int) error { return ErrUnsupported }
