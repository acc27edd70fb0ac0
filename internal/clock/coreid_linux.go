//go:build linux

package clock

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// currentCore reports the executing CPU via getcpu (vDSO-backed on
// Linux), or -1 when the kernel refuses.
func currentCore() int32 {
	var cpu uint32
	_, _, errno := unix.Syscall(unix.SYS_GETCPU, uintptr(unsafe.Pointer(&cpu)), 0, 0)
	if errno != 0 {
		return -1
	}
	return int32(cpu)
}
