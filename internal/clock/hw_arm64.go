//go:build arm64

package clock

// Assembly bodies in hw_arm64.s.

// isbCntvct flushes the pipeline, then reads CNTVCT_EL0.
//
//go:noescape
func isbCntvct() uint64

// isbCntvctIsb reads CNTVCT_EL0 after prior instructions complete and
// keeps later instructions from starting before the read.
//
//go:noescape
func isbCntvctIsb() uint64

// cntfrqEl0 reads the architected counter frequency register.
//
//go:noescape
func cntfrqEl0() uint64

func hardwareSupported() bool { return true }

func hardwareName() string { return "cntvct_el0" }

// CNTVCT_EL0 ticks at the fixed system counter frequency regardless
// of core frequency or power state.
func hardwareStability() Stability { return StabilityInvariant }

func hardwareFrequencyHz() uint64 { return cntfrqEl0() }

// The executing core is not readable from EL0 on ARM, so both edges
// ask the OS. On Linux this is a vDSO call, cheap enough for the
// measurement path.
func readStartOrdered() (uint64, int32) {
	return isbCntvct(), currentCore()
}

func readStopOrdered() (uint64, int32) {
	t := isbCntvctIsb()
	return t, currentCore()
}
