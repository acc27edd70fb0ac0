//go:build amd64

package clock

// Assembly bodies in hw_amd64.s.

// lfenceRdtscp fences loads, then reads TSC and IA32_TSC_AUX.
//
//go:noescape
func lfenceRdtscp() (ticks uint64, aux uint32)

// rdtscpLfence reads TSC after prior instruction retirement, then
// fences so later loads cannot move above the read.
//
//go:noescape
func rdtscpLfence() (ticks uint64, aux uint32)

// cpuid executes CPUID with the given EAX and ECX inputs.
//
//go:noescape
func cpuid(eaxArg, ecxArg uint32) (eax, ebx, ecx, edx uint32)

// Linux writes (numa << 12 | cpu) into IA32_TSC_AUX.
const tscAuxCoreMask = 0xfff

func hardwareSupported() bool {
	maxExt, _, _, _ := cpuid(0x80000000, 0)
	if maxExt < 0x80000001 {
		return false
	}
	_, _, _, edx := cpuid(0x80000001, 0)
	return edx&(1<<27) != 0 // RDTSCP
}

func hardwareName() string { return "rdtscp" }

// hardwareStability checks CPUID.80000007H:EDX[8], the invariant-TSC
// bit. Without it the TSC may track core frequency, so the counter is
// classified non-invariant rather than guessed at from family/model.
func hardwareStability() Stability {
	maxExt, _, _, _ := cpuid(0x80000000, 0)
	if maxExt >= 0x80000007 {
		_, _, _, edx := cpuid(0x80000007, 0)
		if edx&(1<<8) != 0 {
			return StabilityInvariant
		}
	}
	return StabilityNonInvariant
}

// hardwareFrequencyHz derives the TSC frequency from CPUID leaf 15H
// when the crystal frequency is enumerated; most CPUs leave it zero,
// in which case the rate must be measured.
func hardwareFrequencyHz() uint64 {
	maxLeaf, _, _, _ := cpuid(0, 0)
	if maxLeaf < 0x15 {
		return 0
	}
	den, num, crystalHz, _ := cpuid(0x15, 0)
	if den == 0 || num == 0 || crystalHz == 0 {
		return 0
	}
	return uint64(crystalHz) * uint64(num) / uint64(den)
}

func readStartOrdered() (uint64, int32) {
	t, aux := lfenceRdtscp()
	return t, int32(aux & tscAuxCoreMask)
}

func readStopOrdered() (uint64, int32) {
	t, aux := rdtscpLfence()
	return t, int32(aux & tscAuxCoreMask)
}
