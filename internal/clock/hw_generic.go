//go:build !amd64 && !arm64

package clock

// No ordered counter read on this architecture; New reports
// ErrUnsupportedHardware and callers fall back explicitly.

func hardwareSupported() bool { return false }

func hardwareName() string { return "" }

func hardwareStability() Stability { return StabilityNonInvariant }

func hardwareFrequencyHz() uint64 { return 0 }

func readStartOrdered() (uint64, int32) { return 0, -1 }

func readStopOrdered() (uint64, int32) { return 0, -1 }
