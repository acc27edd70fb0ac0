package clock

// Source identifies the timing capability backing a CycleClock.
type Source int

const (
	// SourceInvariantCycleCounter reads the hardware cycle counter
	// (TSC on x86, CNTVCT_EL0 on ARM).
	SourceInvariantCycleCounter Source = iota

	// SourceMonotonicFallback reads the OS monotonic clock. Coarser,
	// but available everywhere and never tied to CPU frequency.
	SourceMonotonicFallback
)

func (s Source) String() string {
	switch s {
	case SourceInvariantCycleCounter:
		return "cycle-counter"
	case SourceMonotonicFallback:
		return "monotonic-fallback"
	default:
		return "unknown"
	}
}

// Stability classifies whether a counter's increment rate can be
// trusted across frequency and power-state changes.
type Stability int

const (
	// StabilityNonInvariant means the counter rate follows CPU
	// frequency. Tick deltas are ordering-valid but must not be
	// converted to time units.
	StabilityNonInvariant Stability = iota

	// StabilityConstant means the rate is fixed while the CPU is
	// running but the counter may pause in deep power states. A
	// conversion factor is valid only for runs without C-state entry.
	StabilityConstant

	// StabilityInvariant means the rate is fixed and power-state
	// independent. A conversion factor holds for the process lifetime.
	StabilityInvariant
)

func (s Stability) String() string {
	switch s {
	case StabilityNonInvariant:
		return "non-invariant"
	case StabilityConstant:
		return "constant"
	case StabilityInvariant:
		return "invariant"
	default:
		return "unknown"
	}
}

// ParseStability maps a configuration string to a Stability value.
func ParseStability(s string) (Stability, bool) {
	switch s {
	case "non-invariant":
		return StabilityNonInvariant, true
	case "constant":
		return StabilityConstant, true
	case "invariant":
		return StabilityInvariant, true
	}
	return StabilityNonInvariant, false
}

// Stamp is one serialized counter read. Ticks is meaningful only
// relative to another Stamp taken on the same core; Core is -1 when
// the platform cannot report the executing core.
type Stamp struct {
	Ticks uint64
	Core  int32
}

// CycleClock wraps ordered reads of one timing source. Each
// measuring goroutine owns a private CycleClock; the struct holds no
// mutable state, so the hot-path methods never contend or allocate.
type CycleClock struct {
	source    Source
	stability Stability
	name      string
	freqHz    uint64
}

// New returns a CycleClock backed by the hardware cycle counter, or
// ErrUnsupportedHardware when the platform lacks one.
func New() (*CycleClock, error) {
	if !hardwareSupported() {
		return nil, ErrUnsupportedHardware
	}
	return &CycleClock{
		source:    SourceInvariantCycleCounter,
		stability: hardwareStability(),
		name:      hardwareName(),
		freqHz:    hardwareFrequencyHz(),
	}, nil
}

// NewFallback returns a CycleClock backed by the OS monotonic clock.
// Ticks are nanoseconds, so the nominal conversion rate is 1 tick/ns
// and the source is classified invariant.
func NewFallback() *CycleClock {
	return &CycleClock{
		source:    SourceMonotonicFallback,
		stability: StabilityInvariant,
		name:      "monotonic",
		freqHz:    1_000_000_000,
	}
}

// Start reads the counter for the opening edge of a measurement pair.
// The read is ordered not to occur before instructions preceding the
// call; the call itself is the compiler barrier keeping the measured
// region from being hoisted above it.
func (c *CycleClock) Start() Stamp {
	if c.source == SourceMonotonicFallback {
		return readMonotonic()
	}
	ticks, core := readStartOrdered()
	return Stamp{Ticks: ticks, Core: core}
}

// Stop reads the counter for the closing edge. The read waits for
// prior instruction retirement, and later instructions cannot be
// pulled ahead of it. The returned Stamp carries the executing core.
func (c *CycleClock) Stop() Stamp {
	if c.source == SourceMonotonicFallback {
		return readMonotonic()
	}
	ticks, core := readStopOrdered()
	return Stamp{Ticks: ticks, Core: core}
}

// Source reports the timing capability in use.
func (c *CycleClock) Source() Source { return c.source }

// Stability reports the counter's rate classification.
func (c *CycleClock) Stability() Stability { return c.stability }

// Name reports the counter's platform name, e.g. "rdtscp".
func (c *CycleClock) Name() string { return c.name }

// FrequencyHz reports the platform-declared counter frequency, or 0
// when the platform does not expose one (x86 TSC must be calibrated).
func (c *CycleClock) FrequencyHz() uint64 { return c.freqHz }

// Elapsed computes the tick delta of a start/stop pair. ok is false
// when the pair is invalid: the two reads landed on different cores,
// or the counter ran backwards between them. Invalid pairs must be
// counted and discarded, never fed into statistics.
func Elapsed(start, stop Stamp) (ticks uint64, ok bool) {
	if start.Core >= 0 && stop.Core >= 0 && start.Core != stop.Core {
		return 0, false
	}
	if stop.Ticks < start.Ticks {
		return 0, false
	}
	return stop.Ticks - start.Ticks, true
}

// ReadOverhead estimates the cost of one counter read in ticks by
// taking the minimum delta of back-to-back reads. The minimum, not
// the mean, because any interruption only inflates a delta.
func (c *CycleClock) ReadOverhead() uint64 {
	const rounds = 10000
	overhead := ^uint64(0)
	for i := 0; i < rounds; i++ {
		a := c.Start()
		b := c.Stop()
		if d, ok := Elapsed(a, b); ok && d < overhead {
			overhead = d
		}
	}
	if overhead == ^uint64(0) {
		return 0
	}
	return overhead
}
