package clock

import (
	"math"
	"sort"
	"time"
)

// Provenance records where a conversion rate came from.
type Provenance int

const (
	// ProvenanceMeasured means the rate was measured against an
	// independent wall-clock interval.
	ProvenanceMeasured Provenance = iota

	// ProvenanceDeclared means the rate was supplied by the operator,
	// e.g. from a platform-reported frequency.
	ProvenanceDeclared
)

func (p Provenance) String() string {
	switch p {
	case ProvenanceMeasured:
		return "measured"
	case ProvenanceDeclared:
		return "declared"
	default:
		return "unknown"
	}
}

// CalibrationFactor converts raw ticks to wall-clock units. It is an
// explicit value passed into analysis, never process-global state, and
// is constant for the lifetime of one run. The Stability tag must be
// checked before trusting a conversion: multiplying ticks by a nominal
// frequency on a frequency-scaled counter produces garbage.
type CalibrationFactor struct {
	// TicksPerNano is the conversion rate.
	TicksPerNano float64 `json:"ticksPerNano"`

	// Provenance records whether the rate was measured or declared.
	Provenance Provenance `json:"-"`

	// Stability is the counter's rate classification at calibration
	// time.
	Stability Stability `json:"-"`

	// Counter is the platform name of the calibrated counter.
	Counter string `json:"counter"`

	// Interval is the wall interval the rate was measured over; zero
	// for declared rates.
	Interval time.Duration `json:"interval"`
}

// Convertible reports whether tick values may be converted to time
// units under this factor. Non-invariant counters are refused: their
// tick deltas are still ordered, but the rate they accumulated at is
// unknown.
func (f CalibrationFactor) Convertible() bool {
	return f.TicksPerNano > 0 && f.Stability != StabilityNonInvariant
}

// ToDuration converts a tick count to a wall-clock duration, or
// returns ErrCalibrationUnreliable when the factor is not convertible.
func (f CalibrationFactor) ToDuration(ticks uint64) (time.Duration, error) {
	if !f.Convertible() {
		return 0, ErrCalibrationUnreliable
	}
	return time.Duration(float64(ticks) / f.TicksPerNano), nil
}

// Same reports whether two factors are the identical calibration.
// Runs may only be merged when their factors are the same.
func (f CalibrationFactor) Same(other CalibrationFactor) bool {
	return f == other
}

// Calibrator establishes a CalibrationFactor for one clock. One
// calibration is assumed valid for one bounded run; long-lived
// processes should re-calibrate.
type Calibrator struct {
	clock *CycleClock
}

// NewCalibrator returns a Calibrator for the given clock.
func NewCalibrator(c *CycleClock) *Calibrator {
	return &Calibrator{clock: c}
}

// Calibrate measures ticks per nanosecond against the OS wall clock.
// It takes the median of several rounds and retries with a doubled
// interval when the rounds disagree beyond tolerance; persistent
// disagreement yields ErrCalibrationNoisy, at which point callers may
// fall back to a declared rate.
func (c *Calibrator) Calibrate(interval time.Duration) (CalibrationFactor, error) {
	const (
		rounds    = 5
		attempts  = 3
		tolerance = 0.02
	)
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	for attempt := 0; attempt < attempts; attempt++ {
		rates := make([]float64, 0, rounds)
		for i := 0; i < rounds; i++ {
			if r, ok := c.measureOnce(interval); ok {
				rates = append(rates, r)
			}
		}
		if len(rates) < 3 {
			interval *= 2
			continue
		}
		sort.Float64s(rates)
		median := rates[len(rates)/2]
		spread := (rates[len(rates)-1] - rates[0]) / median
		if median > 0 && spread <= tolerance {
			return CalibrationFactor{
				TicksPerNano: median,
				Provenance:   ProvenanceMeasured,
				Stability:    c.clock.Stability(),
				Counter:      c.clock.Name(),
				Interval:     interval,
			}, nil
		}
		interval *= 2
	}
	return CalibrationFactor{}, ErrCalibrationNoisy
}

// measureOnce busy-waits through one interval so the core stays out
// of idle states while ticks accumulate. Rounds interrupted by a core
// migration are dropped.
func (c *Calibrator) measureOnce(interval time.Duration) (float64, bool) {
	wallStart := time.Now()
	start := c.clock.Start()
	for time.Since(wallStart) < interval {
	}
	stop := c.clock.Stop()
	elapsed := time.Since(wallStart)

	ticks, ok := Elapsed(start, stop)
	if !ok || ticks == 0 || elapsed <= 0 {
		return 0, false
	}
	return float64(ticks) / float64(elapsed.Nanoseconds()), true
}

// Declared wraps an operator-supplied rate. The caller vouches for
// the stability classification; when in doubt, declare non-invariant
// and keep raw-tick reporting.
func (c *Calibrator) Declared(ticksPerNano float64, stability Stability) (CalibrationFactor, error) {
	if ticksPerNano <= 0 || math.IsNaN(ticksPerNano) || math.IsInf(ticksPerNano, 0) {
		return CalibrationFactor{}, ErrDeclaredRateInvalid
	}
	return CalibrationFactor{
		TicksPerNano: ticksPerNano,
		Provenance:   ProvenanceDeclared,
		Stability:    stability,
		Counter:      c.clock.Name(),
	}, nil
}
