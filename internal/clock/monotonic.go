package clock

import "time"

// Reference point for the fallback source; only deltas are meaningful.
var monotonicEpoch = time.Now()

// The monotonic clock is global, so a pair spanning a migration is
// still valid. Core is left unknown and the migration check stays off.
func readMonotonic() Stamp {
	return Stamp{
		Ticks: uint64(time.Since(monotonicEpoch)),
		Core:  -1,
	}
}
