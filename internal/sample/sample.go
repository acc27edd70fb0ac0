// Package sample accumulates per-operation timing observations for
// one measurement window. The recorder is single-writer and
// allocation-free after construction, so recording cannot perturb the
// latencies being measured.
package sample

import "errors"

// Errors returned by Recorder operations.
var (
	// ErrFinalized is returned by Record after Finalize has frozen the
	// window. Recording past finalization is a programming error
	// surfaced to the caller, not silently dropped.
	ErrFinalized = errors.New("sample: recorder already finalized")

	// ErrFull is returned when the pre-sized backing store is
	// exhausted. Growing mid-window would allocate on the hot path, so
	// the recorder refuses instead.
	ErrFull = errors.New("sample: recorder capacity exhausted")

	// ErrBadCapacity is returned for a non-positive capacity.
	ErrBadCapacity = errors.New("sample: capacity must be positive")
)

// Sample is one completed measurement pair. Seq preserves insertion
// order independent of any later sort by duration. Migrated marks a
// pair whose start and stop reads landed on different cores; such
// pairs are retained here and excluded later, with the cause recorded.
type Sample struct {
	Ticks    uint64 `json:"ticks"`
	Seq      int64  `json:"seq"`
	Migrated bool   `json:"migrated,omitempty"`
}

// Set is an immutable view of a finalized window. It is produced by
// Recorder.Finalize or derived from other finalized sets, so holding
// a *Set is proof the window is closed and concurrent reads are safe.
type Set struct {
	samples []Sample
}

// Len returns the number of completed pairs in the window.
func (s *Set) Len() int { return len(s.samples) }

// At returns the i'th sample in insertion order.
func (s *Set) At(i int) Sample { return s.samples[i] }

// Samples returns the backing slice in insertion order. Callers must
// not modify it; copy before sorting.
func (s *Set) Samples() []Sample { return s.samples }

// Recorder appends samples for one window. Exactly one goroutine
// writes to a Recorder, and nothing reads it until Finalize returns.
type Recorder struct {
	samples   []Sample
	finalized bool
}

// NewRecorder pre-sizes the backing store to the expected sample
// count. All allocation happens here, before the window opens.
func NewRecorder(capacity int) (*Recorder, error) {
	if capacity <= 0 {
		return nil, ErrBadCapacity
	}
	return &Recorder{samples: make([]Sample, 0, capacity)}, nil
}

// Record appends one sample in O(1) without allocating.
func (r *Recorder) Record(ticks uint64, seq int64, migrated bool) error {
	if r.finalized {
		return ErrFinalized
	}
	if len(r.samples) == cap(r.samples) {
		return ErrFull
	}
	r.samples = append(r.samples, Sample{Ticks: ticks, Seq: seq, Migrated: migrated})
	return nil
}

// Len returns the number of samples recorded so far.
func (r *Recorder) Len() int { return len(r.samples) }

// Finalize freezes the window and returns the immutable view.
// Further Record calls fail with ErrFinalized. Finalize is
// idempotent on the data: calling it twice returns views over the
// same samples.
func (r *Recorder) Finalize() *Set {
	r.finalized = true
	return &Set{samples: r.samples}
}

// Abort discards all partial data for a cancelled run. The recorder
// cannot be reused afterwards.
func (r *Recorder) Abort() {
	r.finalized = true
	r.samples = nil
}

// FromSamples wraps already-finalized samples, e.g. the clean
// partition produced by jitter classification.
func FromSamples(samples []Sample) *Set {
	return &Set{samples: samples}
}

// Merge combines finalized windows from independent goroutines into
// one Set, preserving each window's insertion order and concatenating
// in argument order. Callers must only merge windows measured under
// the same CalibrationFactor.
func Merge(sets ...*Set) *Set {
	total := 0
	for _, s := range sets {
		total += s.Len()
	}
	merged := make([]Sample, 0, total)
	for _, s := range sets {
		merged = append(merged, s.samples...)
	}
	return &Set{samples: merged}
}
