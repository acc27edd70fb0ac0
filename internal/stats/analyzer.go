// Package stats computes percentile and outlier statistics over a
// finalized sample set. Queries are pure functions of the set and may
// run concurrently with each other once the analyzer is built.
package stats

import (
	"errors"
	"math"
	"sort"

	"github.com/wesleyorama2/ticktail/internal/sample"
)

// Errors returned by analyzer queries.
var (
	// ErrEmptySampleSet is returned for any query over zero samples.
	// There is no degenerate default value.
	ErrEmptySampleSet = errors.New("stats: empty sample set")

	// ErrInvalidPercentile is returned for p outside (0, 100].
	ErrInvalidPercentile = errors.New("stats: percentile must be in (0, 100]")

	// ErrInvalidK is returned for a negative outlier count.
	ErrInvalidK = errors.New("stats: outlier count must be non-negative")
)

// Analyzer answers percentile and top-K queries over one finalized
// set. It sorts a private copy once and shares that pass across all
// queries; the insertion-ordered set is never mutated.
type Analyzer struct {
	set *sample.Set

	// byDuration is sorted ascending by ticks, ties broken by later
	// sequence id first so that reading the tail backwards yields
	// earlier sequence ids first among equals.
	byDuration []sample.Sample
}

// NewAnalyzer builds an analyzer over a finalized set, paying the one
// O(N log N) sort up front.
func NewAnalyzer(set *sample.Set) (*Analyzer, error) {
	if set == nil {
		return nil, ErrEmptySampleSet
	}
	sorted := make([]sample.Sample, set.Len())
	copy(sorted, set.Samples())
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Ticks != sorted[j].Ticks {
			return sorted[i].Ticks < sorted[j].Ticks
		}
		return sorted[i].Seq > sorted[j].Seq
	})
	return &Analyzer{set: set, byDuration: sorted}, nil
}

// Count returns the number of samples under analysis.
func (a *Analyzer) Count() int { return len(a.byDuration) }

// Percentile returns the duration at percentile p in (0, 100] by the
// nearest-rank method: rank = ceil(p/100 * N), clamped to [1, N].
// Percentile(100) is always the maximum observed duration.
func (a *Analyzer) Percentile(p float64) (uint64, error) {
	if p <= 0 || p > 100 || math.IsNaN(p) {
		return 0, ErrInvalidPercentile
	}
	n := len(a.byDuration)
	if n == 0 {
		return 0, ErrEmptySampleSet
	}
	// p/100 rounds up in binary for some p, which would push an exact
	// integer rank to the next one. Multiply first and shave the error.
	rank := int(math.Ceil(p*float64(n)/100 - 1e-9))
	if rank < 1 {
		rank = 1
	}
	if rank > n {
		rank = n
	}
	return a.byDuration[rank-1].Ticks, nil
}

// TopK returns the k largest samples in descending duration order,
// ties broken by earlier sequence id first. The result is
// reproducible for identical input. k larger than N returns all N.
func (a *Analyzer) TopK(k int) ([]sample.Sample, error) {
	if k < 0 {
		return nil, ErrInvalidK
	}
	n := len(a.byDuration)
	if n == 0 {
		return nil, ErrEmptySampleSet
	}
	if k > n {
		k = n
	}
	out := make([]sample.Sample, k)
	for i := 0; i < k; i++ {
		out[i] = a.byDuration[n-1-i]
	}
	return out, nil
}

// Min returns the smallest observed duration.
func (a *Analyzer) Min() (uint64, error) {
	if len(a.byDuration) == 0 {
		return 0, ErrEmptySampleSet
	}
	return a.byDuration[0].Ticks, nil
}

// Max returns the largest observed duration.
func (a *Analyzer) Max() (uint64, error) {
	n := len(a.byDuration)
	if n == 0 {
		return 0, ErrEmptySampleSet
	}
	return a.byDuration[n-1].Ticks, nil
}
