// Package jitter separates samples contaminated by detectable
// external interruption from clean ones. Classification never looks
// at duration magnitude: deciding that outliers are jitter because
// they are large is exactly the circular reasoning a tail-latency
// harness exists to avoid.
package jitter

import "github.com/wesleyorama2/ticktail/internal/sample"

// Cause names the contamination signal that excluded a sample.
type Cause string

const (
	// CauseCoreMigration marks a pair whose start and stop counter
	// reads landed on different cores.
	CauseCoreMigration Cause = "core-migration"

	// CauseInterrupted marks a sample flagged by an externally
	// supplied scheduler-interruption signal.
	CauseInterrupted Cause = "scheduler-interruption"
)

// Discarded is one excluded sample with its cause.
type Discarded struct {
	Sample sample.Sample `json:"sample"`
	Cause  Cause         `json:"cause"`
}

// Classification is a disjoint, exhaustive partition of a finalized
// set: every sample is in exactly one of Clean or Discarded.
type Classification struct {
	Clean     []sample.Sample
	Discarded []Discarded
}

// CountByCause returns the discard count per contamination cause.
func (c *Classification) CountByCause() map[Cause]int {
	counts := make(map[Cause]int)
	for _, d := range c.Discarded {
		counts[d.Cause]++
	}
	return counts
}

// Classify partitions a finalized set. interrupted is an optional
// per-sequence-id signal from an external source (e.g. a scheduler
// trace); nil means no external signal. A sample carrying both
// signals is attributed to migration, the stronger evidence that the
// counter delta itself is invalid.
func Classify(set *sample.Set, interrupted func(seq int64) bool) Classification {
	cls := Classification{
		Clean: make([]sample.Sample, 0, set.Len()),
	}
	for _, s := range set.Samples() {
		switch {
		case s.Migrated:
			cls.Discarded = append(cls.Discarded, Discarded{Sample: s, Cause: CauseCoreMigration})
		case interrupted != nil && interrupted(s.Seq):
			cls.Discarded = append(cls.Discarded, Discarded{Sample: s, Cause: CauseInterrupted})
		default:
			cls.Clean = append(cls.Clean, s)
		}
	}
	return cls
}
