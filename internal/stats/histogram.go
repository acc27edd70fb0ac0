package stats

import (
	"math"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/wesleyorama2/ticktail/internal/sample"
)

// Summary is an HDR-histogram cross-check of the exact analyzer
// output. The histogram quantizes to three significant figures, so
// its quantiles are approximate; the exact nearest-rank values in the
// report always come from Analyzer, never from here.
type Summary struct {
	Count  int64   `json:"count"`
	Min    int64   `json:"minTicks"`
	Max    int64   `json:"maxTicks"`
	Mean   float64 `json:"meanTicks"`
	StdDev float64 `json:"stdDevTicks"`
	P50    int64   `json:"p50Ticks"`
	P99    int64   `json:"p99Ticks"`
}

// Summarize records all samples into an HDR histogram sized to the
// observed range and returns the aggregate view.
func Summarize(set *sample.Set) (Summary, error) {
	if set == nil || set.Len() == 0 {
		return Summary{}, ErrEmptySampleSet
	}

	var maxTicks uint64 = 1
	for _, s := range set.Samples() {
		if s.Ticks > maxTicks {
			maxTicks = s.Ticks
		}
	}
	// hdrhistogram needs highest >= 2 * lowest.
	highest := saturateTicks(maxTicks)
	if highest < 2 {
		highest = 2
	}

	hist := hdrhistogram.New(1, highest, 3)
	for _, s := range set.Samples() {
		v := saturateTicks(s.Ticks)
		if v < 1 {
			v = 1
		}
		// Range is sized from the data, so recording cannot fail.
		_ = hist.RecordValue(v)
	}

	return Summary{
		Count:  hist.TotalCount(),
		Min:    hist.Min(),
		Max:    hist.Max(),
		Mean:   hist.Mean(),
		StdDev: hist.StdDev(),
		P50:    hist.ValueAtQuantile(50),
		P99:    hist.ValueAtQuantile(99),
	}, nil
}

// saturateTicks clamps a tick count into the histogram's value range
// instead of letting the int64 conversion wrap negative. Half the
// int64 range keeps the histogram's own bucket math clear of overflow.
func saturateTicks(t uint64) int64 {
	const ceiling = math.MaxInt64 / 2
	if t > ceiling {
		return ceiling
	}
	return int64(t)
}
