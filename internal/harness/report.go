package harness

import (
	"time"

	"github.com/wesleyorama2/ticktail/internal/clock"
	"github.com/wesleyorama2/ticktail/internal/sample"
	"github.com/wesleyorama2/ticktail/internal/stats"
)

// Report is the complete result of one measurement run, consumed by
// an external reporting layer. Durations are present only when the
// calibration factor permitted conversion; ticks are always present.
type Report struct {
	// Name is the run name from configuration.
	Name string `json:"name,omitempty"`

	// Workload is the measured operation's name.
	Workload string `json:"workload"`

	// Counter is the platform counter name, e.g. "rdtscp".
	Counter string `json:"counter"`

	// Source is the timing capability in use.
	Source string `json:"source"`

	// Goroutines is how many independent windows were merged.
	Goroutines int `json:"goroutines"`

	// Calibration describes the tick-to-time conversion in effect.
	Calibration CalibrationReport `json:"calibration"`

	// ReadOverheadTicks is the estimated cost of one counter read.
	ReadOverheadTicks uint64 `json:"readOverheadTicks"`

	// Recorded is the number of completed measurement pairs.
	Recorded int `json:"recorded"`

	// CleanCount is the number of samples fed into analysis.
	CleanCount int `json:"cleanCount"`

	// DiscardedCount is the number of samples excluded by the jitter
	// classifier, broken down per cause in DiscardedByCause.
	DiscardedCount   int            `json:"discardedCount"`
	DiscardedByCause map[string]int `json:"discardedByCause,omitempty"`

	// Percentiles holds the exact nearest-rank values, in the order
	// they were requested.
	Percentiles []PercentileValue `json:"percentiles"`

	// Outliers is the top-K list in descending duration order.
	Outliers []OutlierValue `json:"outliers,omitempty"`

	// Summary is the HDR-histogram cross-check over the clean set.
	Summary stats.Summary `json:"summary"`

	StartTime time.Time     `json:"startTime"`
	Elapsed   time.Duration `json:"elapsed"`
}

// CalibrationReport is the calibration portion of a Report.
type CalibrationReport struct {
	TicksPerNano float64       `json:"ticksPerNano"`
	Provenance   string        `json:"provenance"`
	Stability    string        `json:"stability"`
	Interval     time.Duration `json:"interval,omitempty"`
	Convertible  bool          `json:"convertible"`
}

// PercentileValue is one requested percentile with its duration.
type PercentileValue struct {
	Percentile float64       `json:"percentile"`
	Ticks      uint64        `json:"ticks"`
	Duration   time.Duration `json:"duration,omitempty"`
	Converted  bool          `json:"converted"`
}

// OutlierValue is one top-K sample, retaining its sequence id.
type OutlierValue struct {
	Seq       int64         `json:"seq"`
	Ticks     uint64        `json:"ticks"`
	Duration  time.Duration `json:"duration,omitempty"`
	Converted bool          `json:"converted"`
}

func convertPercentile(p float64, ticks uint64, factor clock.CalibrationFactor) PercentileValue {
	v := PercentileValue{Percentile: p, Ticks: ticks}
	if d, err := factor.ToDuration(ticks); err == nil {
		v.Duration = d
		v.Converted = true
	}
	return v
}

func convertOutlier(s sample.Sample, factor clock.CalibrationFactor) OutlierValue {
	v := OutlierValue{Seq: s.Seq, Ticks: s.Ticks}
	if d, err := factor.ToDuration(s.Ticks); err == nil {
		v.Duration = d
		v.Converted = true
	}
	return v
}
