// Package config provides parsing and validation for measurement run
// configuration.
package config

// RunConfig is the root configuration for one measurement run.
//
// Example YAML:
//
//	name: "append tail latency"
//	count: 1000000
//	warmup: 10000
//	percentiles: [50, 90, 99, 99.9, 100]
//	outlierK: 10
//	goroutines: 1
//	pin: true
//	calibration:
//	  mode: measured
//	  interval: 10ms
type RunConfig struct {
	// Name of the run (for reporting)
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Count is the number of measured iterations per goroutine. The
	// recorder is pre-sized to this before the window opens.
	Count int `json:"count" yaml:"count"`

	// Warmup is the number of unrecorded iterations run first.
	Warmup int `json:"warmup,omitempty" yaml:"warmup,omitempty"`

	// Percentiles to report, each in (0, 100].
	Percentiles []float64 `json:"percentiles,omitempty" yaml:"percentiles,omitempty"`

	// OutlierK is how many top outliers to list.
	OutlierK int `json:"outlierK,omitempty" yaml:"outlierK,omitempty"`

	// Goroutines is the number of independent measuring goroutines,
	// each with a private clock and recorder.
	Goroutines int `json:"goroutines,omitempty" yaml:"goroutines,omitempty"`

	// Pin pins each measuring thread to its own core.
	Pin bool `json:"pin,omitempty" yaml:"pin,omitempty"`

	// Clock selects the timing source: "cycle" or "monotonic".
	Clock string `json:"clock,omitempty" yaml:"clock,omitempty"`

	// Workload names the built-in operation to measure.
	Workload string `json:"workload,omitempty" yaml:"workload,omitempty"`

	// Calibration controls how ticks are converted to time units.
	Calibration CalibrationConfig `json:"calibration,omitempty" yaml:"calibration,omitempty"`
}

// CalibrationConfig selects measured or declared calibration.
type CalibrationConfig struct {
	// Mode is "measured" or "declared".
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty"`

	// DeclaredGHz is the operator-declared counter rate in GHz
	// (ticks per nanosecond). Required in declared mode.
	DeclaredGHz float64 `json:"declaredGhz,omitempty" yaml:"declaredGhz,omitempty"`

	// Stability optionally overrides the stability classification of
	// a declared rate: "invariant", "constant" or "non-invariant".
	// Empty means the detected classification is kept.
	Stability string `json:"stability,omitempty" yaml:"stability,omitempty"`

	// Interval is the wall interval for measured calibration
	// (e.g. "10ms").
	Interval string `json:"interval,omitempty" yaml:"interval,omitempty"`
}

// Clock source names accepted in RunConfig.Clock.
const (
	ClockCycle     = "cycle"
	ClockMonotonic = "monotonic"
)

// Calibration modes accepted in CalibrationConfig.Mode.
const (
	ModeMeasured = "measured"
	ModeDeclared = "declared"
)

// Default returns a RunConfig with sensible defaults for a single
// pinned measurement run.
func Default() *RunConfig {
	return &RunConfig{
		Count:       100000,
		Warmup:      1000,
		Percentiles: []float64{50, 90, 99, 99.9, 100},
		OutlierK:    10,
		Goroutines:  1,
		Pin:         true,
		Clock:       ClockCycle,
		Workload:    "append",
		Calibration: CalibrationConfig{
			Mode:     ModeMeasured,
			Interval: "10ms",
		},
	}
}

// runConfigSchema is the structural schema applied before semantic
// validation, so a mistyped document fails with a field path instead
// of a zero value.
const runConfigSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string"},
    "count": {"type": "integer"},
    "warmup": {"type": "integer"},
    "percentiles": {
      "type": "array",
      "items": {"type": "number"}
    },
    "outlierK": {"type": "integer"},
    "goroutines": {"type": "integer"},
    "pin": {"type": "boolean"},
    "clock": {"type": "string", "enum": ["cycle", "monotonic"]},
    "workload": {"type": "string"},
    "calibration": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "mode": {"type": "string", "enum": ["measured", "declared"]},
        "declaredGhz": {"type": "number"},
        "stability": {
          "type": "string",
          "enum": ["invariant", "constant", "non-invariant"]
        },
        "interval": {"type": "string"}
      }
    }
  }
}`
