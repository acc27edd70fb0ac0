package config

import (
	"fmt"
	"strings"

	"github.com/wesleyorama2/ticktail/internal/clock"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Validate validates the entire run configuration.
//
// Returns nil if valid, or a ValidationErrors containing all
// validation errors.
func (c *RunConfig) Validate() error {
	errs := &ValidationErrors{}

	if c.Count <= 0 {
		errs.Add("count", "must be positive")
	}
	if c.Warmup < 0 {
		errs.Add("warmup", "must be non-negative")
	}
	if len(c.Percentiles) == 0 {
		errs.Add("percentiles", "at least one percentile is required")
	}
	for i, p := range c.Percentiles {
		if p <= 0 || p > 100 {
			errs.Add(fmt.Sprintf("percentiles[%d]", i), fmt.Sprintf("%v is outside (0, 100]", p))
		}
	}
	if c.OutlierK < 0 {
		errs.Add("outlierK", "must be non-negative")
	}
	if c.Goroutines < 1 {
		errs.Add("goroutines", "must be at least 1")
	}
	if c.Clock != ClockCycle && c.Clock != ClockMonotonic {
		errs.Add("clock", fmt.Sprintf("unknown clock source %q", c.Clock))
	}
	if c.Workload == "" {
		errs.Add("workload", "a workload name is required")
	}

	c.Calibration.validate(errs)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (cc *CalibrationConfig) validate(errs *ValidationErrors) {
	switch cc.Mode {
	case ModeMeasured:
		if _, err := ParseDurationString(cc.Interval); err != nil {
			errs.Add("calibration.interval", err.Error())
		}
	case ModeDeclared:
		if cc.DeclaredGHz <= 0 {
			errs.Add("calibration.declaredGhz", "declared mode requires a positive rate")
		}
	default:
		errs.Add("calibration.mode", fmt.Sprintf("unknown mode %q", cc.Mode))
	}

	if cc.Stability != "" {
		if _, ok := clock.ParseStability(cc.Stability); !ok {
			errs.Add("calibration.stability", fmt.Sprintf("unknown stability class %q", cc.Stability))
		}
	}
}
