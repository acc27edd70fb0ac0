package clock

import "errors"

// Sentinel errors returned by clock construction and calibration.
var (
	// ErrUnsupportedHardware is returned when the platform has no usable
	// monotonic cycle counter. There is no silent fallback: callers that
	// can live with coarser timing must select SourceMonotonicFallback
	// explicitly.
	ErrUnsupportedHardware = errors.New("clock: no usable hardware cycle counter")

	// ErrCalibrationUnreliable is returned when a tick value cannot be
	// converted to wall-clock units because the counter's rate is not
	// stable enough to trust the conversion factor.
	ErrCalibrationUnreliable = errors.New("clock: counter rate not stable enough for time conversion")

	// ErrCalibrationNoisy is returned when repeated calibration attempts
	// disagree beyond tolerance even after widening the interval.
	ErrCalibrationNoisy = errors.New("clock: calibration measurements too noisy")

	// ErrDeclaredRateInvalid is returned when an operator-declared
	// conversion rate is zero, negative, or otherwise unusable.
	ErrDeclaredRateInvalid = errors.New("clock: declared rate must be positive")
)
