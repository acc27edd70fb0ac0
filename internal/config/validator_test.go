package config

import (
	"strings"
	"testing"
)

func validConfig() *RunConfig {
	return Default()
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunConfig)
		field  string
	}{
		{"zero count", func(c *RunConfig) { c.Count = 0 }, "count"},
		{"negative count", func(c *RunConfig) { c.Count = -5 }, "count"},
		{"negative warmup", func(c *RunConfig) { c.Warmup = -1 }, "warmup"},
		{"no percentiles", func(c *RunConfig) { c.Percentiles = nil }, "percentiles"},
		{"percentile zero", func(c *RunConfig) { c.Percentiles = []float64{0} }, "percentiles[0]"},
		{"percentile over 100", func(c *RunConfig) { c.Percentiles = []float64{50, 100.5} }, "percentiles[1]"},
		{"negative outlierK", func(c *RunConfig) { c.OutlierK = -1 }, "outlierK"},
		{"zero goroutines", func(c *RunConfig) { c.Goroutines = 0 }, "goroutines"},
		{"bad clock", func(c *RunConfig) { c.Clock = "sundial" }, "clock"},
		{"empty workload", func(c *RunConfig) { c.Workload = "" }, "workload"},
		{"bad mode", func(c *RunConfig) { c.Calibration.Mode = "guessed" }, "calibration.mode"},
		{"declared without rate", func(c *RunConfig) {
			c.Calibration.Mode = ModeDeclared
			c.Calibration.DeclaredGHz = 0
		}, "calibration.declaredGhz"},
		{"bad interval", func(c *RunConfig) { c.Calibration.Interval = "soon" }, "calibration.interval"},
		{"bad stability", func(c *RunConfig) { c.Calibration.Stability = "wobbly" }, "calibration.stability"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() passed, want error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not mention field %q", err.Error(), tt.field)
			}
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	cfg := validConfig()
	cfg.Percentiles = []float64{0.001, 50, 99.99, 100}
	cfg.Calibration.Mode = ModeDeclared
	cfg.Calibration.DeclaredGHz = 3.2
	cfg.Calibration.Stability = "constant"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestValidationErrorsCollectAll(t *testing.T) {
	cfg := validConfig()
	cfg.Count = 0
	cfg.OutlierK = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() passed, want errors")
	}
	verrs, ok := err.(*ValidationErrors)
	if !ok {
		t.Fatalf("error type %T, want *ValidationErrors", err)
	}
	if len(verrs.Errors) != 2 {
		t.Errorf("collected %d errors, want 2", len(verrs.Errors))
	}
}
