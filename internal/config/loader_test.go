package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "run.yaml", `
name: "append tail latency"
count: 5000
warmup: 100
percentiles: [50, 99, 100]
outlierK: 5
goroutines: 2
pin: false
clock: monotonic
calibration:
  mode: measured
  interval: 5ms
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "append tail latency", cfg.Name)
	assert.Equal(t, 5000, cfg.Count)
	assert.Equal(t, 100, cfg.Warmup)
	assert.Equal(t, []float64{50, 99, 100}, cfg.Percentiles)
	assert.Equal(t, 5, cfg.OutlierK)
	assert.Equal(t, 2, cfg.Goroutines)
	assert.False(t, cfg.Pin)
	assert.Equal(t, ClockMonotonic, cfg.Clock)
	assert.Equal(t, ModeMeasured, cfg.Calibration.Mode)
	assert.Equal(t, "5ms", cfg.Calibration.Interval)
	// Defaults survive for fields the file omits.
	assert.Equal(t, "append", cfg.Workload)
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "run.json", `{
		"count": 1000,
		"calibration": {"mode": "declared", "declaredGhz": 2.4}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Count)
	assert.Equal(t, ModeDeclared, cfg.Calibration.Mode)
	assert.Equal(t, 2.4, cfg.Calibration.DeclaredGHz)
}

func TestLoadRejectsUnknownField(t *testing.T) {
	path := writeFile(t, "run.yaml", `
count: 1000
measurments: 5
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestLoadRejectsWrongType(t *testing.T) {
	path := writeFile(t, "run.yaml", `count: "lots"`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsInvalidSemantics(t *testing.T) {
	path := writeFile(t, "run.yaml", `
count: 1000
percentiles: [0, 101]
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "percentiles")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestParseDurationString(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"10ms", 10 * time.Millisecond, false},
		{"1s", time.Second, false},
		{"", 0, false},
		{"25", 25 * time.Millisecond, false},
		{"fast", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDurationString(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}
