package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wesleyorama2/ticktail/internal/config"
)

func TestParsePercentileList(t *testing.T) {
	tests := []struct {
		in      string
		want    []float64
		wantErr bool
	}{
		{"50,90,99.9", []float64{50, 90, 99.9}, false},
		{" 50 , 100 ", []float64{50, 100}, false},
		{"99.99", []float64{99.99}, false},
		{"fast", nil, true},
		{",,", nil, true},
	}
	for _, tt := range tests {
		got, err := parsePercentileList(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parsePercentileList(%q) passed, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parsePercentileList(%q) error: %v", tt.in, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parsePercentileList(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parsePercentileList(%q)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestDeclaredRateFromJSON(t *testing.T) {
	data := []byte(`{"cpu": {"model": "test", "tsc_ghz": 2.419, "cores": 8}}`)

	ghz, err := declaredRateFromJSON(data, "cpu.tsc_ghz")
	if err != nil {
		t.Fatalf("declaredRateFromJSON error: %v", err)
	}
	if ghz != 2.419 {
		t.Errorf("rate = %v, want 2.419", ghz)
	}

	if _, err := declaredRateFromJSON(data, "cpu.missing"); err == nil {
		t.Error("missing path accepted")
	}
	if _, err := declaredRateFromJSON(data, "cpu.cores.bogus"); err == nil {
		t.Error("non-numeric path accepted")
	}
	if _, err := declaredRateFromJSON([]byte("not json"), "cpu.tsc_ghz"); err == nil {
		t.Error("invalid JSON accepted")
	}
	if _, err := declaredRateFromJSON([]byte(`{"cpu":{"tsc_ghz": -1}}`), "cpu.tsc_ghz"); err == nil {
		t.Error("negative rate accepted")
	}
}

func TestDeclaredRateFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platform.json")
	if err := os.WriteFile(path, []byte(`{"cpu":{"tsc_ghz": 3.0}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	ghz, err := declaredRateFromFile(path, "cpu.tsc_ghz")
	if err != nil {
		t.Fatalf("declaredRateFromFile error: %v", err)
	}
	if ghz != 3.0 {
		t.Errorf("rate = %v, want 3.0", ghz)
	}

	if _, err := declaredRateFromFile(filepath.Join(t.TempDir(), "nope.json"), "x"); err == nil {
		t.Error("missing file accepted")
	}
}

// setRunFlags sets flags on the shared run command and restores their
// default value and Changed state when the test finishes.
func setRunFlags(t *testing.T, kv map[string]string) {
	t.Helper()
	flags := runCmd.Flags()
	for name, value := range kv {
		f := flags.Lookup(name)
		if f == nil {
			t.Fatalf("unknown flag %q", name)
		}
		if err := flags.Set(name, value); err != nil {
			t.Fatalf("setting --%s=%s: %v", name, value, err)
		}
		t.Cleanup(func() {
			if err := f.Value.Set(f.DefValue); err != nil {
				t.Errorf("restoring --%s: %v", name, err)
			}
			f.Changed = false
		})
	}
}

func TestBuildConfigFromFlags(t *testing.T) {
	setRunFlags(t, map[string]string{
		"count":       "5000",
		"percentiles": "50,99",
		"outliers":    "7",
		"clock":       "monotonic",
		"workload":    "baseline",
		"mode":        "declared",
		"ghz":         "2.4",
	})

	cfg, err := buildConfigFromFlags(runCmd)
	if err != nil {
		t.Fatalf("buildConfigFromFlags error: %v", err)
	}
	if cfg.Count != 5000 {
		t.Errorf("Count = %d, want 5000", cfg.Count)
	}
	if len(cfg.Percentiles) != 2 || cfg.Percentiles[1] != 99 {
		t.Errorf("Percentiles = %v", cfg.Percentiles)
	}
	if cfg.OutlierK != 7 {
		t.Errorf("OutlierK = %d, want 7", cfg.OutlierK)
	}
	if cfg.Clock != config.ClockMonotonic {
		t.Errorf("Clock = %q", cfg.Clock)
	}
	if cfg.Workload != "baseline" {
		t.Errorf("Workload = %q", cfg.Workload)
	}
	if cfg.Calibration.Mode != config.ModeDeclared || cfg.Calibration.DeclaredGHz != 2.4 {
		t.Errorf("Calibration = %+v", cfg.Calibration)
	}
	// Unset flags keep defaults.
	if cfg.Warmup != config.Default().Warmup {
		t.Errorf("Warmup = %d, want default", cfg.Warmup)
	}
}

func TestBuildConfigFromFlagsRejectsBadPercentiles(t *testing.T) {
	setRunFlags(t, map[string]string{"percentiles": "50,oops"})

	if _, err := buildConfigFromFlags(runCmd); err == nil {
		t.Fatal("bad percentile list accepted")
	}
}
