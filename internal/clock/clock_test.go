package clock

import "testing"

func TestStabilityString(t *testing.T) {
	cases := map[Stability]string{
		StabilityNonInvariant: "non-invariant",
		StabilityConstant:     "constant",
		StabilityInvariant:    "invariant",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("Stability(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func TestParseStability(t *testing.T) {
	for _, name := range []string{"non-invariant", "constant", "invariant"} {
		s, ok := ParseStability(name)
		if !ok {
			t.Fatalf("ParseStability(%q) not ok", name)
		}
		if s.String() != name {
			t.Errorf("round trip %q -> %q", name, s.String())
		}
	}
	if _, ok := ParseStability("bogus"); ok {
		t.Error("ParseStability accepted bogus class")
	}
}

func TestElapsed(t *testing.T) {
	tests := []struct {
		name      string
		start     Stamp
		stop      Stamp
		wantTicks uint64
		wantOK    bool
	}{
		{"same core", Stamp{100, 0}, Stamp{250, 0}, 150, true},
		{"zero delta", Stamp{100, 0}, Stamp{100, 0}, 0, true},
		{"core migration", Stamp{100, 0}, Stamp{250, 1}, 0, false},
		{"backward counter", Stamp{250, 0}, Stamp{100, 0}, 0, false},
		{"unknown cores", Stamp{100, -1}, Stamp{250, -1}, 150, true},
		{"one core unknown", Stamp{100, 2}, Stamp{250, -1}, 150, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks, ok := Elapsed(tt.start, tt.stop)
			if ticks != tt.wantTicks || ok != tt.wantOK {
				t.Errorf("Elapsed(%+v, %+v) = (%d, %v), want (%d, %v)",
					tt.start, tt.stop, ticks, ok, tt.wantTicks, tt.wantOK)
			}
		})
	}
}

func TestNewFallback(t *testing.T) {
	clk := NewFallback()
	if clk.Source() != SourceMonotonicFallback {
		t.Errorf("Source() = %v, want monotonic fallback", clk.Source())
	}
	if clk.Stability() != StabilityInvariant {
		t.Errorf("Stability() = %v, want invariant", clk.Stability())
	}
	if clk.Name() != "monotonic" {
		t.Errorf("Name() = %q", clk.Name())
	}
	if clk.FrequencyHz() != 1_000_000_000 {
		t.Errorf("FrequencyHz() = %d, want 1e9", clk.FrequencyHz())
	}
}

func TestFallbackPairOrdering(t *testing.T) {
	clk := NewFallback()
	for i := 0; i < 1000; i++ {
		start := clk.Start()
		stop := clk.Stop()
		if stop.Ticks < start.Ticks {
			t.Fatalf("monotonic source went backwards: %d -> %d", start.Ticks, stop.Ticks)
		}
	}
}

func TestReadOverheadFallback(t *testing.T) {
	clk := NewFallback()
	overhead := clk.ReadOverhead()
	// A single nanosecond-clock read pair costs well under a
	// millisecond even on a loaded machine.
	if overhead > 1_000_000 {
		t.Errorf("ReadOverhead() = %d ticks, implausibly large", overhead)
	}
}

func TestSourceString(t *testing.T) {
	if SourceInvariantCycleCounter.String() != "cycle-counter" {
		t.Error("unexpected cycle counter name")
	}
	if SourceMonotonicFallback.String() != "monotonic-fallback" {
		t.Error("unexpected fallback name")
	}
}
