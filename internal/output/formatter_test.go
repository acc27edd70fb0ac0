package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/wesleyorama2/ticktail/internal/harness"
	"github.com/wesleyorama2/ticktail/internal/stats"
)

func sampleReport() *harness.Report {
	return &harness.Report{
		Name:       "demo",
		Workload:   "append",
		Counter:    "rdtscp",
		Source:     "cycle-counter",
		Goroutines: 1,
		Calibration: harness.CalibrationReport{
			TicksPerNano: 2.4,
			Provenance:   "measured",
			Stability:    "invariant",
			Interval:     10 * time.Millisecond,
			Convertible:  true,
		},
		ReadOverheadTicks: 24,
		Recorded:          1000,
		CleanCount:        998,
		DiscardedCount:    2,
		DiscardedByCause:  map[string]int{"core-migration": 2},
		Percentiles: []harness.PercentileValue{
			{Percentile: 50, Ticks: 120, Duration: 50 * time.Nanosecond, Converted: true},
			{Percentile: 100, Ticks: 4800, Duration: 2 * time.Microsecond, Converted: true},
		},
		Outliers: []harness.OutlierValue{
			{Seq: 511, Ticks: 4800, Duration: 2 * time.Microsecond, Converted: true},
		},
		Summary: stats.Summary{Count: 998, Min: 100, Max: 4800, Mean: 130.5, StdDev: 42.1},
		Elapsed: 120 * time.Millisecond,
	}
}

func TestPrintReportText(t *testing.T) {
	var buf bytes.Buffer
	NewFormatter(&buf, true).PrintReport(sampleReport())
	out := buf.String()

	for _, want := range []string{
		"=== demo ===",
		"rdtscp",
		"Percentiles",
		"p50",
		"p100",
		"4800 ticks",
		"Top outliers",
		"seq=511",
		"core-migration",
		"998 clean",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintReportTicksOnly(t *testing.T) {
	r := sampleReport()
	r.Calibration.Convertible = false
	r.Percentiles = []harness.PercentileValue{{Percentile: 50, Ticks: 120}}

	var buf bytes.Buffer
	NewFormatter(&buf, true).PrintReport(r)
	if !strings.Contains(buf.String(), "not convertible") {
		t.Errorf("ticks-only report missing conversion notice:\n%s", buf.String())
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	var decoded harness.Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("report JSON does not parse: %v", err)
	}
	if decoded.Workload != "append" || decoded.Recorded != 1000 {
		t.Errorf("round trip lost fields: %+v", decoded)
	}
	if decoded.DiscardedByCause["core-migration"] != 2 {
		t.Error("cause breakdown lost in JSON")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Nanosecond, "500ns"},
		{1500 * time.Nanosecond, "1.50µs"},
		{2500 * time.Microsecond, "2.50ms"},
		{3 * time.Second, "3s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
