// Package output renders run reports as colored text or JSON. It is
// a consumer of reports, deliberately separate from the harness that
// produces them.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/wesleyorama2/ticktail/internal/harness"
)

// Formatter writes reports to a writer with an optional color scheme.
type Formatter struct {
	w      io.Writer
	scheme *ColorScheme
}

// NewFormatter creates a formatter. noColor disables ANSI codes, as
// does a non-terminal stdout when the caller passes that through.
func NewFormatter(w io.Writer, noColor bool) *Formatter {
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &Formatter{w: w, scheme: scheme}
}

// PrintReport renders the full run report as text.
func (f *Formatter) PrintReport(r *harness.Report) {
	title := r.Name
	if title == "" {
		title = r.Workload
	}
	fmt.Fprintf(f.w, "%s\n", f.scheme.Title.Sprintf("=== %s ===", title))

	f.kv("workload", r.Workload)
	f.kv("counter", fmt.Sprintf("%s (%s)", r.Counter, r.Source))
	f.kv("goroutines", fmt.Sprintf("%d", r.Goroutines))
	f.printCalibration(&r.Calibration)
	f.kv("read overhead", fmt.Sprintf("%d ticks", r.ReadOverheadTicks))
	f.kv("samples", fmt.Sprintf("%d recorded, %d clean, %d discarded",
		r.Recorded, r.CleanCount, r.DiscardedCount))
	for cause, n := range r.DiscardedByCause {
		fmt.Fprintf(f.w, "    %s %s\n",
			f.scheme.Warn.Sprintf("%6d", n), f.scheme.Muted.Sprint(cause))
	}

	fmt.Fprintf(f.w, "\n%s\n", f.scheme.Title.Sprint("Percentiles"))
	for _, p := range r.Percentiles {
		if p.Converted {
			fmt.Fprintf(f.w, "  %s %s  %s\n",
				f.scheme.Label.Sprintf("p%-6g", p.Percentile),
				f.scheme.Value.Sprintf("%12d ticks", p.Ticks),
				f.scheme.Good.Sprint(formatDuration(p.Duration)))
		} else {
			fmt.Fprintf(f.w, "  %s %s  %s\n",
				f.scheme.Label.Sprintf("p%-6g", p.Percentile),
				f.scheme.Value.Sprintf("%12d ticks", p.Ticks),
				f.scheme.Muted.Sprint("(not convertible)"))
		}
	}

	if len(r.Outliers) > 0 {
		fmt.Fprintf(f.w, "\n%s\n", f.scheme.Title.Sprint("Top outliers"))
		for i, o := range r.Outliers {
			line := fmt.Sprintf("  #%-3d seq=%-10d %12d ticks", i+1, o.Seq, o.Ticks)
			if o.Converted {
				line += "  " + formatDuration(o.Duration)
			}
			fmt.Fprintf(f.w, "%s\n", f.scheme.Outlier.Sprint(line))
		}
	}

	fmt.Fprintf(f.w, "\n%s\n", f.scheme.Title.Sprint("Histogram summary (approximate)"))
	f.kv("count", fmt.Sprintf("%d", r.Summary.Count))
	f.kv("min/max", fmt.Sprintf("%d / %d ticks", r.Summary.Min, r.Summary.Max))
	f.kv("mean/stddev", fmt.Sprintf("%.1f / %.1f ticks", r.Summary.Mean, r.Summary.StdDev))
	f.kv("elapsed", r.Elapsed.Round(time.Millisecond).String())
}

func (f *Formatter) printCalibration(c *harness.CalibrationReport) {
	desc := fmt.Sprintf("%.4f ticks/ns (%s, %s)", c.TicksPerNano, c.Provenance, c.Stability)
	if !c.Convertible {
		desc += " " + f.scheme.Warn.Sprint("ticks only")
	}
	f.kv("calibration", desc)
}

func (f *Formatter) kv(label, value string) {
	fmt.Fprintf(f.w, "  %s %s\n",
		f.scheme.Label.Sprintf("%-14s", label+":"), f.scheme.Value.Sprint(value))
}

// formatDuration renders sub-microsecond values without losing
// precision the way Duration.String rounds them.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fµs", float64(d.Nanoseconds())/1e3)
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	default:
		return d.String()
	}
}

// WriteJSON renders the report as indented JSON.
func WriteJSON(w io.Writer, r *harness.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
