// Package harness orchestrates one measurement run: calibration, the
// pinned measurement window, jitter classification, and analysis.
//
// # Concurrency model
//
// A single goroutine drives each window. Every measuring goroutine
// owns a private CycleClock and Recorder; there is no shared mutable
// state while any window is open. Calibration completes before the
// first window opens and is read-only afterwards. Windows are merged
// only after all of them have closed.
package harness

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/wesleyorama2/ticktail/internal/affinity"
	"github.com/wesleyorama2/ticktail/internal/clock"
	"github.com/wesleyorama2/ticktail/internal/config"
	"github.com/wesleyorama2/ticktail/internal/jitter"
	"github.com/wesleyorama2/ticktail/internal/sample"
	"github.com/wesleyorama2/ticktail/internal/stats"
	"github.com/wesleyorama2/ticktail/internal/workload"
)

// ErrUnmergeable is returned when multiple goroutine windows cannot
// be combined: cross-core tick deltas are only comparable when the
// counter is invariant and every window shares one calibration.
var ErrUnmergeable = errors.New("harness: windows are not merge-compatible")

// window is one goroutine's finalized measurement together with the
// calibration factor it was measured under.
type window struct {
	set    *sample.Set
	factor clock.CalibrationFactor
}

// mergeWindows combines per-goroutine windows, refusing when any
// window carries a different calibration factor than the first.
func mergeWindows(windows []window) (*sample.Set, error) {
	sets := make([]*sample.Set, len(windows))
	for i, w := range windows {
		if !w.factor.Same(windows[0].factor) {
			return nil, ErrUnmergeable
		}
		sets[i] = w.set
	}
	return sample.Merge(sets...), nil
}

// Runner executes one measurement run to completion.
type Runner struct {
	cfg *config.RunConfig

	// interrupted is an optional externally supplied
	// scheduler-interruption signal, keyed by sequence id.
	interrupted func(seq int64) bool
}

// NewRunner validates the configuration and returns a Runner.
func NewRunner(cfg *config.RunConfig) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg}, nil
}

// SetInterruptedSignal installs an external contamination signal
// consulted during classification. Must be called before Run.
func (r *Runner) SetInterruptedSignal(fn func(seq int64) bool) {
	r.interrupted = fn
}

// newClock builds the configured timing source. Hardware
// incapability is fatal for the run; the monotonic fallback is only
// used when the operator selected it.
func (r *Runner) newClock() (*clock.CycleClock, error) {
	if r.cfg.Clock == config.ClockMonotonic {
		return clock.NewFallback(), nil
	}
	return clock.New()
}

// calibrate establishes the run's conversion factor per the
// configured mode. A noisy measured calibration falls back to the
// declared rate when one is configured.
func (r *Runner) calibrate(clk *clock.CycleClock) (clock.CalibrationFactor, error) {
	cal := clock.NewCalibrator(clk)
	cc := r.cfg.Calibration

	declared := func() (clock.CalibrationFactor, error) {
		stability := clk.Stability()
		if cc.Stability != "" {
			if s, ok := clock.ParseStability(cc.Stability); ok {
				stability = s
			}
		}
		return cal.Declared(cc.DeclaredGHz, stability)
	}

	if cc.Mode == config.ModeDeclared {
		return declared()
	}

	interval, err := config.ParseDurationString(cc.Interval)
	if err != nil {
		return clock.CalibrationFactor{}, err
	}
	factor, err := cal.Calibrate(interval)
	if errors.Is(err, clock.ErrCalibrationNoisy) && cc.DeclaredGHz > 0 {
		return declared()
	}
	return factor, err
}

// Run executes the measurement run. Cancelling ctx before the windows
// close aborts the run and discards all partial data.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	cfg := r.cfg
	startTime := time.Now()

	clk, err := r.newClock()
	if err != nil {
		return nil, err
	}
	if cfg.Goroutines > 1 &&
		clk.Source() == clock.SourceInvariantCycleCounter &&
		clk.Stability() != clock.StabilityInvariant {
		return nil, ErrUnmergeable
	}

	factor, err := r.calibrate(clk)
	if err != nil {
		return nil, fmt.Errorf("calibration failed: %w", err)
	}
	readOverhead := clk.ReadOverhead()

	// One window per goroutine, merged only after every window closed.
	windows := make([]window, cfg.Goroutines)
	errs := make([]error, cfg.Goroutines)
	var wg sync.WaitGroup
	for g := 0; g < cfg.Goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			windows[g], errs[g] = r.measure(ctx, g, factor)
		}(g)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged, err := mergeWindows(windows)
	if err != nil {
		return nil, err
	}
	cls := jitter.Classify(merged, r.interrupted)
	clean := sample.FromSamples(cls.Clean)

	analyzer, err := stats.NewAnalyzer(clean)
	if err != nil {
		return nil, err
	}
	summary, err := stats.Summarize(clean)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Name:       cfg.Name,
		Workload:   cfg.Workload,
		Counter:    clk.Name(),
		Source:     clk.Source().String(),
		Goroutines: cfg.Goroutines,
		Calibration: CalibrationReport{
			TicksPerNano: factor.TicksPerNano,
			Provenance:   factor.Provenance.String(),
			Stability:    factor.Stability.String(),
			Interval:     factor.Interval,
			Convertible:  factor.Convertible(),
		},
		ReadOverheadTicks: readOverhead,
		Recorded:          merged.Len(),
		CleanCount:        len(cls.Clean),
		DiscardedCount:    len(cls.Discarded),
		DiscardedByCause:  causeCounts(&cls),
		Summary:           summary,
		StartTime:         startTime,
		Elapsed:           time.Since(startTime),
	}

	for _, p := range cfg.Percentiles {
		ticks, err := analyzer.Percentile(p)
		if err != nil {
			return nil, err
		}
		report.Percentiles = append(report.Percentiles, convertPercentile(p, ticks, factor))
	}

	top, err := analyzer.TopK(cfg.OutlierK)
	if err != nil {
		return nil, err
	}
	for _, s := range top {
		report.Outliers = append(report.Outliers, convertOutlier(s, factor))
	}

	return report, nil
}

// measure runs one goroutine's window: lock the thread, pin it,
// warm up, then the closed measurement loop. The recorder is sized
// before the window opens; the loop itself never allocates.
func (r *Runner) measure(ctx context.Context, g int, factor clock.CalibrationFactor) (window, error) {
	cfg := r.cfg

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if cfg.Pin {
		if affinity.Supported() {
			if err := affinity.Pin(g % runtime.NumCPU()); err != nil {
				return window{}, fmt.Errorf("pinning goroutine %d: %w", g, err)
			}
		} else if cfg.Goroutines > 1 {
			return window{}, fmt.Errorf("pinning requested but unsupported on this platform")
		}
	}

	clk, err := r.newClock()
	if err != nil {
		return window{}, err
	}
	w, err := workload.New(cfg.Workload)
	if err != nil {
		return window{}, err
	}
	rec, err := sample.NewRecorder(cfg.Count)
	if err != nil {
		return window{}, err
	}

	w.Setup(cfg.Warmup + cfg.Count)
	defer w.Teardown()

	for i := 0; i < cfg.Warmup; i++ {
		w.Step(i)
	}

	base := int64(g) * int64(cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		// Cancellation is polled sparsely to keep it off the hot path.
		if i&1023 == 0 && ctx.Err() != nil {
			rec.Abort()
			return window{}, ctx.Err()
		}
		start := clk.Start()
		w.Step(cfg.Warmup + i)
		stop := clk.Stop()
		ticks, ok := clock.Elapsed(start, stop)
		if err := rec.Record(ticks, base+int64(i), !ok); err != nil {
			return window{}, err
		}
	}

	return window{set: rec.Finalize(), factor: factor}, nil
}

func causeCounts(cls *jitter.Classification) map[string]int {
	counts := make(map[string]int)
	for cause, n := range cls.CountByCause() {
		counts[string(cause)] = n
	}
	return counts
}
