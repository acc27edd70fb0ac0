package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/ticktail/internal/config"
	"github.com/wesleyorama2/ticktail/internal/harness"
	"github.com/wesleyorama2/ticktail/internal/output"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a measurement and report tail-latency statistics",
	Long: `Execute one measurement run: calibrate the counter, time the workload
for the configured number of iterations, and report percentiles and
outliers over the clean samples.

Config file mode:
  ticktail run --config run.yaml

Quick CLI mode:
  ticktail run --workload append --count 1000000 \
    --percentiles 50,90,99,99.9,100 --outliers 10

Declared-rate mode (e.g. from a platform-reported frequency):
  ticktail run --mode declared --ghz 2.4
  ticktail run --mode declared --rate-from platform.json --rate-path cpu.tsc_ghz`,
	Run: func(cmd *cobra.Command, args []string) {
		runMeasurement(cmd, args)
	},
}

func runMeasurement(cmd *cobra.Command, args []string) {
	configFile, _ := cmd.Flags().GetString("config")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	outputPath, _ := cmd.Flags().GetString("output")
	quiet, _ := cmd.Flags().GetBool("quiet")
	noColor, _ := cmd.Flags().GetBool("no-color")

	var cfg *config.RunConfig
	var err error
	if configFile != "" {
		cfg, err = config.Load(configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg, err = buildConfigFromFlags(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building config: %v\n", err)
			os.Exit(1)
		}
	}

	runner, err := harness.NewRunner(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Ctrl-C aborts the run and discards partial data.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := runner.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Run failed: %v\n", err)
		os.Exit(1)
	}

	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		if err := output.WriteJSON(file, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
			os.Exit(1)
		}
	}

	if quiet {
		return
	}
	if jsonOutput {
		if err := output.WriteJSON(os.Stdout, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
			os.Exit(1)
		}
		return
	}

	formatter := output.NewFormatter(os.Stdout, noColor || !output.StdoutIsTerminal())
	formatter.PrintReport(report)
}

// buildConfigFromFlags assembles a RunConfig from CLI flags, starting
// from defaults so unset flags keep sensible values.
func buildConfigFromFlags(cmd *cobra.Command) (*config.RunConfig, error) {
	cfg := config.Default()

	if v, _ := cmd.Flags().GetString("name"); v != "" {
		cfg.Name = v
	}
	if v, _ := cmd.Flags().GetInt("count"); v != 0 {
		cfg.Count = v
	}
	if cmd.Flags().Changed("warmup") {
		cfg.Warmup, _ = cmd.Flags().GetInt("warmup")
	}
	if v, _ := cmd.Flags().GetString("percentiles"); v != "" {
		ps, err := parsePercentileList(v)
		if err != nil {
			return nil, err
		}
		cfg.Percentiles = ps
	}
	if cmd.Flags().Changed("outliers") {
		cfg.OutlierK, _ = cmd.Flags().GetInt("outliers")
	}
	if v, _ := cmd.Flags().GetInt("goroutines"); v != 0 {
		cfg.Goroutines = v
	}
	if cmd.Flags().Changed("pin") {
		cfg.Pin, _ = cmd.Flags().GetBool("pin")
	}
	if v, _ := cmd.Flags().GetString("clock"); v != "" {
		cfg.Clock = v
	}
	if v, _ := cmd.Flags().GetString("workload"); v != "" {
		cfg.Workload = v
	}
	if v, _ := cmd.Flags().GetString("mode"); v != "" {
		cfg.Calibration.Mode = v
	}
	if v, _ := cmd.Flags().GetFloat64("ghz"); v != 0 {
		cfg.Calibration.DeclaredGHz = v
	}
	if v, _ := cmd.Flags().GetString("stability"); v != "" {
		cfg.Calibration.Stability = v
	}
	if v, _ := cmd.Flags().GetString("interval"); v != "" {
		cfg.Calibration.Interval = v
	}

	rateFrom, _ := cmd.Flags().GetString("rate-from")
	if rateFrom != "" {
		ratePath, _ := cmd.Flags().GetString("rate-path")
		ghz, err := declaredRateFromFile(rateFrom, ratePath)
		if err != nil {
			return nil, err
		}
		cfg.Calibration.DeclaredGHz = ghz
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parsePercentileList parses "50,90,99.9" into float values.
func parsePercentileList(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid percentile %q: %w", part, err)
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no percentiles in %q", s)
	}
	return out, nil
}

func init() {
	runCmd.Flags().StringP("config", "c", "", "Config file (YAML or JSON)")
	runCmd.Flags().String("name", "", "Run name for the report")
	runCmd.Flags().IntP("count", "n", 0, "Measured iterations per goroutine")
	runCmd.Flags().Int("warmup", 0, "Unrecorded warmup iterations")
	runCmd.Flags().StringP("percentiles", "p", "", "Comma-separated percentiles in (0,100]")
	runCmd.Flags().IntP("outliers", "k", 0, "Top-K outliers to list")
	runCmd.Flags().IntP("goroutines", "g", 0, "Independent measuring goroutines")
	runCmd.Flags().Bool("pin", true, "Pin each measuring thread to a core")
	runCmd.Flags().String("clock", "", "Timing source: cycle or monotonic")
	runCmd.Flags().StringP("workload", "w", "", "Built-in workload: append or baseline")
	runCmd.Flags().String("mode", "", "Calibration mode: measured or declared")
	runCmd.Flags().Float64("ghz", 0, "Declared counter rate in GHz")
	runCmd.Flags().String("stability", "", "Declared counter stability class")
	runCmd.Flags().String("interval", "", "Measured calibration interval (e.g. 10ms)")
	runCmd.Flags().String("rate-from", "", "JSON file with a platform-reported rate")
	runCmd.Flags().String("rate-path", "cpu.tsc_ghz", "gjson path to the rate in GHz")
	runCmd.Flags().Bool("json", false, "Print the report as JSON")
	runCmd.Flags().StringP("output", "o", "", "Write the JSON report to a file")
	runCmd.Flags().BoolP("quiet", "q", false, "Suppress report output")
	runCmd.Flags().Bool("no-color", false, "Disable colored output")
}
