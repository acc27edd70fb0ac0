package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/ticktail/internal/clock"
	"github.com/wesleyorama2/ticktail/internal/config"
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Measure the counter's tick rate and print the factor",
	Long: `Measure ticks per nanosecond against the OS wall clock and print the
resulting calibration factor with its stability classification and the
estimated counter-read overhead.`,
	Run: func(cmd *cobra.Command, args []string) {
		runCalibrate(cmd)
	},
}

func runCalibrate(cmd *cobra.Command) {
	intervalStr, _ := cmd.Flags().GetString("interval")
	useFallback, _ := cmd.Flags().GetBool("monotonic")

	interval, err := config.ParseDurationString(intervalStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var clk *clock.CycleClock
	if useFallback {
		clk = clock.NewFallback()
	} else {
		clk, err = clock.New()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	factor, err := clock.NewCalibrator(clk).Calibrate(interval)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Calibration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("counter:       %s (%s)\n", clk.Name(), clk.Source())
	fmt.Printf("rate:          %.6f ticks/ns (%.3f GHz)\n", factor.TicksPerNano, factor.TicksPerNano)
	fmt.Printf("provenance:    %s\n", factor.Provenance)
	fmt.Printf("stability:     %s\n", factor.Stability)
	fmt.Printf("interval:      %s\n", factor.Interval)
	fmt.Printf("read overhead: %d ticks\n", clk.ReadOverhead())
	if !factor.Convertible() {
		fmt.Println("note: counter is non-invariant; runs will report raw ticks only")
	}
}

func init() {
	calibrateCmd.Flags().String("interval", (10 * time.Millisecond).String(), "Calibration interval")
	calibrateCmd.Flags().Bool("monotonic", false, "Calibrate the monotonic fallback source")
}
