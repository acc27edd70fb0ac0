package cli

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/ticktail/internal/affinity"
	"github.com/wesleyorama2/ticktail/internal/clock"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the platform's timing capabilities",
	Run: func(cmd *cobra.Command, args []string) {
		clk, err := clock.New()
		switch {
		case errors.Is(err, clock.ErrUnsupportedHardware):
			fmt.Println("cycle counter: unsupported (monotonic fallback available)")
		case err != nil:
			fmt.Printf("cycle counter: error: %v\n", err)
		default:
			fmt.Printf("cycle counter: %s\n", clk.Name())
			fmt.Printf("stability:     %s\n", clk.Stability())
			if hz := clk.FrequencyHz(); hz != 0 {
				fmt.Printf("frequency:     %d Hz (platform-reported)\n", hz)
			} else {
				fmt.Println("frequency:     not reported; use 'ticktail calibrate'")
			}
		}
		fmt.Printf("cores:         %d\n", runtime.NumCPU())
		fmt.Printf("pinning:       supported=%v\n", affinity.Supported())
	},
}
