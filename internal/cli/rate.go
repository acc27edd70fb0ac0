package cli

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// declaredRateFromFile extracts a counter rate in GHz from a
// platform-reported JSON log, e.g. a firmware or powermetrics dump.
// The harness never derives the rate itself; it only consumes the
// value at the given path.
func declaredRateFromFile(path, ratePath string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read rate file: %w", err)
	}
	return declaredRateFromJSON(data, ratePath)
}

func declaredRateFromJSON(data []byte, ratePath string) (float64, error) {
	if !gjson.ValidBytes(data) {
		return 0, fmt.Errorf("rate file is not valid JSON")
	}
	result := gjson.GetBytes(data, ratePath)
	if !result.Exists() {
		return 0, fmt.Errorf("no value at path %q", ratePath)
	}
	ghz := result.Float()
	if ghz <= 0 {
		return 0, fmt.Errorf("rate at %q must be positive, got %v", ratePath, result.String())
	}
	return ghz, nil
}
