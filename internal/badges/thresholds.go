package badges

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Thresholds holds the tunable numbers behind the default catalog. They
// are deployment configuration, not code; the shipped defaults are only
// a sensible starting point.
type Thresholds struct {
	DedicatedCompletions int     `json:"dedicated_completions"`
	MasterCompletions    int     `json:"master_completions"`
	SharpAccuracy        float64 `json:"sharp_accuracy"`
	SharpMinResponses    int     `json:"sharp_min_responses"`
	SparkStreakDays      int     `json:"spark_streak_days"`
	WeekStreakDays       int     `json:"week_streak_days"`
}

// DefaultThresholds returns the built-in tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DedicatedCompletions: 10,
		MasterCompletions:    50,
		SharpAccuracy:        0.9,
		SharpMinResponses:    20,
		SparkStreakDays:      3,
		WeekStreakDays:       7,
	}
}

const thresholdsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "dedicated_completions": {"type": "integer", "minimum": 1},
    "master_completions": {"type": "integer", "minimum": 1},
    "sharp_accuracy": {"type": "number", "exclusiveMinimum": 0, "maximum": 1},
    "sharp_min_responses": {"type": "integer", "minimum": 1},
    "spark_streak_days": {"type": "integer", "minimum": 1},
    "week_streak_days": {"type": "integer", "minimum": 1}
  }
}`

// ParseThresholds overlays a JSON thresholds document onto the defaults.
// The document is validated against a schema first and rejected whole on
// any unexpected shape; a partial document only overrides the keys it
// names.
func ParseThresholds(data []byte) (Thresholds, error) {
	schema, err := jsonschema.CompileString("thresholds.schema.json", thresholdsSchema)
	if err != nil {
		return Thresholds{}, fmt.Errorf("compile thresholds schema: %w", err)
	}

	var document any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&document); err != nil {
		return Thresholds{}, fmt.Errorf("invalid thresholds json: %w", err)
	}

	if err := schema.Validate(document); err != nil {
		return Thresholds{}, fmt.Errorf("thresholds config rejected: %w", err)
	}

	t := DefaultThresholds()
	if err := json.Unmarshal(data, &t); err != nil {
		return Thresholds{}, fmt.Errorf("decode thresholds: %w", err)
	}

	return t, nil
}

// LoadThresholds reads a thresholds file from disk. An empty path means
// "use the defaults".
func LoadThresholds(path string) (Thresholds, error) {
	if path == "" {
		return DefaultThresholds(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Thresholds{}, fmt.Errorf("read thresholds file: %w", err)
	}

	return ParseThresholds(data)
}
