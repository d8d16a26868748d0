package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/botforge/botwizard/internal/api"
)

// JSONReporter writes bot summaries as indented JSON.
type JSONReporter struct{}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{}
}

// WriteFile writes the bots to a JSON file, creating parent directories
// as needed.
func (r *JSONReporter) WriteFile(bots []api.BotSummary, path string) error {
	data, err := json.MarshalIndent(bots, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bots: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return os.WriteFile(path, data, 0644)
}
