package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/botforge/botwizard/internal/api"
)

// CSVReporter writes bot summaries to a CSV file.
type CSVReporter struct{}

// NewCSVReporter creates a CSV reporter.
func NewCSVReporter() *CSVReporter {
	return &CSVReporter{}
}

// WriteFile writes the bots to path. Paths ending in .xlsx are
// delegated to the Excel reporter.
func (r *CSVReporter) WriteFile(bots []api.BotSummary, path string) error {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return NewExcelReporter().WriteFile(bots, path)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{
		"Identifier",
		"Bot_Name",
		"Bot_Type",
		"Asset",
		"Broker",
		"Amount_USD",
		"Period",
		"Repetition",
		"Status",
	}); err != nil {
		return err
	}

	for _, b := range bots {
		if err := w.Write([]string{
			b.Identifier,
			b.BotName,
			b.BotType,
			b.Asset,
			b.Broker,
			strconv.FormatFloat(b.Amount, 'f', 2, 64),
			b.Period,
			strconv.Itoa(b.Repetition),
			b.Status,
		}); err != nil {
			return err
		}
	}

	return nil
}
