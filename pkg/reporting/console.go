package reporting

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/botforge/botwizard/internal/api"
)

// ConsoleReporter renders bot summaries as a table on stdout.
type ConsoleReporter struct{}

// NewConsoleReporter creates a console reporter.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{}
}

// Report prints the bots as a formatted table.
func (r *ConsoleReporter) Report(bots []api.BotSummary) error {
	if len(bots) == 0 {
		fmt.Println("No bots deployed yet.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Type", "Asset", "Broker", "Amount", "Period", "Repeat", "Status"})

	for _, b := range bots {
		t.AppendRow(table.Row{
			b.Identifier,
			b.BotName,
			b.BotType,
			b.Asset,
			b.Broker,
			fmt.Sprintf("$%.2f", b.Amount),
			b.Period,
			formatRepetition(b.Repetition),
			colorStatus(b.Status),
		})
	}

	t.Render()
	return nil
}

func formatRepetition(n int) string {
	if n == 0 {
		return "∞"
	}
	return fmt.Sprintf("%dx", n)
}

func colorStatus(status string) string {
	switch status {
	case "running":
		return text.FgGreen.Sprint(status)
	case "stopped":
		return text.FgRed.Sprint(status)
	default:
		return status
	}
}
