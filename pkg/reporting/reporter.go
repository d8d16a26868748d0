// Package reporting exports deployed-bot configurations to the console
// and to CSV, JSON and Excel files.
package reporting

import "github.com/botforge/botwizard/internal/api"

// BotReporter writes a set of bot summaries to some output.
type BotReporter interface {
	Report(bots []api.BotSummary) error
}

// FileReporter writes a set of bot summaries to a file path.
type FileReporter interface {
	WriteFile(bots []api.BotSummary, path string) error
}
