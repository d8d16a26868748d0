package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"github.com/botforge/botwizard/internal/api"
	"github.com/botforge/botwizard/internal/config"
	"github.com/botforge/botwizard/pkg/reporting"
)

func main() {
	var (
		envFile = flag.String("env", ".env", "Environment file to load")
		export  = flag.String("export", "", "Export bots to a file (.csv, .json or .xlsx)")
	)
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("No environment file at %s, using system environment", *envFile)
	}
	cfg := config.Load()
	client := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.AuthToken)

	bots, err := client.ListBots(context.Background())
	if err != nil {
		log.Fatalf("Failed to list bots: %v", err)
	}

	if *export == "" {
		if err := reporting.NewConsoleReporter().Report(bots); err != nil {
			log.Fatalf("Failed to render bots: %v", err)
		}
		return
	}

	var reporter reporting.FileReporter
	switch {
	case strings.HasSuffix(strings.ToLower(*export), ".json"):
		reporter = reporting.NewJSONReporter()
	case strings.HasSuffix(strings.ToLower(*export), ".xlsx"):
		reporter = reporting.NewExcelReporter()
	default:
		reporter = reporting.NewCSVReporter()
	}

	if err := reporter.WriteFile(bots, *export); err != nil {
		log.Fatalf("Failed to export bots: %v", err)
	}
	fmt.Printf("📄 Exported %d bots to %s\n", len(bots), *export)
}
