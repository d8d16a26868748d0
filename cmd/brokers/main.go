package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"

	"github.com/botforge/botwizard/internal/api"
	"github.com/botforge/botwizard/internal/broker"
	"github.com/botforge/botwizard/internal/config"
	"github.com/botforge/botwizard/internal/deploy"
)

func main() {
	var (
		envFile   = flag.String("env", ".env", "Environment file to load")
		list      = flag.Bool("list", false, "List connected brokers")
		available = flag.Bool("available", false, "List brokers the platform supports")
		connect   = flag.String("connect", "", "Connect a broker by name (keys from BROKER_API_KEY/BROKER_SECRET_KEY)")
		remove    = flag.String("delete", "", "Delete a broker by id or name")
		verify    = flag.Bool("verify", false, "Verify credentials before connecting")
	)
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("No environment file at %s, using system environment", *envFile)
	}
	cfg := config.Load()
	client := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.AuthToken)
	ctx := context.Background()

	switch {
	case *list:
		listBrokers(ctx, client)
	case *available:
		listAvailable(ctx, client)
	case *connect != "":
		connectBroker(ctx, client, cfg, *connect, *verify)
	case *remove != "":
		if err := client.DeleteBroker(ctx, *remove); err != nil {
			log.Fatalf("Failed to delete broker: %v", err)
		}
		fmt.Printf("🗑️  Broker %s deleted\n", *remove)
	default:
		flag.Usage()
	}
}

func listBrokers(ctx context.Context, client *api.Client) {
	brokers, err := client.ListBrokers(ctx)
	if err != nil {
		log.Fatalf("Failed to list brokers: %v", err)
	}
	if len(brokers) == 0 {
		fmt.Println("No brokers connected.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Test Mode"})
	for _, b := range brokers {
		t.AppendRow(table.Row{b.ID, b.Name, b.TestMode})
	}
	t.Render()
}

func listAvailable(ctx context.Context, client *api.Client) {
	names, err := client.ListAvailableBrokers(ctx)
	if err != nil {
		log.Fatalf("Failed to list available brokers: %v", err)
	}
	for _, name := range names {
		fmt.Println(name)
	}
}

func connectBroker(ctx context.Context, client *api.Client, cfg *config.Config, name string, verify bool) {
	apiKey := os.Getenv("BROKER_API_KEY")
	secretKey := os.Getenv("BROKER_SECRET_KEY")
	if apiKey == "" || secretKey == "" {
		log.Fatal("BROKER_API_KEY and BROKER_SECRET_KEY must be set")
	}

	if verify {
		balance, err := broker.NewBybitVerifier().VerifyCredentials(ctx, apiKey, secretKey, cfg.Broker.TestMode)
		if err != nil {
			log.Fatalf("Credential verification failed: %v", err)
		}
		fmt.Printf("✅ Credentials verified, balance: $%.2f\n", balance)
	}

	// Duplicate detection is by case-insensitive name only.
	existing, err := client.ListBrokers(ctx)
	if err != nil {
		log.Fatalf("Failed to list brokers: %v", err)
	}
	canonical := deploy.NormalizeBroker(name)
	for _, b := range existing {
		if b.Name == canonical {
			log.Fatalf("Broker %s is already connected", canonical)
		}
	}

	created, err := client.CreateBroker(ctx, api.Broker{
		Name:      canonical,
		APIKey:    apiKey,
		APISecret: secretKey,
		TestMode:  cfg.Broker.TestMode,
	})
	if err != nil {
		log.Fatalf("Failed to connect broker: %v", err)
	}
	fmt.Printf("🔗 Broker %s connected (id: %s)\n", created.Name, created.ID)
}
