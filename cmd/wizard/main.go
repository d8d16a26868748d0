package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/botforge/botwizard/internal/api"
	"github.com/botforge/botwizard/internal/broker"
	"github.com/botforge/botwizard/internal/config"
	"github.com/botforge/botwizard/internal/deploy"
	"github.com/botforge/botwizard/internal/logger"
	"github.com/botforge/botwizard/internal/monitoring"
	"github.com/botforge/botwizard/internal/session"
	"github.com/botforge/botwizard/internal/storage"
	"github.com/botforge/botwizard/internal/wizard"
)

func main() {
	envFile := flag.String("env", ".env", "Environment file to load")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("No environment file at %s, using system environment", *envFile)
	}

	cfg := config.Load()

	store, err := storage.Open(cfg.Storage.StatePath)
	if err != nil {
		log.Fatalf("Failed to open state store: %v", err)
	}

	sessionLog, err := logger.NewLogger(time.Now().Format("150405"))
	if err != nil {
		log.Fatalf("Failed to open session log: %v", err)
	}
	defer sessionLog.Close()

	backend := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.AuthToken)
	sess := session.New(backend, broker.NewBybitVerifier(), store)

	health := monitoring.NewHealthChecker()
	go serveMonitoring(cfg, health)

	ctx := context.Background()
	err = sess.RefreshBrokers(ctx)
	health.SetBackendOK(err == nil)
	if err != nil {
		log.Printf("Could not load connected brokers: %v", err)
	}

	runWizard(ctx, sess, sessionLog, cfg, health)
}

func runWizard(ctx context.Context, sess *session.Session, sessionLog *logger.Logger, cfg *config.Config, health *monitoring.HealthChecker) {
	in := bufio.NewReader(os.Stdin)
	w := sess.Wizard

	fmt.Println("🤖 DCA Bot Configuration Wizard")
	fmt.Println(strings.Repeat("=", 40))

	if w.ModifyMode() {
		fmt.Printf("Resuming draft for bot %s (modify mode)\n", w.ModifyBotID())
	}

	for w.MainStep() == wizard.StepBasicSetup {
		stepBasicSetup(ctx, in, sess, sessionLog, cfg)
	}
	for w.MainStep() == wizard.StepSchedule {
		stepSchedule(in, sess, sessionLog)
	}
	stepConfirmAndDeploy(ctx, in, sess, sessionLog, health)
}

func stepBasicSetup(ctx context.Context, in *bufio.Reader, sess *session.Session, sessionLog *logger.Logger, cfg *config.Config) {
	w := sess.Wizard

	switch w.SubStep() {
	case wizard.SubStepBasicInfo:
		fmt.Println("\n📋 Step 1.1: Basic info")
		w.Basic.BotName = prompt(in, "Bot name", w.Basic.BotName)
		w.Basic.Broker = prompt(in, "Broker", w.Basic.Broker)
		w.Basic.BotType = wizard.BotType(prompt(in, "Bot type (Basic/Smart/Advance)", string(w.Basic.BotType)))

		if err := w.NextSubStep(); err != nil {
			fmt.Printf("❌ %v\n", err)
		}

	case wizard.SubStepAPIConnect:
		fmt.Println("\n🔑 Step 1.2: Connect broker API")
		w.Credentials.APIKey = prompt(in, "API key", w.Credentials.APIKey)
		w.Credentials.SecretKey = prompt(in, "Secret key", w.Credentials.SecretKey)
		w.Credentials.TestMode = cfg.Broker.TestMode

		if promptYesNo(in, "Verify credentials now?") {
			if err := sess.VerifyCredentials(ctx); err != nil {
				fmt.Printf("⚠️  Verification failed: %v (retry or skip)\n", err)
				sessionLog.LogVerification(w.Basic.Broker, 0, err)
				if promptYesNo(in, "Skip verification?") {
					w.SkipVerification()
				}
			} else {
				fmt.Printf("✅ Verified. Balance: $%.2f\n", w.Balance())
				sessionLog.LogVerification(w.Basic.Broker, w.Balance(), nil)
			}
		} else {
			w.SkipVerification()
		}
		if err := w.NextSubStep(); err != nil {
			fmt.Printf("❌ %v\n", err)
		}

	case wizard.SubStepConnected:
		fmt.Println("\n✅ Step 1.3: Broker connected")
		if err := w.NextMainStep(); err != nil {
			fmt.Printf("❌ %v\n", err)
		}
		sessionLog.LogStepTransition(wizard.StepBasicSetup, w.MainStep())
	}
}

func stepSchedule(in *bufio.Reader, sess *session.Session, sessionLog *logger.Logger) {
	w := sess.Wizard

	fmt.Println("\n📅 Step 2: Asset & schedule")
	w.SetAsset(prompt(in, "Asset symbol", w.Schedule.Asset))
	w.Schedule.Amount = promptFloat(in, "Amount per buy ($)", w.Schedule.Amount)
	w.Schedule.TimeFrame = prompt(in, "Time frame (1Min/1Hour/1Day/1Week/1Month/1Year)", w.Schedule.TimeFrame)
	w.Schedule.Loop = wizard.LoopMode(prompt(in, "Loop (Once/Infinite/Custom)", string(w.Schedule.Loop)))
	if w.Schedule.Loop == wizard.LoopCustom {
		w.Schedule.AmountOfTimes = promptInt(in, "Amount of times", w.Schedule.AmountOfTimes)
	}

	if w.Basic.BotType == wizard.BotTypeSmart {
		for promptYesNo(in, "Add a metric?") {
			name := prompt(in, "Metric name (e.g. Fear & Greed Index, Risk Metric)", "")
			if err := sess.AddMetric(name); err != nil {
				fmt.Printf("⚠️  %v\n", err)
			} else {
				fmt.Printf("Added %s (%d total)\n", name, w.Metrics.Len())
			}
		}
	}

	if err := w.NextMainStep(); err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	sessionLog.LogStepTransition(wizard.StepSchedule, w.MainStep())
}

func stepConfirmAndDeploy(ctx context.Context, in *bufio.Reader, sess *session.Session, sessionLog *logger.Logger, health *monitoring.HealthChecker) {
	w := sess.Wizard

	fmt.Println("\n🚀 Step 3: Confirm & deploy")
	fmt.Printf("  Bot:    %s (%s)\n", w.Basic.BotName, w.Basic.BotType)
	fmt.Printf("  Asset:  %s\n", deploy.NormalizeAsset(w.Schedule.Asset))
	fmt.Printf("  Broker: %s\n", deploy.NormalizeBroker(w.Basic.Broker))
	fmt.Printf("  Amount: $%.2f every %s\n", w.Schedule.Amount, w.Schedule.TimeFrame)
	fmt.Printf("  Metrics: %d\n", w.Metrics.Len())

	if !promptYesNo(in, "Deploy this bot?") {
		if promptYesNo(in, "Save as draft for later?") {
			if err := sess.SaveDraft(); err != nil {
				fmt.Printf("⚠️  Could not save draft: %v\n", err)
			} else {
				fmt.Println("💾 Draft saved.")
			}
		}
		return
	}

	botName, botType, asset, amount := w.Basic.BotName, w.Basic.BotType, w.Schedule.Asset, w.Schedule.Amount
	result, warning, err := sess.Deploy(ctx)
	if err != nil {
		if errors.Is(err, deploy.ErrInsufficientBroker) {
			fmt.Println("❌ No connected broker. Reconnect a broker and try again.")
		} else {
			fmt.Printf("❌ Deployment failed: %v\n", err)
		}
		sessionLog.LogError("deployment", err)
		health.AddError(err.Error())
		return
	}
	health.UpdateLastDeployment(time.Now())

	if warning != nil {
		fmt.Printf("⚠️  %s (amount $%.2f, balance $%.2f)\n", warning.Reason, warning.AmountPerBuy, warning.Balance)
	}
	fmt.Printf("✅ Bot deployed: %s\n", result.Identifier)
	sessionLog.LogDeployment(result.Identifier, botName, string(botType), asset, amount)
}

func prompt(in *bufio.Reader, label, current string) string {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, _ := in.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	return line
}

func promptFloat(in *bufio.Reader, label string, current float64) float64 {
	raw := prompt(in, label, strconv.FormatFloat(current, 'f', -1, 64))
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	return current
}

func promptInt(in *bufio.Reader, label string, current int) int {
	raw := prompt(in, label, strconv.Itoa(current))
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	return current
}

func promptYesNo(in *bufio.Reader, label string) bool {
	answer := prompt(in, label+" (y/n)", "n")
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
}

func serveMonitoring(cfg *config.Config, health *monitoring.HealthChecker) {
	healthMux := http.NewServeMux()
	healthMux.Handle("/health", health)

	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.Monitoring.HealthPort), healthMux); err != nil {
			log.Printf("Health server error: %v", err)
		}
	}()

	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort), monitoring.NewMetricsHandler()); err != nil {
		log.Printf("Prometheus server error: %v", err)
	}
}
