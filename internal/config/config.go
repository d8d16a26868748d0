package config

import (
	"os"
	"strconv"
)

type Config struct {
	Environment string
	LogLevel    string

	Backend struct {
		BaseURL   string
		AuthToken string
	}

	Broker struct {
		TestMode bool
	}

	Storage struct {
		StatePath string
	}

	Monitoring struct {
		PrometheusPort int
		HealthPort     int
	}
}

func Load() *Config {
	cfg := &Config{
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "debug"),
	}

	cfg.Backend.BaseURL = getEnv("BACKEND_BASE_URL", "http://localhost:8000/api")
	cfg.Backend.AuthToken = getEnv("BACKEND_AUTH_TOKEN", "")
	cfg.Broker.TestMode = getEnvBool("BROKER_TEST_MODE", true)
	cfg.Storage.StatePath = getEnv("STATE_PATH", "botwizard_state.json")
	cfg.Monitoring.PrometheusPort = getEnvInt("PROMETHEUS_PORT", 8080)
	cfg.Monitoring.HealthPort = getEnvInt("HEALTH_PORT", 8081)

	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}
