package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourusername/instagram-ai-bot/internal/domain/constants"
)

// Config is the application configuration.
type Config struct {
	BotUsername       string
	SessionID         string
	GeminiAPIKey      string
	CatalogPath       string
	SlugsPath         string
	ContextStorePath  string
	ShopHomeURL       string
	DatabaseURL       string
	DashboardAddr     string
	SyncInterval      time.Duration
	Headless          bool
	AllowEmptySecrets bool
}

// Load reads configuration from the environment, loading .env first when
// present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		BotUsername:       os.Getenv("IG_USERNAME"),
		SessionID:         os.Getenv("IG_SESSION_ID"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		CatalogPath:       getEnvDefault("CATALOG_CSV_PATH", "data/catalog.csv"),
		SlugsPath:         getEnvDefault("SLUGS_CSV_PATH", "data/slugs.csv"),
		ContextStorePath:  getEnvDefault("CONTEXT_STORE_PATH", "data/contexts.json"),
		ShopHomeURL:       os.Getenv("SHOP_HOME_URL"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DashboardAddr:     getEnvDefault("DASHBOARD_ADDR", ":8080"),
		Headless:          getEnvBool("HEADLESS", true),
		AllowEmptySecrets: getEnvBool("ALLOW_EMPTY_SECRETS", false),
	}

	minutes := getEnvInt("SYNC_INTERVAL_MINUTES", constants.DefaultSyncIntervalMinutes)
	if minutes <= 0 {
		return nil, fmt.Errorf("SYNC_INTERVAL_MINUTES must be positive, got %d", minutes)
	}
	config.SyncInterval = time.Duration(minutes) * time.Minute

	if !config.AllowEmptySecrets {
		if config.BotUsername == "" {
			return nil, fmt.Errorf("IG_USERNAME environment variable is empty")
		}
		if config.SessionID == "" {
			return nil, fmt.Errorf("IG_SESSION_ID environment variable is empty")
		}
		if config.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable is empty")
		}
		if config.ShopHomeURL == "" {
			return nil, fmt.Errorf("SHOP_HOME_URL environment variable is empty")
		}
	}

	return config, nil
}

func getEnvDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return defaultValue
	}
}
