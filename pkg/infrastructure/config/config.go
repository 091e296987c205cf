package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config represents the full application configuration surface.
type Config struct {
	HierarchyFile string
	IssuedStatus  []string
	Order         string
	Mode          string
	LogLevel      string
	Sheets        SheetsConfig
}

// SheetsConfig contains configuration required to read Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// A missing .env is fine; the environment itself may carry everything.
		_ = godotenv.Load()
	}

	cfg := &Config{
		HierarchyFile: os.Getenv("STOCKCHECK_HIERARCHY_FILE"),
		IssuedStatus:  splitList(getenvWithDefault("STOCKCHECK_ISSUED_STATUS", "12")),
		Order:         getenvWithDefault("STOCKCHECK_ORDER", "id"),
		Mode:          getenvWithDefault("STOCKCHECK_MODE", "sequential"),
		LogLevel:      getenvWithDefault("STOCKCHECK_LOG_LEVEL", "info"),
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that configuration values are usable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if len(c.IssuedStatus) == 0 {
		return errors.New("STOCKCHECK_ISSUED_STATUS must list at least one status code")
	}

	switch strings.ToLower(c.Order) {
	case "input", "id", "date", "priority":
	default:
		return fmt.Errorf("STOCKCHECK_ORDER must be one of input, id, date, priority, got %q", c.Order)
	}

	switch strings.ToLower(c.Mode) {
	case "sequential", "simple":
	default:
		return fmt.Errorf("STOCKCHECK_MODE must be sequential or simple, got %q", c.Mode)
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("STOCKCHECK_LOG_LEVEL: %w", err)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
