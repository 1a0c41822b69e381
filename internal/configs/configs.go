/*
Package configs is responsible for loading and parsing the application's configuration settings.

It configures server parameters by reading operating system environment variables:
the running environment, port, CORS allowed origins, the reward budget, the stats
broadcast interval, and the timezone governing "today" in the statistics.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// defaultRedpackAmounts is the reward catalog used when REDPACK_AMOUNTS is unset.
var defaultRedpackAmounts = []float64{0.88, 1.88, 2.88, 5.88, 8.88, 10.88, 18.88, 28.88}

// AppConfig contains all configuration parameters required for the application to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string

	// Activity Settings
	StatsInterval   time.Duration
	DefaultLocation string

	// Location governs which calendar day a check-in timestamp falls on.
	// The "today" statistic never had a pinned timezone in the field, so it
	// is configurable (TIMEZONE, IANA name) instead of hard-coded.
	Location *time.Location

	// Reward Budget Settings
	RedpackAmounts []float64
	RedpackBudget  float64
}

// LoadConfig reads and parses the application configuration from environment variables.
// It provides default values for each configuration item and performs necessary type
// conversions and validation. It returns a pointer to the AppConfig struct and any
// error encountered.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Server Settings ---
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	// --- Security Settings ---
	originsStr := os.Getenv("ALLOWED_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	// --- Activity Settings ---
	intervalStr := os.Getenv("STATS_INTERVAL_SECONDS")
	if intervalStr == "" {
		intervalStr = "30"
	}
	intervalSec, err := strconv.Atoi(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_INTERVAL_SECONDS environment variable: %w", err)
	}
	if intervalSec < 1 {
		return nil, fmt.Errorf("STATS_INTERVAL_SECONDS must be at least 1, got %d", intervalSec)
	}
	cfg.StatsInterval = time.Duration(intervalSec) * time.Second

	cfg.DefaultLocation = os.Getenv("DEFAULT_LOCATION")
	if cfg.DefaultLocation == "" {
		cfg.DefaultLocation = "on site"
	}

	timezone := os.Getenv("TIMEZONE")
	if timezone == "" {
		cfg.Location = time.Local
	} else {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEZONE environment variable %q: %w", timezone, err)
		}
		cfg.Location = loc
	}

	// --- Reward Budget Settings ---
	amountsStr := os.Getenv("REDPACK_AMOUNTS")
	if amountsStr == "" {
		cfg.RedpackAmounts = append([]float64(nil), defaultRedpackAmounts...)
	} else {
		for _, field := range strings.Split(amountsStr, ",") {
			trimmed := strings.TrimSpace(field)
			if trimmed == "" {
				continue
			}
			amount, err := strconv.ParseFloat(trimmed, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid REDPACK_AMOUNTS entry %q: %w", trimmed, err)
			}
			if amount <= 0 {
				return nil, fmt.Errorf("REDPACK_AMOUNTS entries must be positive, got %v", amount)
			}
			cfg.RedpackAmounts = append(cfg.RedpackAmounts, amount)
		}
		if len(cfg.RedpackAmounts) == 0 {
			return nil, fmt.Errorf("REDPACK_AMOUNTS must list at least one amount")
		}
	}

	budgetStr := os.Getenv("REDPACK_BUDGET")
	if budgetStr == "" {
		budgetStr = "10000"
	}
	budget, err := strconv.ParseFloat(budgetStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid REDPACK_BUDGET environment variable: %w", err)
	}
	if budget <= 0 {
		return nil, fmt.Errorf("REDPACK_BUDGET must be positive, got %v", budget)
	}
	cfg.RedpackBudget = budget

	return cfg, nil
}
