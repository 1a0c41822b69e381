package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, 8080, cfg.Port)
	require.Empty(t, cfg.AllowedOrigins)
	require.Equal(t, 30*time.Second, cfg.StatsInterval)
	require.Equal(t, "on site", cfg.DefaultLocation)
	require.Equal(t, time.Local, cfg.Location)
	require.Equal(t, defaultRedpackAmounts, cfg.RedpackAmounts)
	require.InDelta(t, 10000, cfg.RedpackBudget, 1e-9)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("STATS_INTERVAL_SECONDS", "5")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("REDPACK_AMOUNTS", "1.5, 2.5")
	t.Setenv("REDPACK_BUDGET", "500")
	t.Setenv("DEFAULT_LOCATION", "main hall")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	require.Equal(t, 5*time.Second, cfg.StatsInterval)
	require.Equal(t, time.UTC, cfg.Location)
	require.Equal(t, []float64{1.5, 2.5}, cfg.RedpackAmounts)
	require.InDelta(t, 500, cfg.RedpackBudget, 1e-9)
	require.Equal(t, "main hall", cfg.DefaultLocation)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non-numeric port", key: "PORT", value: "eighty"},
		{name: "privileged port", key: "PORT", value: "80"},
		{name: "zero stats interval", key: "STATS_INTERVAL_SECONDS", value: "0"},
		{name: "unknown timezone", key: "TIMEZONE", value: "Mars/Olympus"},
		{name: "negative amount", key: "REDPACK_AMOUNTS", value: "1.88,-2"},
		{name: "empty amounts list", key: "REDPACK_AMOUNTS", value: " , "},
		{name: "non-numeric budget", key: "REDPACK_BUDGET", value: "plenty"},
		{name: "zero budget", key: "REDPACK_BUDGET", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}
