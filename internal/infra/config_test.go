package infra

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fx_hedge/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 600, cfg.API.TwelveData.RequestCap)
	assert.Equal(t, "10s", cfg.KeyedInterval().String())
	assert.Equal(t, "1m0s", cfg.FallbackInterval().String())
	assert.Equal(t, "15m0s", cfg.HistoryInterval().String())
	assert.True(t, cfg.Hedge.USDAED.FixedRate.Equal(decimal.RequireFromString("3.672")))
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: "0.0.0.0:9000"
hedge:
  usdaed:
    fixed_rate: "3.6700"
    amount: "5000000"
  usdsar:
    fixed_rate: "3.7500"
    amount: "2500000"
polling:
  keyed_interval_sec: 20
logging:
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	assert.True(t, cfg.Hedge.USDSAR.Amount.Equal(decimal.NewFromInt(2_500_000)))
	assert.Equal(t, 20, cfg.Polling.KeyedIntervalSec)
	assert.Equal(t, 60, cfg.Polling.FallbackIntervalSec, "unset keys keep defaults")
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("FX_TWELVEDATA_KEY", "env-key")
	path := writeConfig(t, "app:\n  name: test\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.API.TwelveData.APIKey)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.Is(err, domain.ErrConfigNotFound))
}

func TestLoadConfigOrDefault(t *testing.T) {
	t.Setenv("FX_SERVER_ADDR", "0.0.0.0:9090")

	cfg, err := LoadConfigOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr)
	assert.Equal(t, 1000, cfg.Polling.TickMS)

	_, err = LoadConfigOrDefault(writeConfig(t, "polling:\n  tick_ms: -1\n"))
	var cfgErr *domain.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad price url", func(c *Config) { c.API.TwelveData.PriceURL = "ftp://x" }, "api.twelvedata.price_url"},
		{"zero cap", func(c *Config) { c.API.TwelveData.RequestCap = 0 }, "api.twelvedata.request_cap"},
		{"zero notional", func(c *Config) { c.Hedge.USDSAR.Amount = decimal.Zero }, "hedge.usdsar.amount"},
		{"negative rate", func(c *Config) { c.Hedge.USDAED.FixedRate = decimal.NewFromInt(-1) }, "hedge.usdaed.fixed_rate"},
		{"zero tick", func(c *Config) { c.Polling.TickMS = 0 }, "polling.tick_ms"},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			var ce *domain.ConfigError
			require.True(t, errors.As(cfg.Validate(), &ce))
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}
