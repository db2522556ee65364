package infra

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"fx_hedge/internal/domain"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultUserAgent is a browser-like user agent string to avoid bot detection
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	DefaultPriceURL    = "https://api.twelvedata.com/price"
	DefaultSeriesURL   = "https://api.twelvedata.com/time_series"
	DefaultFallbackURL = "https://open.er-api.com/v6/latest/USD"
)

// Config는 애플리케이션의 모든 설정을 담습니다.
// LoadConfig로 로드된 후에 환경 변수를 통해 민감 내용을 덮어씁니다.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Server struct {
		Addr        string   `yaml:"addr"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`

	API struct {
		TwelveData struct {
			PriceURL   string `yaml:"price_url"`
			SeriesURL  string `yaml:"series_url"`
			APIKey     string `yaml:"api_key"`
			RequestCap int    `yaml:"request_cap"`
		} `yaml:"twelvedata"`
		Fallback struct {
			URL string `yaml:"url"`
		} `yaml:"fallback"`
	} `yaml:"api"`

	Hedge domain.HedgeConfig `yaml:"hedge"`

	Polling struct {
		TickMS              int `yaml:"tick_ms"`
		KeyedIntervalSec    int `yaml:"keyed_interval_sec"`
		FallbackIntervalSec int `yaml:"fallback_interval_sec"`
		HistoryIntervalMin  int `yaml:"history_interval_min"`
	} `yaml:"polling"`

	Simulation struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"simulation"`

	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`

	Logging struct {
		Level string `yaml:"level"`
		Dir   string `yaml:"dir"`
	} `yaml:"logging"`
}

// Default returns a configuration that runs without a config file.
func Default() *Config {
	var cfg Config
	cfg.App.Name = "FX Hedge Dashboard"
	cfg.App.Version = "dev"
	cfg.Server.Addr = "localhost:8080"
	cfg.API.TwelveData.PriceURL = DefaultPriceURL
	cfg.API.TwelveData.SeriesURL = DefaultSeriesURL
	cfg.API.TwelveData.RequestCap = 600
	cfg.API.Fallback.URL = DefaultFallbackURL
	cfg.Hedge = domain.DefaultHedge()
	cfg.Polling.TickMS = 1000
	cfg.Polling.KeyedIntervalSec = 10
	cfg.Polling.FallbackIntervalSec = 60
	cfg.Polling.HistoryIntervalMin = 15
	cfg.Logging.Level = "info"
	cfg.Logging.Dir = "logs"
	return &cfg
}

// LoadConfig는 설정 파일을 읽고 파싱합니다.
// Keys missing from the file keep their Default() values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// 4원칙: 보안 우선 - 환경 변수 오버라이드 지원
	overrideWithEnv(cfg)

	// 5원칙: 설정 유효성 검사
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadConfigOrDefault is LoadConfig, except that a missing file yields Default()
// with environment overrides applied.
func LoadConfigOrDefault(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if errors.Is(err, domain.ErrConfigNotFound) {
		cfg = Default()
		overrideWithEnv(cfg)
		return cfg, cfg.Validate()
	}
	return cfg, err
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	for field, u := range map[string]string{
		"api.twelvedata.price_url":  c.API.TwelveData.PriceURL,
		"api.twelvedata.series_url": c.API.TwelveData.SeriesURL,
		"api.fallback.url":          c.API.Fallback.URL,
	} {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return &domain.ConfigError{Field: field, Err: fmt.Errorf("invalid URL %q", u)}
		}
	}

	if c.API.TwelveData.RequestCap <= 0 {
		return &domain.ConfigError{Field: "api.twelvedata.request_cap", Err: errors.New("must be positive")}
	}

	legs := map[string]domain.Leg{"hedge.usdaed": c.Hedge.USDAED, "hedge.usdsar": c.Hedge.USDSAR}
	for field, leg := range legs {
		if !leg.FixedRate.IsPositive() {
			return &domain.ConfigError{Field: field + ".fixed_rate", Err: errors.New("must be positive")}
		}
		if !leg.Amount.IsPositive() {
			return &domain.ConfigError{Field: field + ".amount", Err: errors.New("must be positive")}
		}
	}

	if c.Polling.TickMS <= 0 {
		return &domain.ConfigError{Field: "polling.tick_ms", Err: errors.New("must be positive")}
	}
	if c.Polling.KeyedIntervalSec <= 0 || c.Polling.FallbackIntervalSec <= 0 || c.Polling.HistoryIntervalMin <= 0 {
		return &domain.ConfigError{Field: "polling", Err: errors.New("intervals must be positive")}
	}

	if c.Server.Addr == "" {
		return &domain.ConfigError{Field: "server.addr", Err: errors.New("required")}
	}

	return nil
}

// TickInterval is the dashboard refresh period.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Polling.TickMS) * time.Millisecond
}

// KeyedInterval is the refetch interval while a credential is usable.
func (c *Config) KeyedInterval() time.Duration {
	return time.Duration(c.Polling.KeyedIntervalSec) * time.Second
}

// FallbackInterval is the refetch interval for the unkeyed source.
func (c *Config) FallbackInterval() time.Duration {
	return time.Duration(c.Polling.FallbackIntervalSec) * time.Second
}

// HistoryInterval is the minimum gap between historical fetches.
func (c *Config) HistoryInterval() time.Duration {
	return time.Duration(c.Polling.HistoryIntervalMin) * time.Minute
}

// overrideWithEnv는 환경 변수가 존재할 경우 설정 값을 덮어씁니다.
func overrideWithEnv(cfg *Config) {
	if key := os.Getenv("FX_TWELVEDATA_KEY"); key != "" {
		cfg.API.TwelveData.APIKey = key
	}
	if addr := os.Getenv("FX_SERVER_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
}
