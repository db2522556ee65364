package app

import (
	"context"
	"log/slog"
	"time"

	"fx_hedge/internal/dashboard"
	"fx_hedge/internal/engine"
	"fx_hedge/internal/infra"
	"fx_hedge/internal/infra/storage"
	"fx_hedge/internal/service"

	"golang.org/x/sync/errgroup"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config  *infra.Config
	Storage *storage.Storage
	Session *service.Session
	Driver  *engine.Driver
	Server  *dashboard.Server
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize loads configuration and storage, then wires the pipeline and dashboard.
func (b *Bootstrap) Initialize(configPath string) error {
	// 1. Load Config
	cfg, err := infra.LoadConfigOrDefault(configPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)
	slog.Info("🚀 Bootstrapping FX hedge dashboard...", slog.String("version", cfg.App.Version))

	// 3. Initialize Storage (DB)
	store, err := storage.NewStorage(cfg.Storage.Path)
	if err != nil {
		return err
	}
	b.Storage = store
	if settings, err := store.LoadConfigMap(); err == nil {
		slog.Info("✅ Database initialized", slog.Int("stored_settings", len(settings)))
	}

	b.wire()
	return nil
}

func (b *Bootstrap) wire() {
	cfg := b.Config
	metrics := infra.GlobalMetrics
	httpClient := infra.NewHTTPClient()

	twelveData := infra.NewTwelveDataClient(cfg.API.TwelveData.PriceURL, cfg.API.TwelveData.SeriesURL, httpClient)
	fallback := infra.NewFallbackClient(cfg.API.Fallback.URL, httpClient)

	b.Session = service.NewSession(cfg.Simulation.Enabled)
	creds := service.NewCredentialResolver(b.Session, b.Storage, cfg.API.TwelveData.APIKey)

	rates := service.NewRateService(b.Session, twelveData, fallback, service.RatePolicy{
		KeyedInterval:    cfg.KeyedInterval(),
		FallbackInterval: cfg.FallbackInterval(),
		RequestCap:       cfg.API.TwelveData.RequestCap,
	}, metrics)
	history := service.NewHistoryService(b.Session, twelveData, cfg.Hedge, cfg.HistoryInterval(), metrics)

	hub := dashboard.NewHub(metrics)
	renderer := dashboard.NewRenderer(hub)

	seed := uint64(time.Now().UnixNano())
	b.Driver = engine.NewDriver(cfg.TickInterval(), engine.Deps{
		Session:  b.Session,
		Creds:    creds,
		Rates:    rates,
		History:  history,
		Noise:    service.NewNoiseInjector(seed, seed>>1|1),
		Hedge:    cfg.Hedge,
		Renderer: renderer,
		Metrics:  metrics,
	})

	controller := service.NewController(b.Session, creds, b.Driver.Trigger)
	b.Server = dashboard.NewServer(dashboard.Options{
		Addr:        cfg.Server.Addr,
		CORSOrigins: cfg.Server.CORSOrigins,
		RequestCap:  cfg.API.TwelveData.RequestCap,
		Hub:         hub,
		Renderer:    renderer,
		Controller:  controller,
		Session:     b.Session,
		Metrics:     metrics,
	})
}

// Run serves the dashboard and drives ticks until ctx is done or either fails.
func (b *Bootstrap) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return b.Server.ListenAndServe(gctx)
	})
	g.Go(func() error {
		return b.Driver.Run(gctx)
	})

	slog.InfoContext(ctx, "✨ Dashboard fully operational. Press Ctrl+C to exit.",
		slog.String("addr", b.Config.Server.Addr))

	err := g.Wait()
	if cerr := b.Storage.Close(); cerr != nil {
		slog.Warn("Failed to close storage", slog.Any("error", cerr))
	}
	return err
}
