package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fx_hedge/internal/domain"
	"fx_hedge/internal/infra"
	"fx_hedge/internal/service"
)

// Driver runs the dashboard pipeline on a fixed-period timer.
// Each tick runs in its own goroutine; a slow fetch never delays the next tick.
type Driver struct {
	interval time.Duration
	session  *service.Session
	creds    *service.CredentialResolver
	rates    *service.RateService
	history  *service.HistoryService
	noise    *service.NoiseInjector
	hedge    domain.HedgeConfig
	renderer domain.Renderer
	metrics  *infra.Metrics
	now      func() time.Time

	trigger chan struct{}
	wg      sync.WaitGroup
	logger  *slog.Logger
}

// Deps groups the collaborators of a Driver.
type Deps struct {
	Session  *service.Session
	Creds    *service.CredentialResolver
	Rates    *service.RateService
	History  *service.HistoryService
	Noise    *service.NoiseInjector
	Hedge    domain.HedgeConfig
	Renderer domain.Renderer
	Metrics  *infra.Metrics
	Now      func() time.Time
}

// NewDriver creates a tick driver.
func NewDriver(interval time.Duration, d Deps) *Driver {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Metrics == nil {
		d.Metrics = infra.GlobalMetrics
	}
	return &Driver{
		interval: interval,
		session:  d.Session,
		creds:    d.Creds,
		rates:    d.Rates,
		history:  d.History,
		noise:    d.Noise,
		hedge:    d.Hedge,
		renderer: d.Renderer,
		metrics:  d.Metrics,
		now:      d.Now,
		trigger:  make(chan struct{}, 1),
		logger:   slog.Default().With("module", "driver"),
	}
}

// Trigger requests an immediate tick. Extra requests coalesce.
func (d *Driver) Trigger() {
	select {
	case d.trigger <- struct{}{}:
	default:
	}
}

// Run ticks until ctx is done, then waits for in-flight ticks.
func (d *Driver) Run(ctx context.Context) error {
	d.logger.Info("Tick driver started", slog.Duration("interval", d.interval))

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.spawn(ctx)
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Tick driver stopping...")
			d.wg.Wait()
			return nil
		case <-ticker.C:
			d.spawn(ctx)
		case <-d.trigger:
			d.spawn(ctx)
		}
	}
}

func (d *Driver) spawn(ctx context.Context) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("Tick panic recovered", slog.Any("panic", r))
			}
		}()
		d.Tick(ctx)
	}()
}

// Tick runs one pass: source selection and fetch, noise, P/L, render,
// then the interval-gated historical refresh.
func (d *Driver) Tick(ctx context.Context) {
	start := time.Now()
	now := d.now()

	credential := d.creds.Resolve()
	rates, src := d.rates.CurrentRates(ctx, credential, now)

	mode := d.session.Mode()
	_, manual := domain.ManualRates(mode)
	simulated := false
	if d.session.Simulation() && !manual && d.noise != nil {
		rates = d.noise.Apply(rates)
		simulated = true
	}

	d.renderer.RenderTick(domain.TickView{
		Time:      now,
		Rates:     rates,
		PL:        domain.CalculatePL(rates, d.hedge),
		Source:    src,
		Mode:      mode.Name(),
		Simulated: simulated,
	})
	d.metrics.RecordTick(time.Since(start))

	if d.history != nil {
		d.renderer.RenderHistorical(d.history.Refresh(ctx, d.rates.EffectiveCredential(credential), now))
	}
}
