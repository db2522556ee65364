package service

import (
	"errors"
	"log/slog"
	"strings"

	"fx_hedge/internal/domain"
)

// ErrEmptyCredential is returned when saving a blank key.
var ErrEmptyCredential = errors.New("credential is empty")

// Controller applies the dashboard's user actions to the session.
type Controller struct {
	session *Session
	creds   *CredentialResolver
	trigger func()
	logger  *slog.Logger
}

// NewController creates a controller; trigger requests an immediate tick and may be nil.
func NewController(session *Session, creds *CredentialResolver, trigger func()) *Controller {
	if trigger == nil {
		trigger = func() {}
	}
	return &Controller{
		session: session,
		creds:   creds,
		trigger: trigger,
		logger:  slog.Default().With("module", "controller"),
	}
}

// SaveCredential persists key, resets the refresh clock and budget, and refreshes now.
func (c *Controller) SaveCredential(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyCredential
	}
	if err := c.creds.Save(key); err != nil {
		return err
	}
	c.session.ResetBudget()
	c.session.ResetRefreshClock()
	c.logger.Info("Credential saved")
	c.trigger()
	return nil
}

// CredentialStored reports whether a saved key exists. The key itself is never exposed.
func (c *Controller) CredentialStored() bool {
	return c.creds.Stored()
}

// SetCredentialInput uses key for subsequent ticks without persisting it.
func (c *Controller) SetCredentialInput(key string) {
	c.session.SetCredentialInput(strings.TrimSpace(key))
}

// SetSimulation toggles pip noise.
func (c *Controller) SetSimulation(enabled bool) {
	c.session.SetSimulation(enabled)
	c.logger.Info("Simulation toggled", slog.Bool("enabled", enabled))
}

// ApplyManual validates the two fields and switches to Manual mode.
// A blank field keeps the active manual rate when already in Manual mode,
// otherwise the last cached live rate. On error the mode is left unchanged.
func (c *Controller) ApplyManual(aedText, sarText string) (domain.RatePair, error) {
	last, ok := domain.ManualRates(c.session.Mode())
	if !ok {
		last = c.session.Cache().Rates
	}
	pair, err := ParseManualInput(aedText, sarText, last)
	if err != nil {
		return domain.RatePair{}, err
	}
	c.session.SetManual(pair)
	c.logger.Info("Manual rates applied",
		slog.Float64("usdaed", pair.USDAED),
		slog.Float64("usdsar", pair.USDSAR))
	c.trigger()
	return pair, nil
}

// DisableManual returns to Live mode and resets the request budget.
// In Live mode it is a no-op, so it cannot be used to lift the request cap.
func (c *Controller) DisableManual() {
	if !c.session.SetLive() {
		return
	}
	c.logger.Info("Manual mode disabled")
	c.trigger()
}
