package service

import (
	"errors"
	"testing"
	"time"

	"fx_hedge/internal/domain"
	"fx_hedge/internal/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController() (*Controller, *Session, *memStore, *int) {
	session := NewSession(false)
	store := &memStore{}
	triggers := 0
	c := NewController(session, NewCredentialResolver(session, store, ""), func() { triggers++ })
	return c, session, store, &triggers
}

func TestController_SaveCredential(t *testing.T) {
	c, session, store, triggers := newController()
	session.CommitFetch(livePair, t0, true)
	session.DisableKeyed()

	require.NoError(t, c.SaveCredential("  new-key "))
	assert.Equal(t, "new-key", store.key)
	assert.Equal(t, 0, session.RequestCount())
	assert.False(t, session.KeyedDisabled())
	assert.True(t, session.Cache().Due(t0.Add(time.Second), time.Hour), "refresh clock reset")
	assert.Equal(t, 1, *triggers)
}

func TestController_CredentialStored(t *testing.T) {
	c, _, store, _ := newController()
	assert.False(t, c.CredentialStored())

	require.NoError(t, c.SaveCredential("k"))
	assert.True(t, c.CredentialStored())

	store.err = errors.New("db locked")
	assert.False(t, c.CredentialStored())
}

func TestController_SaveEmptyCredential(t *testing.T) {
	c, _, _, triggers := newController()
	assert.True(t, errors.Is(c.SaveCredential("   "), ErrEmptyCredential))
	assert.Equal(t, 0, *triggers)
}

func TestController_ApplyManual(t *testing.T) {
	c, session, _, triggers := newController()
	session.CommitFetch(domain.RatePair{USDAED: 3.6725, USDSAR: 3.75}, t0, false)

	pair, err := c.ApplyManual("3.70", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RatePair{USDAED: 3.70, USDSAR: 3.75}, pair)

	got, ok := domain.ManualRates(session.Mode())
	require.True(t, ok)
	assert.Equal(t, pair, got)
	assert.Equal(t, 1, *triggers)
}

func TestController_ApplyManualRejected(t *testing.T) {
	c, session, _, _ := newController()

	_, err := c.ApplyManual("", "oops")
	assert.True(t, errors.Is(err, domain.ErrInvalidManualInput))
	assert.Equal(t, "live", session.Mode().Name())
}

func TestController_DisableManualResetsBudget(t *testing.T) {
	c, session, _, _ := newController()
	session.CommitFetch(livePair, t0, true)
	session.DisableKeyed()
	session.SetManual(livePair)

	c.DisableManual()
	assert.Equal(t, "live", session.Mode().Name())
	assert.Equal(t, 0, session.RequestCount())
	assert.False(t, session.KeyedDisabled())
}

func TestController_DisableManualInLiveKeepsCap(t *testing.T) {
	c, session, _, triggers := newController()
	svc := NewRateService(session, &fakeFetcher{}, &fakeFetcher{}, testRules, &infra.Metrics{})
	for i := 0; i < 600; i++ {
		session.CommitFetch(livePair, t0, true)
	}
	require.Equal(t, domain.SourceFallback, svc.SelectSource("key"))

	c.DisableManual()
	assert.Equal(t, 600, session.RequestCount())
	assert.True(t, session.KeyedDisabled())
	assert.Equal(t, domain.SourceFallback, svc.SelectSource("key"))
	assert.Equal(t, 0, *triggers)
}

func TestController_ReapplyKeepsManualLeg(t *testing.T) {
	c, session, _, _ := newController()
	session.CommitFetch(livePair, t0, false)

	_, err := c.ApplyManual("3.70", "3.80")
	require.NoError(t, err)

	pair, err := c.ApplyManual("3.71", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RatePair{USDAED: 3.71, USDSAR: 3.80}, pair, "blank leg keeps the active manual rate")
}

func TestCredentialResolver_Precedence(t *testing.T) {
	session := NewSession(false)
	store := &memStore{}
	r := NewCredentialResolver(session, store, "configured")

	assert.Equal(t, "configured", r.Resolve())

	store.key = "stored"
	assert.Equal(t, "stored", r.Resolve())

	session.SetCredentialInput("typed")
	assert.Equal(t, "typed", r.Resolve())

	store.err = errors.New("db locked")
	session.SetCredentialInput("")
	assert.Equal(t, "configured", r.Resolve())
}
