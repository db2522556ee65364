package service

import (
	"log/slog"

	"fx_hedge/internal/domain"
)

// CredentialResolver picks the API key for a tick:
// the unsaved dashboard input, then the stored key, then the configured key.
type CredentialResolver struct {
	session    *Session
	store      domain.CredentialStore
	configured string
	logger     *slog.Logger
}

// NewCredentialResolver creates a resolver; store may be nil.
func NewCredentialResolver(session *Session, store domain.CredentialStore, configured string) *CredentialResolver {
	return &CredentialResolver{
		session:    session,
		store:      store,
		configured: configured,
		logger:     slog.Default().With("module", "credential"),
	}
}

// Resolve is read fresh on every tick.
func (r *CredentialResolver) Resolve() string {
	if in := r.session.CredentialInput(); in != "" {
		return in
	}
	if r.store != nil {
		key, err := r.store.GetCredential()
		if err != nil {
			r.logger.Warn("Credential store read failed", slog.Any("error", err))
		} else if key != "" {
			return key
		}
	}
	return r.configured
}

// Stored reports whether a non-empty key has been saved.
func (r *CredentialResolver) Stored() bool {
	if r.store == nil {
		return false
	}
	key, err := r.store.GetCredential()
	return err == nil && key != ""
}

// Save persists key and makes it the active input.
func (r *CredentialResolver) Save(key string) error {
	if r.store != nil {
		if err := r.store.SaveCredential(key); err != nil {
			return err
		}
	}
	r.session.SetCredentialInput(key)
	return nil
}
