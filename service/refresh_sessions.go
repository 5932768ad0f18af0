package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/penpalhq/warden/core"
	"github.com/penpalhq/warden/ports"
)

const refreshKeyPrefix = "session:refresh:"

// RefreshSessions keeps at most one live renewal credential per subject.
// Saving under a subject silently supersedes whatever credential was stored
// before; the superseded value is never blacklisted, it simply stops being
// the value a lookup returns.
type RefreshSessions struct {
	store ports.Store
}

// NewRefreshSessions creates a refresh session store over the given KV store
func NewRefreshSessions(store ports.Store) *RefreshSessions {
	return &RefreshSessions{store: store}
}

// Save records token as the subject's single live renewal credential
func (r *RefreshSessions) Save(ctx context.Context, subject, token string, ttl time.Duration) error {
	if err := r.store.Set(ctx, refreshKeyPrefix+subject, token, ttl); err != nil {
		return fmt.Errorf("%w: saving refresh session: %v", core.ErrStoreUnavailable, err)
	}
	return nil
}

// Lookup returns the renewal credential on record for the subject.
// An absent entry means the session has ended, whether by logout or by
// natural expiry, and yields core.ErrSessionExpired.
func (r *RefreshSessions) Lookup(ctx context.Context, subject string) (string, error) {
	val, err := r.store.Get(ctx, refreshKeyPrefix+subject)
	if err != nil {
		if errors.Is(err, ports.ErrKeyNotFound) {
			return "", core.ErrSessionExpired
		}
		return "", fmt.Errorf("%w: looking up refresh session: %v", core.ErrStoreUnavailable, err)
	}
	return val, nil
}

// Drop removes the subject's renewal credential. Dropping an absent entry
// succeeds, which keeps logout idempotent.
func (r *RefreshSessions) Drop(ctx context.Context, subject string) error {
	if err := r.store.Delete(ctx, refreshKeyPrefix+subject); err != nil {
		return fmt.Errorf("%w: dropping refresh session: %v", core.ErrStoreUnavailable, err)
	}
	return nil
}
