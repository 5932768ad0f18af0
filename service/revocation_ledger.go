package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/penpalhq/warden/core"
	"github.com/penpalhq/warden/ports"
)

const revokedKeyPrefix = "session:revoked:"

// RevocationLedger records bearer credentials that must be rejected before
// their natural expiry. Entries are keyed by the credential's string form
// with TTL equal to its remaining validity, so an entry never outlives the
// credential it blocks and the ledger needs no eviction policy.
type RevocationLedger struct {
	store ports.Store
}

// NewRevocationLedger creates a revocation ledger over the given KV store
func NewRevocationLedger(store ports.Store) *RevocationLedger {
	return &RevocationLedger{store: store}
}

// Revoke marks the bearer credential as dead for its remaining validity
func (l *RevocationLedger) Revoke(ctx context.Context, token, subject string, remaining time.Duration) error {
	if err := l.store.Set(ctx, revokedKeyPrefix+token, subject, remaining); err != nil {
		return fmt.Errorf("%w: writing revocation entry: %v", core.ErrStoreUnavailable, err)
	}
	return nil
}

// Contains reports whether the bearer credential has been revoked.
// A store failure is surfaced as core.ErrStoreUnavailable, never as "not
// revoked": callers on the validation path must fail closed.
func (l *RevocationLedger) Contains(ctx context.Context, token string) (bool, error) {
	_, err := l.store.Get(ctx, revokedKeyPrefix+token)
	if err != nil {
		if errors.Is(err, ports.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: checking revocation entry: %v", core.ErrStoreUnavailable, err)
	}
	return true, nil
}
