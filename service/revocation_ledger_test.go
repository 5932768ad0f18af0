package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penpalhq/warden/adapters/store"
	"github.com/penpalhq/warden/core"
)

func TestRevocationLedger(t *testing.T) {
	ledger := NewRevocationLedger(store.NewMemoryStore())
	ctx := context.Background()

	revoked, err := ledger.Contains(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, ledger.Revoke(ctx, "token-1", "a@x.com", time.Minute))

	revoked, err = ledger.Contains(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRevocationLedgerEntryExpires(t *testing.T) {
	ledger := NewRevocationLedger(store.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, ledger.Revoke(ctx, "token-1", "a@x.com", 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	// The entry dies together with the credential it blocked
	revoked, err := ledger.Contains(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationLedgerFailsLoudlyWhenStoreDown(t *testing.T) {
	ledger := NewRevocationLedger(failingStore{})

	_, err := ledger.Contains(context.Background(), "token-1")
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)
}

func TestRefreshSessionsSingleEntryPerSubject(t *testing.T) {
	sessions := NewRefreshSessions(store.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, sessions.Save(ctx, "a@x.com", "first", time.Minute))
	require.NoError(t, sessions.Save(ctx, "a@x.com", "second", time.Minute))

	val, err := sessions.Lookup(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "second", val)
}

func TestRefreshSessionsAbsentMeansExpired(t *testing.T) {
	sessions := NewRefreshSessions(store.NewMemoryStore())

	_, err := sessions.Lookup(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, core.ErrSessionExpired)
}

func TestRefreshSessionsDropIdempotent(t *testing.T) {
	sessions := NewRefreshSessions(store.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, sessions.Save(ctx, "a@x.com", "token", time.Minute))
	require.NoError(t, sessions.Drop(ctx, "a@x.com"))
	require.NoError(t, sessions.Drop(ctx, "a@x.com"))

	_, err := sessions.Lookup(ctx, "a@x.com")
	assert.ErrorIs(t, err, core.ErrSessionExpired)
}
