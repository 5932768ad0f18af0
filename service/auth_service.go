package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/penpalhq/warden/core"
	"github.com/penpalhq/warden/ports"
)

const (
	// DefaultAccessTTL is the default validity window of a bearer credential
	DefaultAccessTTL = 30 * time.Minute

	// DefaultRefreshTTL is the default validity window of a renewal credential
	DefaultRefreshTTL = 7 * 24 * time.Hour

	// DefaultReissueThreshold is the remaining renewal validity below which
	// Reissue rotates the renewal credential
	DefaultReissueThreshold = 72 * time.Hour
)

// Config carries the engine tunables. Zero fields fall back to the defaults.
type Config struct {
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	ReissueThreshold time.Duration
}

func (c Config) withDefaults() Config {
	if c.AccessTTL <= 0 {
		c.AccessTTL = DefaultAccessTTL
	}
	if c.RefreshTTL <= 0 {
		c.RefreshTTL = DefaultRefreshTTL
	}
	if c.ReissueThreshold <= 0 {
		c.ReissueThreshold = DefaultReissueThreshold
	}
	return c
}

// AuthService is the credential issuance and revocation engine. It holds no
// mutable state of its own; all session state lives in the shared expiring
// key-value store, so any number of instances can run side by side.
type AuthService struct {
	tokenizer ports.Tokenizer
	members   ports.MemberProvider
	passwords ports.PasswordComparator
	sessions  *RefreshSessions
	ledger    *RevocationLedger
	eventPub  ports.EventPublisher

	cfg Config
}

// NewAuthService creates a new authentication service
func NewAuthService(
	tokenizer ports.Tokenizer,
	members ports.MemberProvider,
	passwords ports.PasswordComparator,
	store ports.Store,
	eventPub ports.EventPublisher,
	cfg Config,
) *AuthService {
	return &AuthService{
		tokenizer: tokenizer,
		members:   members,
		passwords: passwords,
		sessions:  NewRefreshSessions(store),
		ledger:    NewRevocationLedger(store),
		eventPub:  eventPub,
		cfg:       cfg.withDefaults(),
	}
}

// Login authenticates a member by password and opens a session.
//
// The freshly minted renewal credential is written under the subject's key
// unconditionally: a second login supersedes the first session, and the old
// renewal credential will fail the match check in Reissue from then on.
// The revocation ledger is not touched.
func (s *AuthService) Login(ctx context.Context, subject, password string) (core.Credentials, error) {
	member, err := s.members.FindBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, core.ErrMemberNotFound) {
			return core.Credentials{}, core.ErrAuthenticationFailed
		}
		return core.Credentials{}, fmt.Errorf("failed to look up member: %w", err)
	}

	if !s.passwords.Matches(password, member.PasswordHash) {
		return core.Credentials{}, core.ErrAuthenticationFailed
	}

	accessToken, err := s.tokenizer.MintAccess(subject, s.cfg.AccessTTL)
	if err != nil {
		return core.Credentials{}, fmt.Errorf("failed to mint access token: %w", err)
	}

	refreshToken, err := s.tokenizer.MintRefresh(subject, s.cfg.RefreshTTL)
	if err != nil {
		return core.Credentials{}, fmt.Errorf("failed to mint refresh token: %w", err)
	}

	if err := s.sessions.Save(ctx, subject, refreshToken, s.cfg.RefreshTTL); err != nil {
		return core.Credentials{}, err
	}

	return core.Credentials{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout ends the subject's session and kills the presented bearer
// credential ahead of its natural expiry.
//
// The two store writes are independently idempotent and order-free: a
// partial failure leaves a safe state and a retry is harmless. Repeating a
// completed logout succeeds again.
func (s *AuthService) Logout(ctx context.Context, accessToken, subject string) error {
	claims, err := s.tokenizer.DecodeAccess(accessToken)
	if err != nil && !errors.Is(err, core.ErrCredentialExpired) {
		return core.ErrInvalidCredential
	}
	if claims.Subject != subject {
		return core.ErrInvalidCredential
	}

	if err := s.sessions.Drop(ctx, subject); err != nil {
		return err
	}

	// A credential past its natural expiry needs no ledger entry
	remaining := claims.Remaining(time.Now())
	if remaining > 0 {
		if err := s.ledger.Revoke(ctx, accessToken, subject, remaining); err != nil {
			return err
		}
	}

	if s.eventPub != nil {
		if err := s.eventPub.PublishLogout(ctx, subject, claims.ID); err != nil {
			// The session is already dead in the store; the event is advisory
			log.Printf("warden: failed to publish logout event for %s: %v", subject, err)
		}
	}

	return nil
}

// Reissue exchanges a renewal credential for a fresh bearer credential
// without a password. The presented credential must string-equal the one on
// record for its subject; the renewal credential itself is rotated only when
// its remaining validity drops below the reissue threshold.
func (s *AuthService) Reissue(ctx context.Context, presented string) (core.Credentials, error) {
	claims, err := s.tokenizer.DecodeRefresh(presented)
	if err != nil {
		if errors.Is(err, core.ErrCredentialExpired) {
			return core.Credentials{}, core.ErrSessionExpired
		}
		return core.Credentials{}, core.ErrInvalidCredential
	}

	stored, err := s.sessions.Lookup(ctx, claims.Subject)
	if err != nil {
		return core.Credentials{}, err
	}

	if stored != presented {
		// Either token theft or use of a superseded session
		log.Printf("warden: refresh credential mismatch for %s", claims.Subject)
		return core.Credentials{}, core.ErrCredentialMismatch
	}

	accessToken, err := s.tokenizer.MintAccess(claims.Subject, s.cfg.AccessTTL)
	if err != nil {
		return core.Credentials{}, fmt.Errorf("failed to mint access token: %w", err)
	}

	refreshToken := presented
	if claims.Remaining(time.Now()) < s.cfg.ReissueThreshold {
		refreshToken, err = s.tokenizer.MintRefresh(claims.Subject, s.cfg.RefreshTTL)
		if err != nil {
			return core.Credentials{}, fmt.Errorf("failed to mint refresh token: %w", err)
		}
		if err := s.sessions.Save(ctx, claims.Subject, refreshToken, s.cfg.RefreshTTL); err != nil {
			return core.Credentials{}, err
		}
	}

	return core.Credentials{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Validate checks a bearer credential and returns its subject. A credential
// is rejected if its signature is invalid, if it has expired, or if it
// appears in the revocation ledger. The ledger is consulted on every call;
// a store failure rejects the credential rather than letting it through.
func (s *AuthService) Validate(ctx context.Context, accessToken string) (string, error) {
	claims, err := s.tokenizer.DecodeAccess(accessToken)
	if err != nil {
		if errors.Is(err, core.ErrCredentialExpired) {
			return "", core.ErrCredentialExpired
		}
		return "", core.ErrInvalidCredential
	}

	revoked, err := s.ledger.Contains(ctx, accessToken)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", core.ErrCredentialRevoked
	}

	return claims.Subject, nil
}
