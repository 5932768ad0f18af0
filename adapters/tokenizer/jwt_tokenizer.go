package tokenizer

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/penpalhq/warden/core"
	"github.com/penpalhq/warden/ports"
)

const AudienceAccess = "session:access"
const AudienceRefresh = "session:refresh"

// JWTTokenizer implements the Tokenizer interface using JWT
type JWTTokenizer struct {
	signKey *ecdsa.PrivateKey
}

// NewJWTTokenizer creates a new JWT tokenizer
func NewJWTTokenizer(signKey *ecdsa.PrivateKey) ports.Tokenizer {
	return &JWTTokenizer{signKey: signKey}
}

// MintAccess creates a signed bearer credential for the subject
func (j *JWTTokenizer) MintAccess(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Audience:  jwt.ClaimStrings{AudienceAccess},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)

	signedToken, err := token.SignedString(j.signKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signedToken, nil
}

// MintRefresh creates a signed renewal credential for the subject
func (j *JWTTokenizer) MintRefresh(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Audience:  jwt.ClaimStrings{AudienceRefresh},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)

	signedToken, err := token.SignedString(j.signKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return signedToken, nil
}

// DecodeAccess parses a bearer credential and returns its claims
func (j *JWTTokenizer) DecodeAccess(tokenStr string) (core.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AccessClaims{}, j.keyFunc, jwt.WithAudience(AudienceAccess))
	if err != nil {
		// An expired-but-otherwise-valid token still yields its claims, so
		// logout can read the expiry of an already-dead credential.
		if errors.Is(err, jwt.ErrTokenExpired) && token != nil {
			if claims, ok := token.Claims.(*AccessClaims); ok {
				return fromRegistered(claims.RegisteredClaims), core.ErrCredentialExpired
			}
		}
		return core.Claims{}, fmt.Errorf("%w: %v", core.ErrInvalidCredential, err)
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return core.Claims{}, core.ErrInvalidCredential
	}

	return fromRegistered(claims.RegisteredClaims), nil
}

// DecodeRefresh parses a renewal credential and returns its claims
func (j *JWTTokenizer) DecodeRefresh(tokenStr string) (core.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &RefreshClaims{}, j.keyFunc, jwt.WithAudience(AudienceRefresh))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && token != nil {
			if claims, ok := token.Claims.(*RefreshClaims); ok {
				return fromRegistered(claims.RegisteredClaims), core.ErrCredentialExpired
			}
		}
		return core.Claims{}, fmt.Errorf("%w: %v", core.ErrInvalidCredential, err)
	}

	claims, ok := token.Claims.(*RefreshClaims)
	if !ok {
		return core.Claims{}, core.ErrInvalidCredential
	}

	return fromRegistered(claims.RegisteredClaims), nil
}

// keyFunc validates the signing method and returns the verification key
func (j *JWTTokenizer) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return &j.signKey.PublicKey, nil
}

func fromRegistered(rc jwt.RegisteredClaims) core.Claims {
	claims := core.Claims{
		ID:      rc.ID,
		Subject: rc.Subject,
	}
	if rc.IssuedAt != nil {
		claims.IssuedAt = rc.IssuedAt.Time
	}
	if rc.ExpiresAt != nil {
		claims.ExpiresAt = rc.ExpiresAt.Time
	}
	return claims
}
