package core

import "errors"

var (
	// ErrAuthenticationFailed is returned when login credentials do not match
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrInvalidCredential is returned when a credential cannot be decoded
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrCredentialExpired is returned when a credential's natural expiry has passed
	ErrCredentialExpired = errors.New("credential has expired")

	// ErrCredentialRevoked is returned when a bearer credential appears in the revocation ledger
	ErrCredentialRevoked = errors.New("credential has been revoked")

	// ErrSessionExpired is returned when no renewal credential is on record for the subject
	ErrSessionExpired = errors.New("session has expired")

	// ErrCredentialMismatch is returned when the presented renewal credential
	// does not equal the one on record
	ErrCredentialMismatch = errors.New("credential does not match recorded session")

	// ErrStoreUnavailable is returned when the session store cannot be reached
	ErrStoreUnavailable = errors.New("session store unavailable")

	// ErrMemberNotFound is returned when no member exists for a subject
	ErrMemberNotFound = errors.New("member not found")
)
