package core

import "time"

// Member is the minimal account record needed to authenticate a login
// attempt. Subject is the member's verified email address and is the stable
// identity every session key derives from.
type Member struct {
	Subject      string
	Name         string
	PasswordHash string
}

// Credentials is the token pair returned by Login and Reissue.
type Credentials struct {
	AccessToken  string // short-lived bearer credential
	RefreshToken string // longer-lived renewal credential
}

// Claims are the fields the engine reads from a decoded credential.
type Claims struct {
	ID        string    // unique token identifier (jti)
	Subject   string    // member email the credential is bound to
	IssuedAt  time.Time // when the credential was minted
	ExpiresAt time.Time // natural expiry embedded in the credential
}

// Remaining returns the credential's remaining natural validity at now.
func (c Claims) Remaining(now time.Time) time.Duration {
	return c.ExpiresAt.Sub(now)
}
