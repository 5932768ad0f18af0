package ports

import (
	"time"

	"github.com/penpalhq/warden/core"
)

// Tokenizer mints and decodes signed session credentials.
//
// Decode implementations return the embedded claims together with
// core.ErrCredentialExpired when the only defect is natural expiry, so that
// logout can still read the expiry of a dead credential.
type Tokenizer interface {
	MintAccess(subject string, ttl time.Duration) (string, error)
	MintRefresh(subject string, ttl time.Duration) (string, error)
	DecodeAccess(token string) (core.Claims, error)
	DecodeRefresh(token string) (core.Claims, error)
}
