package ports

import (
	"context"

	"github.com/penpalhq/warden/core"
)

// MemberProvider looks up the account a subject identifies.
type MemberProvider interface {
	FindBySubject(ctx context.Context, subject string) (core.Member, error)
}

// PasswordComparator checks a raw password against a stored hash.
type PasswordComparator interface {
	Matches(raw, hash string) bool
}
