package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/penpalhq/warden/ports"
)

// Bcrypt compares raw passwords against bcrypt hashes
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a comparator using the default bcrypt cost
func NewBcrypt() *Bcrypt {
	return &Bcrypt{cost: bcrypt.DefaultCost}
}

var _ ports.PasswordComparator = (*Bcrypt)(nil)

// Matches reports whether the raw password matches the stored hash
func (b *Bcrypt) Matches(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

// Hash derives a bcrypt hash for storage
func (b *Bcrypt) Hash(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
