package members

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/penpalhq/warden/core"
	"github.com/penpalhq/warden/ports"
)

// Member is the persisted account row. The verified email is the subject
// every issued credential is bound to.
type Member struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;size:120;not null"`
	Name         string `gorm:"size:80"`
	PasswordHash string `gorm:"size:255;not null"`
}

// GormProvider looks up members through GORM
type GormProvider struct {
	db *gorm.DB
}

// NewGormProvider creates a member provider backed by the given database
func NewGormProvider(db *gorm.DB) ports.MemberProvider {
	return &GormProvider{db: db}
}

// FindBySubject returns the member whose verified email equals subject
func (p *GormProvider) FindBySubject(ctx context.Context, subject string) (core.Member, error) {
	var m Member
	if err := p.db.WithContext(ctx).Where("email = ?", subject).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Member{}, core.ErrMemberNotFound
		}
		return core.Member{}, fmt.Errorf("failed to query member: %w", err)
	}

	return core.Member{
		Subject:      m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
	}, nil
}

// Migrate creates or updates the members table
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Member{})
}
