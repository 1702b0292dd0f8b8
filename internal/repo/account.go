package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) FindAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var acc models.Account
	err := r.read(ctx, "find account by id", func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).First(&acc).Error
	})
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *GormRepo) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var acc models.Account
	err := r.read(ctx, "find account by email", func(tx *gorm.DB) error {
		return tx.Where("email = ?", email).First(&acc).Error
	})
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// CreateAccount inserts acc unless its email is taken.
func (r *GormRepo) CreateAccount(ctx context.Context, acc *models.Account) error {
	return r.write(ctx, "create account", func(tx *gorm.DB) error {
		res := tx.Where("email = ?", acc.Email).FirstOrCreate(acc)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrConflict
		}
		return nil
	})
}

func (r *GormRepo) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	err := r.read(ctx, "list accounts", func(tx *gorm.DB) error {
		return tx.Order("created_at ASC").Find(&accounts).Error
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// UpdatePermissions replaces the account's permission set in one statement.
func (r *GormRepo) UpdatePermissions(ctx context.Context, id uuid.UUID, perms []domain.Permission) (*models.Account, error) {
	err := r.write(ctx, "update permissions", func(tx *gorm.DB) error {
		res := tx.Model(&models.Account{}).Where("id = ?", id).
			Update("permissions", datatypes.JSONSlice[domain.Permission](perms))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindAccountByID(ctx, id)
}

// SetResetToken stores a token digest and expiry for the account owning email,
// replacing any outstanding request.
func (r *GormRepo) SetResetToken(ctx context.Context, email, tokenHash string, expiresAt time.Time) (*models.Account, error) {
	err := r.write(ctx, "set reset token", func(tx *gorm.DB) error {
		res := tx.Model(&models.Account{}).Where("email = ?", email).Updates(map[string]any{
			"reset_token_hash":       tokenHash,
			"reset_token_expires_at": expiresAt.UTC(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindAccountByEmail(ctx, email)
}

// FindAccountByResetToken returns domain.ErrInvalidToken for unknown or expired digests.
func (r *GormRepo) FindAccountByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.Account, error) {
	var acc models.Account
	err := r.read(ctx, "find account by reset token", func(tx *gorm.DB) error {
		return tx.Where("reset_token_hash = ? AND reset_token_expires_at >= ?", tokenHash, now.UTC()).
			First(&acc).Error
	})
	if err != nil {
		if domainIsNotFound(err) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return &acc, nil
}

// ConsumeResetToken sets the new password hash and clears the reset fields, but
// only while the stored digest still matches and has not expired.
func (r *GormRepo) ConsumeResetToken(ctx context.Context, id uuid.UUID, tokenHash string, now time.Time, passwordHash string) error {
	return r.write(ctx, "consume reset token", func(tx *gorm.DB) error {
		res := tx.Model(&models.Account{}).
			Where("id = ? AND reset_token_hash = ? AND reset_token_expires_at >= ?", id, tokenHash, now.UTC()).
			Updates(map[string]any{
				"password_hash":          passwordHash,
				"reset_token_hash":       nil,
				"reset_token_expires_at": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInvalidToken
		}
		return nil
	})
}
