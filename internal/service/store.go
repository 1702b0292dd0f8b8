package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
)

type AccountStore interface {
	FindAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	FindAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	CreateAccount(ctx context.Context, acc *models.Account) error
	ListAccounts(ctx context.Context) ([]models.Account, error)
	UpdatePermissions(ctx context.Context, id uuid.UUID, perms []domain.Permission) (*models.Account, error)
	SetResetToken(ctx context.Context, email, tokenHash string, expiresAt time.Time) (*models.Account, error)
	FindAccountByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.Account, error)
	ConsumeResetToken(ctx context.Context, id uuid.UUID, tokenHash string, now time.Time, passwordHash string) error
}

type ItemStore interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error)
	UpdateItem(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type CartStore interface {
	ListCart(ctx context.Context, accountID uuid.UUID) ([]models.CartItem, error)
	GetCartItem(ctx context.Context, id uuid.UUID) (*models.CartItem, error)
	UpsertCartItem(ctx context.Context, accountID, itemID uuid.UUID) (*models.CartItem, error)
	DeleteCartItem(ctx context.Context, id, accountID uuid.UUID) (bool, error)
	DecrementCartItem(ctx context.Context, id, accountID uuid.UUID) (*models.CartItem, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type TokenIssuer interface {
	Issue(accountID uuid.UUID) (string, time.Time, error)
	Verify(token string) (uuid.UUID, error)
}
