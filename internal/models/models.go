package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/domain"
)

type Account struct {
	ID                  uuid.UUID                              `gorm:"type:uuid;primaryKey"          json:"id"`
	Email               string                                 `gorm:"uniqueIndex;not null"          json:"email"`
	Name                string                                 `gorm:"not null;default:''"           json:"name"`
	PasswordHash        string                                 `gorm:"not null"                      json:"-"`
	Permissions         datatypes.JSONSlice[domain.Permission] `gorm:"not null"                      json:"permissions"`
	ResetTokenHash      *string                                `gorm:"index"                         json:"-"`
	ResetTokenExpiresAt *time.Time                             `                                     json:"-"`
	CreatedAt           time.Time                              `                                     json:"created_at"`
	UpdatedAt           time.Time                              `                                     json:"updated_at"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *Account) Principal() *domain.Principal {
	return &domain.Principal{
		ID:          a.ID,
		Email:       a.Email,
		Permissions: append([]domain.Permission(nil), a.Permissions...),
	}
}

type Item struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"   json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index;not null" json:"owner_id"`
	Title       string    `gorm:"not null"               json:"title"`
	Description string    `gorm:"not null"               json:"description"`
	Price       int64     `gorm:"not null;check:price>=0" json:"price"`
	Image       string    `                              json:"image"`
	LargeImage  string    `                              json:"large_image"`
	CreatedAt   time.Time `                              json:"created_at"`
	UpdatedAt   time.Time `                              json:"updated_at"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                      json:"id"`
	AccountID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_account_item;not null" json:"account_id"`
	ItemID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_account_item;not null" json:"item_id"`
	Quantity  uint      `gorm:"not null;default:1;check:quantity>0"       json:"quantity"`

	Account *Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
	Item    *Item    `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"    json:"-"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{&Account{}, &Item{}, &CartItem{}}
}
