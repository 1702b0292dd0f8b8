package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) ListCart(ctx context.Context, accountID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.read(ctx, "list cart", func(tx *gorm.DB) error {
		return tx.Where("account_id = ?", accountID).Order("id").Find(&items).Error
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetCartItem(ctx context.Context, id uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.read(ctx, "get cart item", func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpsertCartItem inserts a row with quantity 1 or increments the existing
// (account, item) row in a single statement. Never retried.
func (r *GormRepo) UpsertCartItem(ctx context.Context, accountID, itemID uuid.UUID) (*models.CartItem, error) {
	var out models.CartItem
	err := r.write(ctx, "upsert cart item", func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			row := models.CartItem{AccountID: accountID, ItemID: itemID, Quantity: 1}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "account_id"}, {Name: "item_id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"quantity": gorm.Expr("cart_items.quantity + ?", 1),
				}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
			return tx.Where("account_id = ? AND item_id = ?", accountID, itemID).First(&out).Error
		})
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCartItem reports whether a row owned by accountID was removed.
func (r *GormRepo) DeleteCartItem(ctx context.Context, id, accountID uuid.UUID) (bool, error) {
	var deleted bool
	err := r.write(ctx, "delete cart item", func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND account_id = ?", id, accountID).Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// DecrementCartItem lowers the quantity by one, deleting the row instead when
// it would reach zero. The returned item is nil when the row was deleted.
func (r *GormRepo) DecrementCartItem(ctx context.Context, id, accountID uuid.UUID) (*models.CartItem, error) {
	var (
		out     models.CartItem
		deleted bool
	)
	err := r.write(ctx, "decrement cart item", func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.CartItem{}).
				Where("id = ? AND account_id = ? AND quantity > 1", id, accountID).
				Update("quantity", gorm.Expr("quantity - 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				return tx.Where("id = ?", id).First(&out).Error
			}
			res = tx.Where("id = ? AND account_id = ?", id, accountID).Delete(&models.CartItem{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			deleted = true
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if deleted {
		return nil, nil
	}
	return &out, nil
}
