package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) CreateItem(ctx context.Context, item *models.Item) error {
	return r.write(ctx, "create item", func(tx *gorm.DB) error {
		return tx.Create(item).Error
	})
}

func (r *GormRepo) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	err := r.read(ctx, "get item", func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) UpdateItem(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Item, error) {
	if len(fields) > 0 {
		err := r.write(ctx, "update item", func(tx *gorm.DB) error {
			res := tx.Model(&models.Item{}).Where("id = ?", id).Updates(fields)
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
	}
	return r.GetItem(ctx, id)
}

// DeleteItem removes the item and every cart row referencing it.
func (r *GormRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.write(ctx, "delete item", func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("item_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			res := tx.Where("id = ?", id).Delete(&models.Item{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		})
	})
}
