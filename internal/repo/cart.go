package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mpetrenko/online_store/internal/models"
)

func (r *GormRepo) GetCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart reserves stock and upserts the cart line in one transaction.
// The stock write is a single conditional UPDATE, so two concurrent adds
// can never both pass a stale stock check: the second one simply affects
// zero rows and reports ErrInsufficientStock.
func (r *GormRepo) AddToCart(ctx context.Context, userID, productID, quantity uint) (*models.CartItem, error) {
	var item models.CartItem

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND quantity >= ?", productID, quantity).
			Update("quantity", gorm.Expr("quantity - ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var probe models.Product
			if err := tx.Select("id").Where("id = ?", productID).First(&probe).Error; err != nil {
				return err
			}
			return ErrInsufficientStock
		}

		upd := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			item = models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
			return tx.Create(&item).Error
		}
		return tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveFromCart gives stock back and shrinks or deletes the cart line.
// Both line writes are guarded by the quantity read at the start of the
// transaction, so a concurrent change surfaces as ErrRecordNotFound
// instead of a silent lost update.
func (r *GormRepo) RemoveFromCart(ctx context.Context, userID, productID, quantity uint) (deleted bool, remaining *models.CartItem, err error) {
	var item models.CartItem

	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
			return err
		}
		if quantity > item.Quantity {
			return ErrNotEnoughInCart
		}

		if quantity == item.Quantity {
			res := tx.Where("id = ? AND quantity = ?", item.ID, item.Quantity).Delete(&models.CartItem{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			deleted = true
		} else {
			res := tx.Model(&models.CartItem{}).
				Where("id = ? AND quantity >= ?", item.ID, quantity).
				Update("quantity", gorm.Expr("quantity - ?", quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			if err := tx.Where("id = ?", item.ID).First(&item).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Product{}).
			Where("id = ?", productID).
			Update("quantity", gorm.Expr("quantity + ?", quantity)).Error
	})
	if err != nil {
		return false, nil, err
	}
	if deleted {
		return true, nil, nil
	}
	return false, &item, nil
}

// IsNotFound reports whether err is the store's missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
