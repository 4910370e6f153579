package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUserAlreadyExist  = errors.New("user already exist")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotEnoughInCart   = errors.New("not enough items in cart")
)

type GormRepo struct {
	DB *gorm.DB
}
