package repo

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mpetrenko/online_store/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}))
	return &GormRepo{DB: db}
}

func createProduct(t *testing.T, r *GormRepo, price float64, quantity uint) *models.Product {
	t.Helper()

	p := &models.Product{Name: "widget", Description: "a widget", Price: price, Quantity: quantity}
	require.NoError(t, r.DB.Create(p).Error)
	return p
}

func productQuantity(t *testing.T, r *GormRepo, id uint) uint {
	t.Helper()

	var p models.Product
	require.NoError(t, r.DB.First(&p, id).Error)
	return p.Quantity
}
