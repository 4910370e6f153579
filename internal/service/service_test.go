package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mpetrenko/online_store/internal/models"
	"github.com/mpetrenko/online_store/internal/repo"
	"github.com/mpetrenko/online_store/internal/session"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}))
	return &repo.GormRepo{DB: db}
}

func newAuthService(t *testing.T) (*AuthService, *session.MemoryStore) {
	t.Helper()

	sessions := session.NewMemoryStore()
	return &AuthService{Repo: newTestRepo(t), Sessions: sessions}, sessions
}

func seedProduct(t *testing.T, r *repo.GormRepo, price float64, quantity uint) *models.Product {
	t.Helper()

	p := &models.Product{Name: "widget", Description: "a widget", Price: price, Quantity: quantity}
	require.NoError(t, r.DB.Create(p).Error)
	return p
}

func stock(t *testing.T, r *repo.GormRepo, id uint) uint {
	t.Helper()

	var p models.Product
	require.NoError(t, r.DB.First(&p, id).Error)
	return p.Quantity
}

// recordingPublisher collects published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *recordingPublisher) Publish(_ context.Context, topic, _ string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}
