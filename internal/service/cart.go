package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/mpetrenko/online_store/internal/events"
	"github.com/mpetrenko/online_store/internal/logging"
	"github.com/mpetrenko/online_store/internal/models"
	"github.com/mpetrenko/online_store/internal/repo"
	"github.com/mpetrenko/online_store/internal/transport"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

// GetCart joins cart lines against the catalog. A line whose product
// vanished is excluded from the total but reported in MissingProducts
// instead of being silently dropped.
func (s *CartService) GetCart(ctx context.Context, userID uint) (*transport.CartView, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &transport.CartView{Cart: []transport.CartLine{}}
	if len(items) == 0 {
		return view, nil
	}

	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.Repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var total float64
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			view.MissingProducts = append(view.MissingProducts, it.ProductID)
			continue
		}
		line := transport.CartLine{
			CartID:    it.ID,
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
			ItemTotal: round2(p.Price * float64(it.Quantity)),
		}
		total += p.Price * float64(it.Quantity)
		view.Cart = append(view.Cart, line)
	}
	view.Total = round2(total)

	if len(view.MissingProducts) > 0 {
		logging.FromContext(ctx).Warn("cart references missing products",
			"user_id", userID, "product_ids", view.MissingProducts)
	}
	return view, nil
}

func (s *CartService) AddToCart(ctx context.Context, userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", ErrValidation)
	}

	item, err := s.Repo.AddToCart(ctx, userID, productID, uint(quantity))
	if err != nil {
		switch {
		case repo.IsNotFound(err):
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		case errors.Is(err, repo.ErrInsufficientStock):
			return nil, fmt.Errorf("product %d: %w", productID, ErrInsufficientStock)
		}
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":       "cart_item_added",
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})
	return item, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID uint, quantity int) (bool, *models.CartItem, error) {
	if quantity <= 0 {
		return false, nil, fmt.Errorf("quantity must be positive: %w", ErrValidation)
	}

	deleted, item, err := s.Repo.RemoveFromCart(ctx, userID, productID, uint(quantity))
	if err != nil {
		switch {
		case repo.IsNotFound(err):
			return false, nil, fmt.Errorf("product %d not in cart: %w", productID, ErrNotFound)
		case errors.Is(err, repo.ErrNotEnoughInCart):
			return false, nil, fmt.Errorf("cannot remove more items than in cart: %w", ErrValidation)
		}
		return false, nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":       "cart_item_removed",
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})
	return deleted, item, nil
}

func (s *CartService) publish(ctx context.Context, key uint, event map[string]any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, events.TopicCartEvents, strconv.FormatUint(uint64(key), 10), event); err != nil {
		logging.FromContext(ctx).Warn("event publish failed", "topic", events.TopicCartEvents, "error", err)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
