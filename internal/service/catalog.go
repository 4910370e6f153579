package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mpetrenko/online_store/internal/events"
	"github.com/mpetrenko/online_store/internal/logging"
	"github.com/mpetrenko/online_store/internal/models"
	"github.com/mpetrenko/online_store/internal/repo"
	"github.com/mpetrenko/online_store/internal/search"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Index  *search.Index
	Events events.Publisher
}

func (s *CatalogService) GetProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.GetProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, prod *models.Product) error {
	if prod.Name == "" {
		return fmt.Errorf("name is required: %w", ErrValidation)
	}
	if prod.Price < 0 {
		return fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}

	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		return err
	}

	s.mirror(ctx, *prod)
	s.publish(ctx, prod.ID, map[string]any{
		"type":       "product_created",
		"product_id": prod.ID,
		"name":       prod.Name,
	})
	return nil
}

// SetQuantity overwrites stock without consulting the cart: it is the
// administrative escape hatch for restocks and corrections, which is
// why the route carrying it is admin-gated.
func (s *CatalogService) SetQuantity(ctx context.Context, id uint, quantity int) (*models.Product, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative: %w", ErrValidation)
	}

	prod, err := s.Repo.SetQuantity(ctx, id, uint(quantity))
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	s.mirror(ctx, *prod)
	s.publish(ctx, prod.ID, map[string]any{
		"type":       "product_quantity_set",
		"product_id": prod.ID,
		"quantity":   prod.Quantity,
	})
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return err
	}

	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search index remove failed", "product_id", id, "error", err)
		}
	}
	s.publish(ctx, id, map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})
	return nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	if query == "" {
		return 0, nil, fmt.Errorf("query is required: %w", ErrValidation)
	}
	if s.Index == nil {
		return 0, nil, fmt.Errorf("search is not configured")
	}
	return s.Index.Search(ctx, query, from, size)
}

func (s *CatalogService) mirror(ctx context.Context, prod models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Put(ctx, prod); err != nil {
		logging.FromContext(ctx).Warn("search index update failed", "product_id", prod.ID, "error", err)
	}
}

func (s *CatalogService) publish(ctx context.Context, key uint, event map[string]any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, events.TopicProductEvents, strconv.FormatUint(uint64(key), 10), event); err != nil {
		logging.FromContext(ctx).Warn("event publish failed", "topic", events.TopicProductEvents, "error", err)
	}
}
