package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bilemo-api/internal/domain"
	"github.com/phrazzld/bilemo-api/internal/pagination"
	"github.com/phrazzld/bilemo-api/internal/platform/cache"
	"github.com/phrazzld/bilemo-api/internal/platform/logger"
	"github.com/phrazzld/bilemo-api/internal/store"
)

// ProductService manages the product catalogue.
type ProductService interface {
	List(ctx context.Context, params pagination.Params) (pagination.Page[*domain.Product], error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, attrs domain.ProductAttributes) (*domain.Product, error)

	// Replace overwrites every attribute; attributes left nil are cleared.
	Replace(ctx context.Context, id int64, attrs domain.ProductAttributes) (*domain.Product, error)

	// Patch applies apply to the current attributes and stores the result,
	// so attributes apply leaves untouched keep their value.
	Patch(ctx context.Context, id int64, apply func(*domain.ProductAttributes)) (*domain.Product, error)

	Delete(ctx context.Context, id int64) error
}

type productService struct {
	products store.ProductStore
	cache    cache.ProductCache
	logger   *slog.Logger
}

// NewProductService creates a ProductService. A nil cache disables caching.
func NewProductService(products store.ProductStore, c cache.ProductCache, logger *slog.Logger) (ProductService, error) {
	if products == nil {
		return nil, fmt.Errorf("%w: product store cannot be nil", ErrServiceMisconfigured)
	}
	if c == nil {
		c = cache.Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &productService{
		products: products,
		cache:    c,
		logger:   logger.With(slog.String("component", "product_service")),
	}, nil
}

func (s *productService) List(ctx context.Context, params pagination.Params) (pagination.Page[*domain.Product], error) {
	items, total, err := s.products.List(ctx, params.Offset(), params.Limit)
	if err != nil {
		return pagination.Page[*domain.Product]{}, NewServiceError("product", "list", "failed to list products", err)
	}
	return pagination.FromWindow(items, total, params.Page, params.Limit), nil
}

func (s *productService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	p, gen, ok := s.cache.Get(ctx, id)
	if ok {
		return p, nil
	}

	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("product", "get", "failed to retrieve product", err)
	}
	s.cache.Set(ctx, p, gen)
	return p, nil
}

func (s *productService) Create(ctx context.Context, attrs domain.ProductAttributes) (*domain.Product, error) {
	p, err := domain.NewProduct(attrs)
	if err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, NewServiceError("product", "create", "failed to save product", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("product created", slog.Int64("product_id", p.ID))
	return p, nil
}

func (s *productService) Replace(ctx context.Context, id int64, attrs domain.ProductAttributes) (*domain.Product, error) {
	return s.update(ctx, "replace", id, func(current *domain.ProductAttributes) {
		*current = attrs
	})
}

func (s *productService) Patch(
	ctx context.Context,
	id int64,
	apply func(*domain.ProductAttributes),
) (*domain.Product, error) {
	return s.update(ctx, "patch", id, apply)
}

func (s *productService) update(
	ctx context.Context,
	op string,
	id int64,
	apply func(*domain.ProductAttributes),
) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("product", op, "failed to retrieve product", err)
	}

	attrs := p.Attributes()
	apply(&attrs)
	p.Replace(attrs)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, NewServiceError("product", op, "failed to update product", err)
	}
	s.cache.Invalidate(ctx, id)

	logger.FromContextOrDefault(ctx, s.logger).Info("product updated",
		slog.Int64("product_id", id),
		slog.String("mode", op))
	return p, nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return NewServiceError("product", "delete", "failed to delete product", err)
	}
	s.cache.Invalidate(ctx, id)
	logger.FromContextOrDefault(ctx, s.logger).Info("product deleted", slog.Int64("product_id", id))
	return nil
}
