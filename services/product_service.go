package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	apperrors "github.com/Akashx1550/TrendMart-backend/common/errors"
	"github.com/Akashx1550/TrendMart-backend/models"
	"github.com/Akashx1550/TrendMart-backend/repository"

	"go.uber.org/zap"
)

type ProductService interface {
	AddProduct(ctx context.Context, req models.AddProductRequest) (*models.Product, error)
	// RemoveProduct deletes the product with id if it exists and returns the
	// name to echo back. Removing a missing product is not an error.
	RemoveProduct(ctx context.Context, id int64, name string) (string, error)
	AllProducts(ctx context.Context) ([]models.Product, error)
	NewCollections(ctx context.Context) ([]models.Product, error)
	PopularInWomen(ctx context.Context) ([]models.Product, error)
	RelatedProducts(ctx context.Context, category string) ([]models.Product, error)
}

type productService struct {
	repo    repository.ProductRepo
	events  EventPublisher
	log     *zap.Logger
	shuffle Shuffler
	now     func() time.Time
}

func NewProductService(repo repository.ProductRepo, events EventPublisher, log *zap.Logger) ProductService {
	return newProductService(repo, events, log, rand.Shuffle)
}

func newProductService(repo repository.ProductRepo, events EventPublisher, log *zap.Logger, shuffle Shuffler) *productService {
	if log == nil {
		log = zap.NewNop()
	}
	return &productService{
		repo:    repo,
		events:  events,
		log:     log,
		shuffle: shuffle,
		now:     time.Now,
	}
}

func (s *productService) AddProduct(ctx context.Context, req models.AddProductRequest) (*models.Product, error) {
	id, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("add product: %w", err)
	}

	product := &models.Product{
		ID:        id,
		Name:      req.Name,
		Image:     req.Image,
		Category:  req.Category,
		NewPrice:  req.NewPrice,
		OldPrice:  req.OldPrice,
		Date:      s.now().UTC(),
		Available: true,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateProductID) {
			s.log.Warn("product id collision", zap.Int64("product_id", id))
			return nil, apperrors.Wrap(apperrors.ErrProductIDTaken, err)
		}
		return nil, fmt.Errorf("add product: %w", err)
	}

	s.log.Info("product created", zap.Int64("product_id", id), zap.String("category", product.Category))
	s.publish(ctx, models.EventProductCreated, models.ProductEventData{ID: id, Name: product.Name, Category: product.Category})
	return product, nil
}

func (s *productService) RemoveProduct(ctx context.Context, id int64, name string) (string, error) {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("remove product: %w", err)
	}
	if deleted == nil {
		s.log.Debug("remove product: no match", zap.Int64("product_id", id))
		return name, nil
	}

	if name == "" {
		name = deleted.Name
	}
	s.log.Info("product removed", zap.Int64("product_id", id))
	s.publish(ctx, models.EventProductRemoved, models.ProductEventData{ID: id, Name: deleted.Name, Category: deleted.Category})
	return name, nil
}

func (s *productService) AllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("all products: %w", err)
	}
	return products, nil
}

func (s *productService) NewCollections(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("new collections: %w", err)
	}
	return NewCollectionView(products), nil
}

func (s *productService) PopularInWomen(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.FindByCategory(ctx, popularCategory)
	if err != nil {
		return nil, fmt.Errorf("popular in women: %w", err)
	}
	return PopularView(products), nil
}

func (s *productService) RelatedProducts(ctx context.Context, category string) ([]models.Product, error) {
	products, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("related products: %w", err)
	}
	return RelatedView(products, s.shuffle), nil
}

func (s *productService) publish(ctx context.Context, eventType string, data interface{}) {
	if s.events != nil {
		s.events.Publish(ctx, eventType, data)
	}
}
