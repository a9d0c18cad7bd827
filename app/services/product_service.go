package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/omikunle/app/models"
	"github.com/shashiranjanraj/omikunle/pkg/cache"
	"github.com/shashiranjanraj/omikunle/pkg/logger"
)

// ErrInvalidCategory reports that a product references a category that does
// not exist.
var ErrInvalidCategory = errors.New("invalid category")

// ProductStore is the slice of the product repository the service needs.
type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	All(ctx context.Context, categoryIDs []primitive.ObjectID) ([]models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, product *models.Product) (*models.Product, error)
	UpdateImages(ctx context.Context, id primitive.ObjectID, images []string) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	Count(ctx context.Context) (int64, error)
	Featured(ctx context.Context, limit int64) ([]models.Product, error)
}

const (
	productListCacheKey  = "products:list"
	productCountCacheKey = "products:count"
	productCacheTTL      = 5 * time.Minute
)

// ProductService manages the product catalog. Writes are guarded by a
// category existence check; the unfiltered list and the count are cached.
type ProductService struct {
	products   ProductStore
	categories CategoryResolver
	cache      *cache.Store
}

func NewProductService(products ProductStore, categories CategoryResolver, cache *cache.Store) *ProductService {
	return &ProductService{products: products, categories: categories, cache: cache}
}

// ProductInput is the validated create/update payload for a product.
type ProductInput struct {
	Name            string             `json:"name" validate:"required"`
	Description     string             `json:"description" validate:"required"`
	RichDescription string             `json:"richDescription" validate:"nullable"`
	Image           string             `json:"image" validate:"nullable"`
	Brand           string             `json:"brand" validate:"nullable"`
	Price           float64            `json:"price" validate:"nullable,numeric,gte=0"`
	CategoryID      primitive.ObjectID `json:"category" validate:"required"`
	CountInStock    int                `json:"countInStock" validate:"nullable,integer,gte=0,lte=400"`
	Rating          float64            `json:"rating" validate:"nullable,numeric"`
	NumReviews      int                `json:"numReviews" validate:"nullable,integer"`
	IsFeatured      bool               `json:"isFeatured" validate:"nullable,boolean"`
}

// Create persists a new product after verifying its category reference.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	product := s.fromInput(in)
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	logger.WithCtx(ctx).Info("product created", "product_id", product.ID.Hex(), "name", product.Name)
	return product, nil
}

// Update replaces a product's fields after verifying the new category
// reference. Returns (nil, nil) when the product id does not resolve.
func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, in ProductInput) (*models.Product, error) {
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	updated, err := s.products.Update(ctx, id, s.fromInput(in))
	if err != nil || updated == nil {
		return nil, err
	}

	s.invalidate(ctx)
	return updated, nil
}

// UpdateImages replaces a product's gallery image list. Returns (nil, nil)
// when the product id does not resolve.
func (s *ProductService) UpdateImages(ctx context.Context, id primitive.ObjectID, images []string) (*models.Product, error) {
	updated, err := s.products.UpdateImages(ctx, id, images)
	if err != nil || updated == nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

// Delete removes a product; the bool reports whether it existed.
func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	deleted, err := s.products.Delete(ctx, id)
	if deleted {
		s.invalidate(ctx)
	}
	return deleted, err
}

// List returns products with their category references resolved, optionally
// restricted to the given category ids. The unfiltered list is served from
// cache when possible.
func (s *ProductService) List(ctx context.Context, categoryIDs []primitive.ObjectID) ([]models.ProductDetail, error) {
	var details []models.ProductDetail
	if len(categoryIDs) == 0 && s.cache.Get(ctx, productListCacheKey, &details) {
		return details, nil
	}

	products, err := s.products.All(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}

	details = make([]models.ProductDetail, 0, len(products))
	seen := map[primitive.ObjectID]*models.Category{}
	for _, product := range products {
		detail := models.ProductDetail{Product: product}
		category, ok := seen[product.CategoryID]
		if !ok {
			category, _ = s.categories.FindByID(ctx, product.CategoryID)
			seen[product.CategoryID] = category
		}
		detail.Category = category
		details = append(details, detail)
	}

	if len(categoryIDs) == 0 {
		s.cache.Set(ctx, productListCacheKey, details, productCacheTTL)
	}
	return details, nil
}

// Get returns one product with its category resolved, or (nil, nil) when the
// id does not resolve.
func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*models.ProductDetail, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil || product == nil {
		return nil, err
	}

	detail := &models.ProductDetail{Product: *product}
	if category, err := s.categories.FindByID(ctx, product.CategoryID); err == nil {
		detail.Category = category
	}
	return detail, nil
}

// Count returns the catalog size, cached briefly.
func (s *ProductService) Count(ctx context.Context) (int64, error) {
	var count int64
	if s.cache.Get(ctx, productCountCacheKey, &count) {
		return count, nil
	}

	count, err := s.products.Count(ctx)
	if err != nil {
		return 0, err
	}
	s.cache.Set(ctx, productCountCacheKey, count, productCacheTTL)
	return count, nil
}

// Featured returns up to limit featured products.
func (s *ProductService) Featured(ctx context.Context, limit int64) ([]models.Product, error) {
	return s.products.Featured(ctx, limit)
}

func (s *ProductService) checkCategory(ctx context.Context, id primitive.ObjectID) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrInvalidCategory
	}
	return nil
}

func (s *ProductService) fromInput(in ProductInput) *models.Product {
	return &models.Product{
		Name:            in.Name,
		Description:     in.Description,
		RichDescription: in.RichDescription,
		Image:           in.Image,
		Brand:           in.Brand,
		Price:           in.Price,
		CategoryID:      in.CategoryID,
		CountInStock:    in.CountInStock,
		Rating:          in.Rating,
		NumReviews:      in.NumReviews,
		IsFeatured:      in.IsFeatured,
	}
}

func (s *ProductService) invalidate(ctx context.Context) {
	s.cache.Del(ctx, productListCacheKey, productCountCacheKey)
}
