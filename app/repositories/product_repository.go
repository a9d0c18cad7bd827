package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/omikunle/app/models"
	"github.com/shashiranjanraj/omikunle/pkg/database"
	"github.com/shashiranjanraj/omikunle/pkg/metrics"
)

// ProductRepository handles persistence for Product documents.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *database.DB) *ProductRepository {
	return &ProductRepository{col: db.Collection("products")}
}

// Create persists a new product and fills in its generated id and creation
// timestamp.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	defer metrics.ObserveDBOp("products", "insert", time.Now())

	product.ID = primitive.NewObjectID()
	if product.DateCreated.IsZero() {
		product.DateCreated = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("products: insert: %w", err)
	}
	return nil
}

// FindByID resolves a product reference. Returns (nil, nil) when the id does
// not resolve.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	defer metrics.ObserveDBOp("products", "find", time.Now())

	var product models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("products: find %s: %w", id.Hex(), err)
	}
	return &product, nil
}

// All returns every product, optionally filtered to a set of category ids.
func (r *ProductRepository) All(ctx context.Context, categoryIDs []primitive.ObjectID) ([]models.Product, error) {
	defer metrics.ObserveDBOp("products", "find", time.Now())

	filter := bson.M{}
	if len(categoryIDs) > 0 {
		filter["category"] = bson.M{"$in": categoryIDs}
	}

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("products: find all: %w", err)
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}
	return products, nil
}

// Update replaces the mutable fields of an existing product and returns the
// updated document, or (nil, nil) when the id does not resolve.
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, product *models.Product) (*models.Product, error) {
	defer metrics.ObserveDBOp("products", "update", time.Now())

	update := bson.M{"$set": bson.M{
		"name":            product.Name,
		"description":     product.Description,
		"richDescription": product.RichDescription,
		"image":           product.Image,
		"brand":           product.Brand,
		"price":           product.Price,
		"category":        product.CategoryID,
		"countInStock":    product.CountInStock,
		"rating":          product.Rating,
		"numReviews":      product.NumReviews,
		"isFeatured":      product.IsFeatured,
	}}

	result, err := r.col.UpdateByID(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("products: update %s: %w", id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// UpdateImages replaces the product's gallery image list.
func (r *ProductRepository) UpdateImages(ctx context.Context, id primitive.ObjectID, images []string) (*models.Product, error) {
	defer metrics.ObserveDBOp("products", "update", time.Now())

	result, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"images": images}})
	if err != nil {
		return nil, fmt.Errorf("products: update images %s: %w", id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// Delete removes a product. Returns false when the id does not resolve.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	defer metrics.ObserveDBOp("products", "delete", time.Now())

	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("products: delete %s: %w", id.Hex(), err)
	}
	return result.DeletedCount > 0, nil
}

// Count returns the number of products in the catalogue.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveDBOp("products", "find", time.Now())

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("products: count: %w", err)
	}
	return n, nil
}

// Featured returns up to limit featured products.
func (r *ProductRepository) Featured(ctx context.Context, limit int64) ([]models.Product, error) {
	defer metrics.ObserveDBOp("products", "find", time.Now())

	cursor, err := r.col.Find(ctx, bson.M{"isFeatured": true}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("products: find featured: %w", err)
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}
	return products, nil
}
