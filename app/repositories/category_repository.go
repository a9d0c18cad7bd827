// Package repositories contains the MongoDB persistence layer. Every lookup
// by id follows the same convention: a missing document yields (nil, nil) and
// the caller decides whether that is a not-found response or a broken
// reference.
package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/omikunle/app/models"
	"github.com/shashiranjanraj/omikunle/pkg/database"
	"github.com/shashiranjanraj/omikunle/pkg/metrics"
)

// CategoryRepository handles persistence for Category documents.
type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(db *database.DB) *CategoryRepository {
	return &CategoryRepository{col: db.Collection("categories")}
}

// Create persists a new category and fills in its generated id.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	defer metrics.ObserveDBOp("categories", "insert", time.Now())

	category.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, category); err != nil {
		return fmt.Errorf("categories: insert: %w", err)
	}
	return nil
}

// FindByID resolves a category reference. Returns (nil, nil) when the id
// does not resolve.
func (r *CategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	defer metrics.ObserveDBOp("categories", "find", time.Now())

	var category models.Category
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("categories: find %s: %w", id.Hex(), err)
	}
	return &category, nil
}

// All returns every category.
func (r *CategoryRepository) All(ctx context.Context) ([]models.Category, error) {
	defer metrics.ObserveDBOp("categories", "find", time.Now())

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("categories: find all: %w", err)
	}

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("categories: decode: %w", err)
	}
	return categories, nil
}

// Update replaces the mutable fields of an existing category and returns the
// updated document, or (nil, nil) when the id does not resolve.
func (r *CategoryRepository) Update(ctx context.Context, id primitive.ObjectID, category *models.Category) (*models.Category, error) {
	defer metrics.ObserveDBOp("categories", "update", time.Now())

	update := bson.M{"$set": bson.M{
		"name":  category.Name,
		"icon":  category.Icon,
		"color": category.Color,
	}}

	result, err := r.col.UpdateByID(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("categories: update %s: %w", id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// Delete removes a category. Returns false when the id does not resolve.
func (r *CategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	defer metrics.ObserveDBOp("categories", "delete", time.Now())

	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("categories: delete %s: %w", id.Hex(), err)
	}
	return result.DeletedCount > 0, nil
}
