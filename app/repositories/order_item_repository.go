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

// OrderItemRepository handles persistence for OrderItem documents. Items are
// owned by their order: they are written during order submission and removed
// by the order's cascade delete, never managed standalone.
type OrderItemRepository struct {
	col *mongo.Collection
}

func NewOrderItemRepository(db *database.DB) *OrderItemRepository {
	return &OrderItemRepository{col: db.Collection("orderitems")}
}

// Create persists a new order item and fills in its generated id.
func (r *OrderItemRepository) Create(ctx context.Context, item *models.OrderItem) error {
	defer metrics.ObserveDBOp("orderitems", "insert", time.Now())

	item.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("orderitems: insert: %w", err)
	}
	return nil
}

// FindByID resolves an order item reference. Returns (nil, nil) when the id
// does not resolve.
func (r *OrderItemRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.OrderItem, error) {
	defer metrics.ObserveDBOp("orderitems", "find", time.Now())

	var item models.OrderItem
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("orderitems: find %s: %w", id.Hex(), err)
	}
	return &item, nil
}

// Delete removes an order item. Deleting an already-missing item is not an
// error; the cascade only cares that the item is gone.
func (r *OrderItemRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveDBOp("orderitems", "delete", time.Now())

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("orderitems: delete %s: %w", id.Hex(), err)
	}
	return nil
}
