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

// OrderRepository handles persistence for Order documents.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *database.DB) *OrderRepository {
	return &OrderRepository{col: db.Collection("orders")}
}

// Create persists a new order and fills in its generated id. The order
// timestamp defaults to creation time.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	defer metrics.ObserveDBOp("orders", "insert", time.Now())

	order.ID = primitive.NewObjectID()
	if order.DateOrdered.IsZero() {
		order.DateOrdered = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("orders: insert: %w", err)
	}
	return nil
}

// FindByID resolves an order reference. Returns (nil, nil) when the id does
// not resolve.
func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	defer metrics.ObserveDBOp("orders", "find", time.Now())

	var order models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("orders: find %s: %w", id.Hex(), err)
	}
	return &order, nil
}

// All returns every order, newest first.
func (r *OrderRepository) All(ctx context.Context) ([]models.Order, error) {
	defer metrics.ObserveDBOp("orders", "find", time.Now())

	cursor, err := r.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "dateOrdered", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("orders: find all: %w", err)
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("orders: decode: %w", err)
	}
	return orders, nil
}

// UpdateStatus replaces only the status field and returns the updated order,
// or (nil, nil) when the id does not resolve.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	defer metrics.ObserveDBOp("orders", "update", time.Now())

	result, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return nil, fmt.Errorf("orders: update status %s: %w", id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// Delete removes an order. Returns false when the id does not resolve.
// Cascading the order's line items is the service's job.
func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	defer metrics.ObserveDBOp("orders", "delete", time.Now())

	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("orders: delete %s: %w", id.Hex(), err)
	}
	return result.DeletedCount > 0, nil
}

// TotalSales sums totalPrice across all orders with a $group aggregation.
// An empty collection yields zero.
func (r *OrderRepository) TotalSales(ctx context.Context) (float64, error) {
	defer metrics.ObserveDBOp("orders", "aggregate", time.Now())

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalsales", Value: bson.D{{Key: "$sum", Value: "$totalPrice"}}},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("orders: aggregate total sales: %w", err)
	}

	var results []struct {
		TotalSales float64 `bson:"totalsales"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("orders: decode total sales: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].TotalSales, nil
}
