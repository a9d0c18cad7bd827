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

// UserRepository handles persistence for User documents.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// Create persists a new user and fills in the generated id. The unique email
// index surfaces duplicates as a write error.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	defer metrics.ObserveDBOp("users", "insert", time.Now())

	user.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("users: insert: %w", err)
	}
	return nil
}

// ErrDuplicateEmail reports a registration against an email that already
// has an account.
var ErrDuplicateEmail = fmt.Errorf("users: email already exists")

// FindByID resolves a user reference. Returns (nil, nil) when the id does
// not resolve.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	defer metrics.ObserveDBOp("users", "find", time.Now())

	var user models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("users: find %s: %w", id.Hex(), err)
	}
	return &user, nil
}

// FindByEmail looks a user up by their unique email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	defer metrics.ObserveDBOp("users", "find", time.Now())

	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("users: find by email: %w", err)
	}
	return &user, nil
}

// All returns every user.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	defer metrics.ObserveDBOp("users", "find", time.Now())

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("users: find all: %w", err)
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("users: decode: %w", err)
	}
	return users, nil
}

// Delete removes a user. Returns false when the id does not resolve.
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	defer metrics.ObserveDBOp("users", "delete", time.Now())

	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("users: delete %s: %w", id.Hex(), err)
	}
	return result.DeletedCount > 0, nil
}

// Count returns the number of registered users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveDBOp("users", "find", time.Now())

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("users: count: %w", err)
	}
	return n, nil
}
