// Package database owns the MongoDB connection for the application.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/omikunle/config"
)

const connectTimeout = 10 * time.Second

// DB wraps the mongo client and the application database handle.
type DB struct {
	client   *mongo.Client
	Database *mongo.Database
}

// Connect opens the MongoDB connection and verifies it with a ping.
// Returns an error instead of calling log.Fatal so the caller can
// shut down gracefully.
func Connect(cfg *config.Config) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	clientOpts := options.Client().ApplyURI(cfg.MongoURI).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	db := &DB{client: client, Database: client.Database(cfg.MongoDB)}

	if err := db.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return db, nil
}

// Collection returns a handle to the named collection.
func (d *DB) Collection(name string) *mongo.Collection {
	return d.Database.Collection(name)
}

// Close disconnects from MongoDB. Safe to call on a nil receiver.
func (d *DB) Close(ctx context.Context) error {
	if d == nil || d.client == nil {
		return nil
	}
	return d.client.Disconnect(ctx)
}

// ensureIndexes creates the indexes the data model relies on: unique user
// emails and the descending dateOrdered index the order listing sorts on.
func (d *DB) ensureIndexes(ctx context.Context) error {
	_, err := d.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("database: users email index: %w", err)
	}

	_, err = d.Collection("orders").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "dateOrdered", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("database: orders dateOrdered index: %w", err)
	}

	return nil
}
