package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned by updates and deletes that matched no document
var ErrNotFound = errors.New("document not found")

// EnsureIndexes creates the indexes the list queries rely on
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("inspections").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "storeId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "templateId", Value: 1}, {Key: "createdAt", Value: 1}}},
	})
	return err
}
