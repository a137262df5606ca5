// Package mongo implements the document-store repositories on MongoDB
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	postsCollection      = "posts"
	commentsCollection   = "comments"
	moderationCollection = "species_identification"
	usersCollection      = "users"

	connectTimeout = 15 * time.Second
)

// Connect dials uri, pings the server and ensures the query indexes on dbName
func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	dctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(dctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", classify(err))
	}
	if err := client.Ping(dctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", classify(err))
	}

	db := client.Database(dbName)
	if err := ensureIndexes(dctx, db); err != nil {
		// queries still work without the indexes, only slower
		slog.Warn("mongo index creation failed", "db", dbName, "error", err)
	}
	return client, db, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	var errs []string

	if _, err := db.Collection(postsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "species", Value: 1}, {Key: "longitude", Value: 1}},
	}); err != nil {
		errs = append(errs, "posts species,longitude: "+err.Error())
	}
	if _, err := db.Collection(postsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "longitude", Value: 1}},
	}); err != nil {
		errs = append(errs, "posts longitude: "+err.Error())
	}
	if _, err := db.Collection(commentsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "date", Value: 1}},
	}); err != nil {
		errs = append(errs, "comments post_id,date: "+err.Error())
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
