// Package mongostorages owns the MongoDB connection and hands out the two
// collections this service persists to. Stores are built on top of it the same
// way the rest of the app is built on shared primitives.
package mongostorages

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	// CollActivities holds per-interval activity aggregate records.
	CollActivities = "monitorActivities"
	// CollClients holds individual join/part client event records.
	CollClients = "monitorClients"
)

var ErrInvalidConfig = errors.New("invalid mongo storage config")

// Config holds the settings needed to dial the store.
type Config struct {
	URI               string
	Database          string
	ConnectionTimeout time.Duration
	PingTimeout       time.Duration
}

// MongoStorage is a connected MongoDB database handle.
type MongoStorage struct {
	client *mongo.Client
	db     *mongo.Database
}

// Dial connects to MongoDB, verifies the connection with a ping, and ensures
// the indexes the stores' queries rely on.
func Dial(conf Config) (*MongoStorage, error) {
	if conf.URI == "" || conf.Database == "" {
		return nil, ErrInvalidConfig
	}

	ctx, cancel := context.WithTimeout(context.Background(), conf.ConnectionTimeout)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(conf.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, conf.PingTimeout)
	defer cancelPing()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(conf.Database)
	if err := ensureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &MongoStorage{client: client, db: db}, nil
}

// Collection returns a collection handle by name.
func (s *MongoStorage) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// Close disconnects from MongoDB.
func (s *MongoStorage) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect from mongo: %w", err)
	}
	return nil
}

// ensureIndexes creates the secondary indexes the client-event pipelines scan
// by. Primary-key (time) range scans need no extra index.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CollClients).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "webstrateId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("ensure client event indexes: %w", err)
	}

	_, err = db.Collection(CollActivities).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "webstrateId", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("ensure activity indexes: %w", err)
	}

	return nil
}
