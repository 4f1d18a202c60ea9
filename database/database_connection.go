package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	UsersCollection         = "users"
	InterviewsCollection    = "interviews"
	NotificationsCollection = "notifications"
	LoginLogsCollection     = "loginlogs"
)

// DB owns the client and the application database handle.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, uri, databaseName string) (*DB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	log.Printf("Connected to MongoDB, database %q", databaseName)

	return &DB{client: client, db: client.Database(databaseName)}, nil
}

func (d *DB) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

func (d *DB) Disconnect(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

func (d *DB) Users() *UserRepository {
	return &UserRepository{col: d.Collection(UsersCollection)}
}

func (d *DB) Interviews() *InterviewRepository {
	return &InterviewRepository{col: d.Collection(InterviewsCollection)}
}

func (d *DB) Notifications() *NotificationRepository {
	return &NotificationRepository{col: d.Collection(NotificationsCollection)}
}

func (d *DB) LoginLogs() *LoginLogRepository {
	return &LoginLogRepository{col: d.Collection(LoginLogsCollection)}
}

// EnsureIndexes creates the indexes the queries rely on. Creating an existing
// index is a no-op on the server.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		InterviewsCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "date", Value: -1}}},
			{Keys: bson.D{{Key: "interviewer", Value: 1}, {Key: "date", Value: 1}}},
		},
		NotificationsCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		LoginLogsCollection: {
			{Keys: bson.D{{Key: "loginAt", Value: -1}}},
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "loginAt", Value: -1}}},
		},
	}
	for name, idx := range indexes {
		if _, err := d.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
