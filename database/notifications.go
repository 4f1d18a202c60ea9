package database

import (
	"context"
	"time"

	"github.com/princinho/pepinterview/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type NotificationRepository struct {
	col *mongo.Collection
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if n.ID.IsZero() {
		n.ID = bson.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, n)
	return translate(err)
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID bson.ObjectID, limit int64) ([]models.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.col.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.Notification, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id bson.ObjectID) (*models.Notification, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"read": true, "updatedAt": time.Now().UTC()}}

	var n models.Notification
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&n); err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

type LoginLogRepository struct {
	col *mongo.Collection
}

func (r *LoginLogRepository) Insert(ctx context.Context, l *models.LoginLog) error {
	if l.ID.IsZero() {
		l.ID = bson.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, l)
	return err
}
