// internal/app/store/activity/store.go
package activity

import (
	"context"
	"time"

	"github.com/dalemusser/labhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the append-only activity collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("activity")}
}

// Append writes one entry. Entries are never updated or deleted.
func (s *Store) Append(ctx context.Context, entry models.ActivityEntry) error {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now().UTC()
	_, err := s.c.InsertOne(ctx, entry)
	return err
}

// ListRecent returns entries newest-first, capped at limit.
func (s *Store) ListRecent(ctx context.Context, limit int64) ([]models.ActivityEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var entries []models.ActivityEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
