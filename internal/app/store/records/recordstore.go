// internal/app/store/records/recordstore.go
package recordstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/labhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store persists the five standalone work-record collections. One store
// serves all kinds; every method takes the kind and routes to its
// collection, so handlers never touch collection names.
type Store struct {
	db *mongo.Database
}

var ErrNotFound = errors.New("work record not found")

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) coll(kind models.RecordKind) *mongo.Collection {
	return s.db.Collection(kind.Collection())
}

func (s *Store) Create(ctx context.Context, kind models.RecordKind, rec models.WorkRecord) (models.WorkRecord, error) {
	now := time.Now().UTC()
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if _, err := s.coll(kind).InsertOne(ctx, rec); err != nil {
		return models.WorkRecord{}, err
	}
	return rec, nil
}

func (s *Store) GetByID(ctx context.Context, kind models.RecordKind, id primitive.ObjectID) (models.WorkRecord, error) {
	var rec models.WorkRecord
	err := s.coll(kind).FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return models.WorkRecord{}, ErrNotFound
	}
	if err != nil {
		return models.WorkRecord{}, err
	}
	return rec, nil
}

// GetByIDs loads records for read-time reference resolution; dangling ids
// are absent from the result.
func (s *Store) GetByIDs(ctx context.Context, kind models.RecordKind, ids []primitive.ObjectID) ([]models.WorkRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.coll(kind).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var recs []models.WorkRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *Store) List(ctx context.Context, kind models.RecordKind) ([]models.WorkRecord, error) {
	cur, err := s.coll(kind).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var recs []models.WorkRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *Store) Update(ctx context.Context, kind models.RecordKind, id primitive.ObjectID, set bson.M) error {
	set["updated_at"] = time.Now().UTC()
	res, err := s.coll(kind).UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, kind models.RecordKind, id primitive.ObjectID) error {
	res, err := s.coll(kind).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
