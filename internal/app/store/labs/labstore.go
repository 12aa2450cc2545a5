// internal/app/store/labs/labstore.go
package labstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/labhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateLabName = errors.New("a lab with this name already exists")
	ErrNotFound         = errors.New("lab or embedded item not found")
)

// FileField maps a sub-resource kind tag to the embedded array it lives in.
// Unknown tags map to "" and are rejected by callers as validation errors.
func FileField(kind string) string {
	switch kind {
	case "notice", "notices":
		return "notices"
	case "circular", "circulars":
		return "circulars"
	case "advertisement", "advertisements":
		return "advertisements"
	case "product", "products":
		return "products"
	}
	return ""
}

// RefField maps a work-record reference field name to itself when valid.
func RefField(field string) string {
	switch field {
	case "projects", "patents", "publications", "technologies", "courses":
		return field
	}
	return ""
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("labs")}
}

func (s *Store) Create(ctx context.Context, lab models.Lab) (models.Lab, error) {
	now := time.Now().UTC()
	lab.ID = primitive.NewObjectID()
	lab.NameCI = text.Fold(lab.Name)
	lab.CreatedAt = now
	lab.UpdatedAt = now
	if lab.Directors == nil {
		lab.Directors = []models.Director{}
	}
	for i := range lab.Directors {
		if lab.Directors[i].ID.IsZero() {
			lab.Directors[i].ID = primitive.NewObjectID()
		}
	}
	initLabArrays(&lab)
	_, err := s.c.InsertOne(ctx, lab)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Lab{}, ErrDuplicateLabName
		}
		return models.Lab{}, err
	}
	return lab, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Lab, error) {
	var lab models.Lab
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&lab)
	if err == mongo.ErrNoDocuments {
		return models.Lab{}, ErrNotFound
	}
	if err != nil {
		return models.Lab{}, err
	}
	return lab, nil
}

// List returns every lab. The directory is small; no pagination by design.
func (s *Store) List(ctx context.Context) ([]models.Lab, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var labs []models.Lab
	if err := cur.All(ctx, &labs); err != nil {
		return nil, err
	}
	return labs, nil
}

// Update applies a partial $set and refreshes UpdatedAt. Name changes fold
// name_ci alongside. Returns ErrNotFound when the id does not resolve.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	if name, ok := set["name"].(string); ok {
		set["name_ci"] = text.Fold(name)
	}
	set["updated_at"] = time.Now().UTC()
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateLabName
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// NameExistsForOther checks name uniqueness while letting a lab keep its
// own name on update.
func (s *Store) NameExistsForOther(ctx context.Context, nameCI string, excludeID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"name_ci": nameCI,
		"_id":     bson.M{"$ne": excludeID},
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PushFileItem appends an embedded FileItem to the named array.
func (s *Store) PushFileItem(ctx context.Context, labID primitive.ObjectID, field string, item models.FileItem) error {
	res, err := s.c.UpdateByID(ctx, labID, bson.M{
		"$push": bson.M{field: item},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateFileItem rewrites fields of one embedded item via the positional
// operator. set keys are item-relative ("name", "description", "file_url").
func (s *Store) UpdateFileItem(ctx context.Context, labID primitive.ObjectID, field string, itemID primitive.ObjectID, set bson.M) error {
	positional := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range set {
		positional[field+".$."+k] = v
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": labID, field + "._id": itemID},
		bson.M{"$set": positional})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PullFileItem removes one embedded item by id. Item presence is part of
// the filter; the updated_at touch would otherwise count as a modification
// and hide a no-op pull.
func (s *Store) PullFileItem(ctx context.Context, labID primitive.ObjectID, field string, itemID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": labID, field + "._id": itemID},
		bson.M{
			"$pull": bson.M{field: bson.M{"_id": itemID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PushDirector appends a tenure record to the director sequence.
func (s *Store) PushDirector(ctx context.Context, labID primitive.ObjectID, d models.Director) error {
	res, err := s.c.UpdateByID(ctx, labID, bson.M{
		"$push": bson.M{"directors": d},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PullWorkRecordRef removes a work-record id from the named reference
// array. ErrNotFound when the lab is missing or the id was not referenced;
// the reference is matched in the filter so the updated_at touch cannot
// mask a no-op pull.
func (s *Store) PullWorkRecordRef(ctx context.Context, labID primitive.ObjectID, field string, recordID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": labID, field: recordID},
		bson.M{
			"$pull": bson.M{field: recordID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// initLabArrays replaces nil slices so documents always carry the arrays.
// Mongo $push against a missing field would create it, but list responses
// should never render null for a sequence.
func initLabArrays(lab *models.Lab) {
	if lab.Projects == nil {
		lab.Projects = []primitive.ObjectID{}
	}
	if lab.Patents == nil {
		lab.Patents = []primitive.ObjectID{}
	}
	if lab.Publications == nil {
		lab.Publications = []primitive.ObjectID{}
	}
	if lab.Technologies == nil {
		lab.Technologies = []primitive.ObjectID{}
	}
	if lab.Courses == nil {
		lab.Courses = []primitive.ObjectID{}
	}
	if lab.Manpower == nil {
		lab.Manpower = []primitive.ObjectID{}
	}
	if lab.Notices == nil {
		lab.Notices = []models.FileItem{}
	}
	if lab.Circulars == nil {
		lab.Circulars = []models.FileItem{}
	}
	if lab.Advertisements == nil {
		lab.Advertisements = []models.FileItem{}
	}
	if lab.Products == nil {
		lab.Products = []models.FileItem{}
	}
	if lab.ContactInfo == nil {
		lab.ContactInfo = []models.ContactInfo{}
	}
}
