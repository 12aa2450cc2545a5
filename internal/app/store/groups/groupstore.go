// internal/app/store/groups/groupstore.go
package groupstore

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateGroupName = errors.New("a group with this name already exists in the lab")
	ErrNotFound           = errors.New("group or embedded item not found")
)

// FileField maps a sub-resource kind tag to the embedded array it lives in.
func FileField(kind string) string {
	switch kind {
	case "project", "projects":
		return "projects"
	case "patent", "patents":
		return "patents"
	case "technology", "technologies":
		return "technologies"
	case "publication", "publications":
		return "publications"
	case "course", "courses":
		return "courses"
	case "notice", "notices":
		return "notices"
	case "circular", "circulars":
		return "circulars"
	}
	return ""
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

func (s *Store) Create(ctx context.Context, group models.Group) (models.Group, error) {
	now := time.Now().UTC()
	group.ID = primitive.NewObjectID()
	group.NameCI = text.Fold(group.Name)
	group.CreatedAt = now
	group.UpdatedAt = now
	initGroupArrays(&group)
	_, err := s.c.InsertOne(ctx, group)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, ErrDuplicateGroupName
		}
		return models.Group{}, err
	}
	return group, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var group models.Group
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&group)
	if err == mongo.ErrNoDocuments {
		return models.Group{}, ErrNotFound
	}
	if err != nil {
		return models.Group{}, err
	}
	return group, nil
}

func (s *Store) List(ctx context.Context) ([]models.Group, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// GroupName is the projection returned by ListNames.
type GroupName struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// ListNames returns id+name pairs only, for pickers.
func (s *Store) ListNames(ctx context.Context) ([]GroupName, error) {
	opts := options.Find().SetProjection(bson.M{"name": 1})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var names []GroupName
	if err := cur.All(ctx, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// Update applies a partial $set. LabID is immutable and callers never pass
// it. Name changes fold name_ci alongside.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	if name, ok := set["name"].(string); ok {
		set["name_ci"] = text.Fold(name)
	}
	set["updated_at"] = time.Now().UTC()
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateGroupName
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a group. Deliberately leaves the parent lab untouched;
// the lab side holds no group list in the canonical model.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// NameExistsForOtherInLab checks composite uniqueness while letting a
// group keep its own name on update.
func (s *Store) NameExistsForOtherInLab(ctx context.Context, nameCI string, labID, excludeID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"name_ci": nameCI,
		"lab_id":  labID,
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

func (s *Store) PushFileItem(ctx context.Context, groupID primitive.ObjectID, field string, item models.FileItem) error {
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{
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

func (s *Store) UpdateFileItem(ctx context.Context, groupID primitive.ObjectID, field string, itemID primitive.ObjectID, set bson.M) error {
	positional := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range set {
		positional[field+".$."+k] = v
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": groupID, field + "._id": itemID},
		bson.M{"$set": positional})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PullFileItem matches the item in the filter; the updated_at touch would
// otherwise count as a modification and hide a no-op pull.
func (s *Store) PullFileItem(ctx context.Context, groupID primitive.ObjectID, field string, itemID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": groupID, field + "._id": itemID},
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

func (s *Store) PushAssistantDirector(ctx context.Context, groupID primitive.ObjectID, d models.Director) error {
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$push": bson.M{"assistant_directors": d},
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

func (s *Store) PushContactInfo(ctx context.Context, groupID primitive.ObjectID, info models.ContactInfo) error {
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$push": bson.M{"contact_info": info},
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

func (s *Store) UpdateContactInfo(ctx context.Context, groupID, contactID primitive.ObjectID, info models.ContactInfo) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": groupID, "contact_info._id": contactID},
		bson.M{"$set": bson.M{
			"contact_info.$.type":  info.Type,
			"contact_info.$.label": info.Label,
			"contact_info.$.value": info.Value,
			"updated_at":           time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) PullContactInfo(ctx context.Context, groupID, contactID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": groupID, "contact_info._id": contactID},
		bson.M{
			"$pull": bson.M{"contact_info": bson.M{"_id": contactID}},
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

func initGroupArrays(group *models.Group) {
	if group.Employees == nil {
		group.Employees = []primitive.ObjectID{}
	}
	if group.AssistantDirectors == nil {
		group.AssistantDirectors = []models.Director{}
	}
	if group.Projects == nil {
		group.Projects = []models.FileItem{}
	}
	if group.Patents == nil {
		group.Patents = []models.FileItem{}
	}
	if group.Technologies == nil {
		group.Technologies = []models.FileItem{}
	}
	if group.Publications == nil {
		group.Publications = []models.FileItem{}
	}
	if group.Courses == nil {
		group.Courses = []models.FileItem{}
	}
	if group.Notices == nil {
		group.Notices = []models.FileItem{}
	}
	if group.Circulars == nil {
		group.Circulars = []models.FileItem{}
	}
	if group.ContactInfo == nil {
		group.ContactInfo = []models.ContactInfo{}
	}
}
