// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureLabs(ctx, db); err != nil {
		problems = append(problems, "labs: "+err.Error())
	}
	if err := ensureGroups(ctx, db); err != nil {
		problems = append(problems, "groups: "+err.Error())
	}
	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureWorkRecords(ctx, db); err != nil {
		problems = append(problems, "work records: "+err.Error())
	}
	if err := ensureActivity(ctx, db); err != nil {
		problems = append(problems, "activity: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string
	for _, m := range models {
		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			// An index with the same keys already existing under another
			// name shows up as IndexOptionsConflict; that still means the
			// constraint is in place.
			if strings.Contains(err.Error(), "IndexOptionsConflict") {
				continue
			}
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Unique folded lab name backs the directory-wide uniqueness rule.
func ensureLabs(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("labs"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("uniq_name_ci").SetUnique(true),
		},
	})
}

// Group names are unique within a lab, not globally, so the unique index is
// composite over (name_ci, lab_id).
func ensureGroups(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("groups"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "lab_id", Value: 1}},
			Options: options.Index().SetName("uniq_name_ci_lab").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "lab_id", Value: 1}},
			Options: options.Index().SetName("by_lab"),
		},
	})
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
	})
}

func ensureWorkRecords(ctx context.Context, db *mongo.Database) error {
	var problems []string
	for _, name := range []string{"projects", "patents", "publications", "technologies", "courses"} {
		err := ensureIndexSet(ctx, db.Collection(name), []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "group_id", Value: 1}},
				Options: options.Index().SetName("by_group"),
			},
		})
		if err != nil {
			problems = append(problems, name+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureActivity(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("activity"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_created_desc"),
		},
	})
}
