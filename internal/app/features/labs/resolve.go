// internal/app/features/labs/resolve.go
package labs

import (
	"context"

	recordstore "github.com/dalemusser/labhub/internal/app/store/records"
	userstore "github.com/dalemusser/labhub/internal/app/store/users"
	"github.com/dalemusser/labhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// labView is the read-path representation of a lab with every reference
// field resolved. Dangling references render as null entries; resolution
// is best-effort and never fails the read.
type labView struct {
	models.Lab

	Directors    []directorView        `json:"directors"`
	Projects     []*models.WorkRecord  `json:"projects"`
	Patents      []*models.WorkRecord  `json:"patents"`
	Publications []*models.WorkRecord  `json:"publications"`
	Technologies []*models.WorkRecord  `json:"technologies"`
	Courses      []*models.WorkRecord  `json:"courses"`
	Manpower     []*models.User        `json:"manpower"`
}

// directorView carries the tenure record plus the resolved user, when the
// record points at one that still exists.
type directorView struct {
	models.Director
	User *models.User `json:"user"`
}

// resolver batches the cross-collection lookups for one or more labs.
type resolver struct {
	db  *mongo.Database
	log *zap.Logger
}

func (rv *resolver) resolveLabs(ctx context.Context, labList []models.Lab) []labView {
	views := make([]labView, 0, len(labList))
	for _, lab := range labList {
		views = append(views, rv.resolveLab(ctx, lab))
	}
	return views
}

func (rv *resolver) resolveLab(ctx context.Context, lab models.Lab) labView {
	users := rv.loadUsers(ctx, userIDsForLab(lab))

	view := labView{
		Lab:          lab,
		Projects:     rv.loadRecords(ctx, models.KindProject, lab.Projects),
		Patents:      rv.loadRecords(ctx, models.KindPatent, lab.Patents),
		Publications: rv.loadRecords(ctx, models.KindPublication, lab.Publications),
		Technologies: rv.loadRecords(ctx, models.KindTechnology, lab.Technologies),
		Courses:      rv.loadRecords(ctx, models.KindCourse, lab.Courses),
		Manpower:     make([]*models.User, 0, len(lab.Manpower)),
		Directors:    make([]directorView, 0, len(lab.Directors)),
	}

	for _, id := range lab.Manpower {
		view.Manpower = append(view.Manpower, users[id])
	}
	for _, d := range lab.Directors {
		dv := directorView{Director: d}
		if d.User != nil {
			dv.User = users[*d.User]
		}
		view.Directors = append(view.Directors, dv)
	}
	return view
}

// loadUsers fetches the given users into an id map. Lookup failures are
// logged and leave every reference unresolved rather than failing the read.
func (rv *resolver) loadUsers(ctx context.Context, ids []primitive.ObjectID) map[primitive.ObjectID]*models.User {
	out := make(map[primitive.ObjectID]*models.User, len(ids))
	if len(ids) == 0 {
		return out
	}
	users, err := userstore.New(rv.db).GetByIDs(ctx, ids)
	if err != nil {
		rv.log.Warn("user resolution failed", zap.Error(err))
		return out
	}
	for i := range users {
		out[users[i].ID] = &users[i]
	}
	return out
}

// loadRecords resolves one reference array, preserving order and rendering
// dangling ids as nulls.
func (rv *resolver) loadRecords(ctx context.Context, kind models.RecordKind, ids []primitive.ObjectID) []*models.WorkRecord {
	resolved := make([]*models.WorkRecord, 0, len(ids))
	if len(ids) == 0 {
		return resolved
	}
	recs, err := recordstore.New(rv.db).GetByIDs(ctx, kind, ids)
	if err != nil {
		rv.log.Warn("work record resolution failed",
			zap.String("kind", string(kind)), zap.Error(err))
		recs = nil
	}
	byID := make(map[primitive.ObjectID]*models.WorkRecord, len(recs))
	for i := range recs {
		byID[recs[i].ID] = &recs[i]
	}
	for _, id := range ids {
		resolved = append(resolved, byID[id])
	}
	return resolved
}

func userIDsForLab(lab models.Lab) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	add := func(id primitive.ObjectID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, id := range lab.Manpower {
		add(id)
	}
	for _, d := range lab.Directors {
		if d.User != nil {
			add(*d.User)
		}
	}
	return ids
}
