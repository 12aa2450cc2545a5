// internal/app/features/groups/list.go
package groups

import (
	"context"
	"errors"
	"net/http"

	groupstore "github.com/dalemusser/labhub/internal/app/store/groups"
	userstore "github.com/dalemusser/labhub/internal/app/store/users"
	"github.com/dalemusser/labhub/internal/app/system/httpjson"
	"github.com/dalemusser/labhub/internal/app/system/timeouts"
	"github.com/dalemusser/labhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// groupView is the read-path representation with employee and assistant
// director references resolved. Dangling references render as null.
type groupView struct {
	models.Group

	Employees          []*models.User          `json:"employees"`
	AssistantDirectors []assistantDirectorView `json:"assistant_directors"`
}

type assistantDirectorView struct {
	models.Director
	User *models.User `json:"user"`
}

// ServeList returns every group with references resolved.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	groupList, err := groupstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("list groups failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load groups")
		return
	}

	views := make([]groupView, 0, len(groupList))
	for _, g := range groupList {
		views = append(views, h.resolveGroup(ctx, g))
	}
	httpjson.Write(w, http.StatusOK, views)
}

// ServeNames returns id+name pairs for pickers.
func (h *Handler) ServeNames(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	names, err := groupstore.New(h.DB).ListNames(ctx)
	if err != nil {
		h.Log.Error("list group names failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load group names")
		return
	}
	if names == nil {
		names = []groupstore.GroupName{}
	}
	httpjson.Write(w, http.StatusOK, names)
}

// ServeView returns one group with references resolved.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid group id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	group, err := groupstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "group not found")
			return
		}
		h.Log.Error("load group failed", zap.String("group_id", oid.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load group")
		return
	}
	httpjson.Write(w, http.StatusOK, h.resolveGroup(ctx, group))
}

// resolveGroup joins the group's user references best-effort; a failed
// lookup leaves the references unresolved instead of failing the read.
func (h *Handler) resolveGroup(ctx context.Context, group models.Group) groupView {
	ids := make([]primitive.ObjectID, 0, len(group.Employees)+len(group.AssistantDirectors))
	seen := make(map[primitive.ObjectID]struct{})
	add := func(id primitive.ObjectID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, id := range group.Employees {
		add(id)
	}
	for _, d := range group.AssistantDirectors {
		if d.User != nil {
			add(*d.User)
		}
	}

	byID := make(map[primitive.ObjectID]*models.User, len(ids))
	if len(ids) > 0 {
		users, err := userstore.New(h.DB).GetByIDs(ctx, ids)
		if err != nil {
			h.Log.Warn("user resolution failed", zap.Error(err))
		}
		for i := range users {
			byID[users[i].ID] = &users[i]
		}
	}

	view := groupView{
		Group:              group,
		Employees:          make([]*models.User, 0, len(group.Employees)),
		AssistantDirectors: make([]assistantDirectorView, 0, len(group.AssistantDirectors)),
	}
	for _, id := range group.Employees {
		view.Employees = append(view.Employees, byID[id])
	}
	for _, d := range group.AssistantDirectors {
		av := assistantDirectorView{Director: d}
		if d.User != nil {
			av.User = byID[*d.User]
		}
		view.AssistantDirectors = append(view.AssistantDirectors, av)
	}
	return view
}
