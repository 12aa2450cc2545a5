// internal/app/features/activity/activity.go
package activity

import (
	"context"
	"net/http"

	activitystore "github.com/dalemusser/labhub/internal/app/store/activity"
	userstore "github.com/dalemusser/labhub/internal/app/store/users"
	"github.com/dalemusser/labhub/internal/app/system/auth"
	"github.com/dalemusser/labhub/internal/app/system/httpjson"
	"github.com/dalemusser/labhub/internal/app/system/timeouts"
	"github.com/dalemusser/labhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// listLimit caps one activity page; the log is append-only and unbounded.
const listLimit = 500

// Handler serves the admin activity listing.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs an activity handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// Routes mounts the activity endpoints (typically under "/activity").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireRole("admin"))
	r.Get("/", h.ServeList)
	return r
}

// entryView is an activity entry with the acting user resolved best-effort.
type entryView struct {
	models.ActivityEntry
	User *models.User `json:"user"`
}

// ServeList returns recent activity, newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	entries, err := activitystore.New(h.DB).ListRecent(ctx, listLimit)
	if err != nil {
		h.Log.Error("list activity failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load activity")
		return
	}

	ids := make([]primitive.ObjectID, 0, len(entries))
	seen := make(map[primitive.ObjectID]struct{})
	for _, e := range entries {
		if e.UserID == nil {
			continue
		}
		if _, ok := seen[*e.UserID]; !ok {
			seen[*e.UserID] = struct{}{}
			ids = append(ids, *e.UserID)
		}
	}

	byID := make(map[primitive.ObjectID]*models.User, len(ids))
	if len(ids) > 0 {
		users, err := userstore.New(h.DB).GetByIDs(ctx, ids)
		if err != nil {
			h.Log.Warn("activity user resolution failed", zap.Error(err))
		}
		for i := range users {
			byID[users[i].ID] = &users[i]
		}
	}

	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		ev := entryView{ActivityEntry: e}
		if e.UserID != nil {
			ev.User = byID[*e.UserID]
		}
		views = append(views, ev)
	}
	httpjson.Write(w, http.StatusOK, views)
}
