// internal/app/features/groups/directors.go
package groups

import (
	"context"
	"errors"
	"net/http"
	"strings"

	groupstore "github.com/dalemusser/labhub/internal/app/store/groups"
	"github.com/dalemusser/labhub/internal/app/system/dates"
	"github.com/dalemusser/labhub/internal/app/system/httpjson"
	"github.com/dalemusser/labhub/internal/app/system/sanitize"
	"github.com/dalemusser/labhub/internal/app/system/timeouts"
	"github.com/dalemusser/labhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type assistantDirectorInput struct {
	User        string `json:"user"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Image       string `json:"image"`
	From        string `json:"from"`
	To          string `json:"to"`
}

// HandleAddAssistantDirector appends a tenure record to the group's
// assistant-director sequence.
func (h *Handler) HandleAddAssistantDirector(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid group id")
		return
	}

	var in assistantDirectorInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	from, err := dates.Parse(in.From)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "assistant director requires a valid from date")
		return
	}
	to, err := dates.ParseOptional(in.To)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid assistant director to date")
		return
	}

	director := models.Director{
		ID:          primitive.NewObjectID(),
		Name:        sanitize.Text(in.Name),
		Designation: sanitize.Text(in.Designation),
		Image:       strings.TrimSpace(in.Image),
		From:        from,
		To:          to,
	}
	if strings.TrimSpace(in.User) != "" {
		uid, err := primitive.ObjectIDFromHex(strings.TrimSpace(in.User))
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid assistant director user id")
			return
		}
		director.User = &uid
	} else if director.Name == "" {
		httpjson.Error(w, http.StatusBadRequest, "assistant director requires a user reference or a name")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	store := groupstore.New(h.DB)
	if err := store.PushAssistantDirector(ctx, oid, director); err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "group not found")
			return
		}
		h.Log.Error("add assistant director failed", zap.String("group_id", oid.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to add assistant director")
		return
	}

	h.Activity.Record(ctx, r, "group.assistant_director.add", map[string]string{
		"group_id":    oid.Hex(),
		"director_id": director.ID.Hex(),
	})

	group, err := store.GetByID(ctx, oid)
	if err != nil {
		httpjson.Write(w, http.StatusCreated, director)
		return
	}
	httpjson.Write(w, http.StatusCreated, group.AssistantDirectors)
}
