// internal/app/features/groups/edit.go
package groups

import (
	"context"
	"errors"
	"net/http"
	"strings"

	groupstore "github.com/dalemusser/labhub/internal/app/store/groups"
	"github.com/dalemusser/labhub/internal/app/system/httpjson"
	"github.com/dalemusser/labhub/internal/app/system/sanitize"
	"github.com/dalemusser/labhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// updateGroupInput carries the updatable scalar fields. lab_id is immutable
// and deliberately absent.
type updateGroupInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	About       *string `json:"about"`
	Vision      *string `json:"vision"`
	Mission     *string `json:"mission"`
}

// HandleUpdate applies a partial update, re-validating the (name, lab)
// composite uniqueness on a name change.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid group id")
		return
	}

	var in updateGroupInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	set := bson.M{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			httpjson.Error(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		set["name"] = name
	}
	if in.Description != nil {
		set["description"] = sanitize.Text(*in.Description)
	}
	if in.About != nil {
		set["about"] = sanitize.Text(*in.About)
	}
	if in.Vision != nil {
		set["vision"] = sanitize.Text(*in.Vision)
	}
	if in.Mission != nil {
		set["mission"] = sanitize.Text(*in.Mission)
	}
	if len(set) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "no fields to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	store := groupstore.New(h.DB)

	group, err := store.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "group not found")
			return
		}
		h.Log.Error("load group failed", zap.String("group_id", oid.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update group")
		return
	}

	if name, ok := set["name"].(string); ok {
		taken, err := store.NameExistsForOtherInLab(ctx, text.Fold(name), group.LabID, oid)
		if err != nil {
			h.Log.Error("group name check failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "failed to update group")
			return
		}
		if taken {
			httpjson.Error(w, http.StatusBadRequest, groupstore.ErrDuplicateGroupName.Error())
			return
		}
	}

	if err := store.Update(ctx, oid, set); err != nil {
		switch {
		case errors.Is(err, groupstore.ErrNotFound):
			httpjson.Error(w, http.StatusNotFound, "group not found")
		case errors.Is(err, groupstore.ErrDuplicateGroupName):
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		default:
			h.Log.Error("update group failed", zap.String("group_id", oid.Hex()), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "failed to update group")
		}
		return
	}

	updated, err := store.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "group not found")
			return
		}
		h.Log.Error("load group failed", zap.String("group_id", oid.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load group")
		return
	}

	h.Activity.Record(ctx, r, "group.update", map[string]string{"group_id": oid.Hex()})
	httpjson.Write(w, http.StatusOK, updated)
}

// HandleDelete removes a group. The parent lab holds no group list, so
// there is nothing to cascade.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid group id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	if err := groupstore.New(h.DB).Delete(ctx, oid); err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "group not found")
			return
		}
		h.Log.Error("delete group failed", zap.String("group_id", oid.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to delete group")
		return
	}

	h.Activity.Record(ctx, r, "group.delete", map[string]string{"group_id": oid.Hex()})
	httpjson.Message(w, "group deleted")
}
