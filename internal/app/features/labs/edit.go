// internal/app/features/labs/edit.go
package labs

import (
	"context"
	"errors"
	"net/http"
	"strings"

	labstore "github.com/dalemusser/labhub/internal/app/store/labs"
	"github.com/dalemusser/labhub/internal/app/system/httpjson"
	"github.com/dalemusser/labhub/internal/app/system/sanitize"
	"github.com/dalemusser/labhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// updateLabInput carries the updatable scalar fields. Pointers distinguish
// "not sent" from "set to empty".
type updateLabInput struct {
	Name    *string `json:"name"`
	Domain  *string `json:"domain"`
	Vision  *string `json:"vision"`
	Mission *string `json:"mission"`
	About   *string `json:"about"`
}

// HandleUpdate applies a partial update. A name change re-validates
// uniqueness before writing so the caller gets a clean duplicate error
// rather than a raw index violation.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid lab id")
		return
	}

	var in updateLabInput
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
	if in.Domain != nil {
		set["domain"] = sanitize.Text(*in.Domain)
	}
	if in.Vision != nil {
		set["vision"] = sanitize.Text(*in.Vision)
	}
	if in.Mission != nil {
		set["mission"] = sanitize.Text(*in.Mission)
	}
	if in.About != nil {
		set["about"] = sanitize.Text(*in.About)
	}
	if len(set) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "no fields to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	store := labstore.New(h.DB)

	if name, ok := set["name"].(string); ok {
		taken, err := store.NameExistsForOther(ctx, text.Fold(name), oid)
		if err != nil {
			h.Log.Error("lab name check failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "failed to update lab")
			return
		}
		if taken {
			httpjson.Error(w, http.StatusBadRequest, labstore.ErrDuplicateLabName.Error())
			return
		}
	}

	if err := store.Update(ctx, oid, set); err != nil {
		switch {
		case errors.Is(err, labstore.ErrNotFound):
			httpjson.Error(w, http.StatusNotFound, "lab not found")
		case errors.Is(err, labstore.ErrDuplicateLabName):
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		default:
			h.Log.Error("update lab failed", zap.String("lab_id", oid.Hex()), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "failed to update lab")
		}
		return
	}

	lab, err := store.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, labstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "lab not found")
			return
		}
		h.Log.Error("load lab failed", zap.String("lab_id", oid.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load lab")
		return
	}

	h.Activity.Record(ctx, r, "lab.update", map[string]string{"lab_id": oid.Hex()})
	httpjson.Write(w, http.StatusOK, lab)
}
