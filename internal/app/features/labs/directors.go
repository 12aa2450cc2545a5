// internal/app/features/labs/directors.go
package labs

import (
	"context"
	"errors"
	"net/http"

	labstore "github.com/dalemusser/labhub/internal/app/store/labs"
	"github.com/dalemusser/labhub/internal/app/system/httpjson"
	"github.com/dalemusser/labhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleAddDirector appends a tenure record to the lab's director sequence.
func (h *Handler) HandleAddDirector(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid lab id")
		return
	}

	var in directorInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	director, err := buildDirector(in)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	store := labstore.New(h.DB)
	if err := store.PushDirector(ctx, oid, director); err != nil {
		if errors.Is(err, labstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "lab not found")
			return
		}
		h.Log.Error("add director failed", zap.String("lab_id", oid.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to add director")
		return
	}

	h.Activity.Record(ctx, r, "lab.director.add", map[string]string{
		"lab_id":      oid.Hex(),
		"director_id": director.ID.Hex(),
	})

	lab, err := store.GetByID(ctx, oid)
	if err != nil {
		httpjson.Write(w, http.StatusCreated, director)
		return
	}
	httpjson.Write(w, http.StatusCreated, lab.Directors)
}
