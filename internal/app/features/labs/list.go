// internal/app/features/labs/list.go
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

// ServeList returns every lab with references resolved.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	labList, err := labstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("list labs failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load labs")
		return
	}

	rv := &resolver{db: h.DB, log: h.Log}
	httpjson.Write(w, http.StatusOK, rv.resolveLabs(ctx, labList))
}

// ServeView returns one lab with references resolved.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid lab id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	lab, err := labstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, labstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "lab not found")
			return
		}
		h.Log.Error("load lab failed", zap.String("lab_id", oid.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load lab")
		return
	}

	rv := &resolver{db: h.DB, log: h.Log}
	httpjson.Write(w, http.StatusOK, rv.resolveLab(ctx, lab))
}
