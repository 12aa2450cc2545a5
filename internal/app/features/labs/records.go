// internal/app/features/labs/records.go
package labs

import (
	"context"
	"errors"
	"net/http"

	labstore "github.com/dalemusser/labhub/internal/app/store/labs"
	recordstore "github.com/dalemusser/labhub/internal/app/store/records"
	"github.com/dalemusser/labhub/internal/app/system/httpjson"
	"github.com/dalemusser/labhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// deleteWorkRecord unreferences a work record from the lab and deletes the
// underlying document. The two writes are independent; unreferencing comes
// first so a partial failure leaves at worst an orphaned record, never a
// dangling reference a reader would resolve to null forever.
func (h *Handler) deleteWorkRecord(w http.ResponseWriter, r *http.Request, field string) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid lab id")
		return
	}
	recordID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "itemID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid record id")
		return
	}
	kind := fieldRecordKind(field)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	records := recordstore.New(h.DB)
	if _, err := records.GetByID(ctx, kind, recordID); err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "record not found")
			return
		}
		h.Log.Error("load record failed", zap.String("record_id", recordID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load record")
		return
	}

	if err := labstore.New(h.DB).PullWorkRecordRef(ctx, oid, field, recordID); err != nil {
		if errors.Is(err, labstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "lab or reference not found")
			return
		}
		h.Log.Error("unreference record failed",
			zap.String("lab_id", oid.Hex()),
			zap.String("record_id", recordID.Hex()),
			zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to remove reference")
		return
	}

	if err := records.Delete(ctx, kind, recordID); err != nil && !errors.Is(err, recordstore.ErrNotFound) {
		// The reference is already gone; the orphaned record needs
		// manual cleanup, so make the partial failure loud.
		h.Log.Error("delete record after unreference failed",
			zap.String("record_id", recordID.Hex()),
			zap.String("kind", string(kind)),
			zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "reference removed but record deletion failed")
		return
	}

	h.Activity.Record(ctx, r, "lab."+field+".remove", map[string]string{
		"lab_id":    oid.Hex(),
		"record_id": recordID.Hex(),
	})
	httpjson.Message(w, "record removed")
}
