// internal/app/features/records/records.go
package records

import (
	"context"
	"errors"
	"net/http"
	"strings"

	recordstore "github.com/dalemusser/labhub/internal/app/store/records"
	"github.com/dalemusser/labhub/internal/app/system/dates"
	"github.com/dalemusser/labhub/internal/app/system/httpjson"
	"github.com/dalemusser/labhub/internal/app/system/sanitize"
	"github.com/dalemusser/labhub/internal/app/system/timeouts"
	"github.com/dalemusser/labhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// recordInput is the wire form shared by the five kinds. Only a subset of
// fields applies to any one kind; unused ones are simply ignored.
type recordInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`

	Inventor   string `json:"inventor"`
	Author     string `json:"author"`
	Journal    string `json:"journal"`
	Instructor string `json:"instructor"`

	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	FilingDate    string `json:"filing_date"`
	PublishedDate string `json:"published_date"`
	DevelopedDate string `json:"developed_date"`

	DocumentURL string `json:"document_url"`
	GroupID     string `json:"group_id"`
}

func (h *Handler) serveList(kind models.RecordKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
		defer cancel()

		recs, err := recordstore.New(h.DB).List(ctx, kind)
		if err != nil {
			h.Log.Error("list records failed", zap.String("kind", string(kind)), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "failed to load records")
			return
		}
		if recs == nil {
			recs = []models.WorkRecord{}
		}
		httpjson.Write(w, http.StatusOK, recs)
	}
}

func (h *Handler) serveView(kind models.RecordKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid record id")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
		defer cancel()

		rec, err := recordstore.New(h.DB).GetByID(ctx, kind, oid)
		if err != nil {
			if errors.Is(err, recordstore.ErrNotFound) {
				httpjson.Error(w, http.StatusNotFound, "record not found")
				return
			}
			h.Log.Error("load record failed", zap.String("kind", string(kind)), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "failed to load record")
			return
		}
		httpjson.Write(w, http.StatusOK, rec)
	}
}

func (h *Handler) handleCreate(kind models.RecordKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in recordInput
		if err := httpjson.Decode(r, &in); err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		rec, err := buildRecord(in)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
		defer cancel()

		created, err := recordstore.New(h.DB).Create(ctx, kind, rec)
		if err != nil {
			h.Log.Error("create record failed", zap.String("kind", string(kind)), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "failed to create record")
			return
		}

		h.Activity.Record(ctx, r, string(kind)+".create", map[string]string{
			"record_id": created.ID.Hex(),
		})
		httpjson.Write(w, http.StatusCreated, created)
	}
}

func (h *Handler) handleUpdate(kind models.RecordKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid record id")
			return
		}

		var in recordInput
		if err := httpjson.Decode(r, &in); err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		set, err := buildRecordSet(in)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		if len(set) == 0 {
			httpjson.Error(w, http.StatusBadRequest, "no fields to update")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
		defer cancel()

		store := recordstore.New(h.DB)
		if err := store.Update(ctx, kind, oid, set); err != nil {
			if errors.Is(err, recordstore.ErrNotFound) {
				httpjson.Error(w, http.StatusNotFound, "record not found")
				return
			}
			h.Log.Error("update record failed", zap.String("kind", string(kind)), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "failed to update record")
			return
		}

		rec, err := store.GetByID(ctx, kind, oid)
		if err != nil {
			if errors.Is(err, recordstore.ErrNotFound) {
				httpjson.Error(w, http.StatusNotFound, "record not found")
				return
			}
			h.Log.Error("load record failed", zap.String("kind", string(kind)), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "failed to load record")
			return
		}

		h.Activity.Record(ctx, r, string(kind)+".update", map[string]string{
			"record_id": oid.Hex(),
		})
		httpjson.Write(w, http.StatusOK, rec)
	}
}

func (h *Handler) handleDelete(kind models.RecordKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid record id")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
		defer cancel()

		if err := recordstore.New(h.DB).Delete(ctx, kind, oid); err != nil {
			if errors.Is(err, recordstore.ErrNotFound) {
				httpjson.Error(w, http.StatusNotFound, "record not found")
				return
			}
			h.Log.Error("delete record failed", zap.String("kind", string(kind)), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "failed to delete record")
			return
		}

		h.Activity.Record(ctx, r, string(kind)+".delete", map[string]string{
			"record_id": oid.Hex(),
		})
		httpjson.Message(w, "record deleted")
	}
}

// buildRecord validates a full record for creation. Title is required for
// every kind.
func buildRecord(in recordInput) (models.WorkRecord, error) {
	title := sanitize.Text(in.Title)
	if title == "" {
		return models.WorkRecord{}, errors.New("title is required")
	}

	rec := models.WorkRecord{
		Title:       title,
		Description: sanitize.Text(in.Description),
		Status:      sanitize.Text(in.Status),
		Inventor:    sanitize.Text(in.Inventor),
		Author:      sanitize.Text(in.Author),
		Journal:     sanitize.Text(in.Journal),
		Instructor:  sanitize.Text(in.Instructor),
		DocumentURL: strings.TrimSpace(in.DocumentURL),
	}

	var err error
	if rec.StartDate, err = dates.ParseOptional(in.StartDate); err != nil {
		return models.WorkRecord{}, errors.New("invalid start_date")
	}
	if rec.EndDate, err = dates.ParseOptional(in.EndDate); err != nil {
		return models.WorkRecord{}, errors.New("invalid end_date")
	}
	if rec.FilingDate, err = dates.ParseOptional(in.FilingDate); err != nil {
		return models.WorkRecord{}, errors.New("invalid filing_date")
	}
	if rec.PublishedDate, err = dates.ParseOptional(in.PublishedDate); err != nil {
		return models.WorkRecord{}, errors.New("invalid published_date")
	}
	if rec.DevelopedDate, err = dates.ParseOptional(in.DevelopedDate); err != nil {
		return models.WorkRecord{}, errors.New("invalid developed_date")
	}

	if strings.TrimSpace(in.GroupID) != "" {
		gid, err := primitive.ObjectIDFromHex(strings.TrimSpace(in.GroupID))
		if err != nil {
			return models.WorkRecord{}, errors.New("invalid group_id")
		}
		rec.GroupID = &gid
	}

	return rec, nil
}

// buildRecordSet turns the provided fields into a partial $set. Zero-value
// strings are treated as absent; record updates here are additive edits,
// not field clears.
func buildRecordSet(in recordInput) (bson.M, error) {
	set := bson.M{}
	if s := sanitize.Text(in.Title); s != "" {
		set["title"] = s
	}
	if s := sanitize.Text(in.Description); s != "" {
		set["description"] = s
	}
	if s := sanitize.Text(in.Status); s != "" {
		set["status"] = s
	}
	if s := sanitize.Text(in.Inventor); s != "" {
		set["inventor"] = s
	}
	if s := sanitize.Text(in.Author); s != "" {
		set["author"] = s
	}
	if s := sanitize.Text(in.Journal); s != "" {
		set["journal"] = s
	}
	if s := sanitize.Text(in.Instructor); s != "" {
		set["instructor"] = s
	}
	if s := strings.TrimSpace(in.DocumentURL); s != "" {
		set["document_url"] = s
	}

	for field, raw := range map[string]string{
		"start_date":     in.StartDate,
		"end_date":       in.EndDate,
		"filing_date":    in.FilingDate,
		"published_date": in.PublishedDate,
		"developed_date": in.DevelopedDate,
	} {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		t, err := dates.Parse(raw)
		if err != nil {
			return nil, errors.New("invalid " + field)
		}
		set[field] = t
	}

	if strings.TrimSpace(in.GroupID) != "" {
		gid, err := primitive.ObjectIDFromHex(strings.TrimSpace(in.GroupID))
		if err != nil {
			return nil, errors.New("invalid group_id")
		}
		set["group_id"] = gid
	}

	return set, nil
}
