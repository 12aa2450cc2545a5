// internal/app/features/groups/contact.go
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
	"github.com/dalemusser/labhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type contactInfoInput struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Value string `json:"value"`
}

func (in contactInfoInput) validate() (models.ContactInfo, error) {
	t := strings.TrimSpace(in.Type)
	if !models.ValidContactType(t) {
		return models.ContactInfo{}, errors.New("type must be one of Email, Phone, Address, Other")
	}
	value := sanitize.Text(in.Value)
	if value == "" {
		return models.ContactInfo{}, errors.New("value is required")
	}
	return models.ContactInfo{
		Type:  t,
		Label: sanitize.Text(in.Label),
		Value: value,
	}, nil
}

// HandleAddContactInfo appends a contact entry to the group.
func (h *Handler) HandleAddContactInfo(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid group id")
		return
	}

	var in contactInfoInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	info, err := in.validate()
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	info.ID = primitive.NewObjectID()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	store := groupstore.New(h.DB)
	if err := store.PushContactInfo(ctx, oid, info); err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "group not found")
			return
		}
		h.Log.Error("add contact info failed", zap.String("group_id", oid.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to add contact info")
		return
	}

	h.Activity.Record(ctx, r, "group.contact.add", map[string]string{
		"group_id":   oid.Hex(),
		"contact_id": info.ID.Hex(),
	})

	group, err := store.GetByID(ctx, oid)
	if err != nil {
		httpjson.Write(w, http.StatusCreated, info)
		return
	}
	httpjson.Write(w, http.StatusCreated, group.ContactInfo)
}

// HandleUpdateContactInfo rewrites one contact entry by its embedded id.
func (h *Handler) HandleUpdateContactInfo(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid group id")
		return
	}
	contactID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "contactID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	var in contactInfoInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	info, err := in.validate()
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	store := groupstore.New(h.DB)
	if err := store.UpdateContactInfo(ctx, oid, contactID, info); err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "contact entry not found")
			return
		}
		h.Log.Error("update contact info failed", zap.String("group_id", oid.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update contact info")
		return
	}

	h.Activity.Record(ctx, r, "group.contact.update", map[string]string{
		"group_id":   oid.Hex(),
		"contact_id": contactID.Hex(),
	})

	group, err := store.GetByID(ctx, oid)
	if err != nil {
		httpjson.Message(w, "contact info updated")
		return
	}
	httpjson.Write(w, http.StatusOK, group.ContactInfo)
}

// HandleDeleteContactInfo removes one contact entry by its embedded id.
func (h *Handler) HandleDeleteContactInfo(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid group id")
		return
	}
	contactID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "contactID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	if err := groupstore.New(h.DB).PullContactInfo(ctx, oid, contactID); err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "contact entry not found")
			return
		}
		h.Log.Error("delete contact info failed", zap.String("group_id", oid.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to delete contact info")
		return
	}

	h.Activity.Record(ctx, r, "group.contact.delete", map[string]string{
		"group_id":   oid.Hex(),
		"contact_id": contactID.Hex(),
	})
	httpjson.Message(w, "contact info deleted")
}
