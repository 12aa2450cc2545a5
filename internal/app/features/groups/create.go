// internal/app/features/groups/create.go
package groups

import (
	"context"
	"errors"
	"net/http"
	"strings"

	groupstore "github.com/dalemusser/labhub/internal/app/store/groups"
	labstore "github.com/dalemusser/labhub/internal/app/store/labs"
	"github.com/dalemusser/labhub/internal/app/system/httpjson"
	"github.com/dalemusser/labhub/internal/app/system/sanitize"
	"github.com/dalemusser/labhub/internal/app/system/timeouts"
	"github.com/dalemusser/labhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createGroupInput struct {
	Name        string `json:"name"`
	LabID       string `json:"lab_id"`
	Description string `json:"description"`
	About       string `json:"about"`
	Vision      string `json:"vision"`
	Mission     string `json:"mission"`
}

// HandleCreate creates a group under a lab. (name, lab_id) is unique; the
// same name may recur under a different lab.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createGroupInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		httpjson.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	labID, err := primitive.ObjectIDFromHex(strings.TrimSpace(in.LabID))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "valid lab_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	if _, err := labstore.New(h.DB).GetByID(ctx, labID); err != nil {
		if errors.Is(err, labstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "lab not found")
			return
		}
		h.Log.Error("load lab failed", zap.String("lab_id", labID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to create group")
		return
	}

	group := models.Group{
		Name:        in.Name,
		LabID:       labID,
		Description: sanitize.Text(in.Description),
		About:       sanitize.Text(in.About),
		Vision:      sanitize.Text(in.Vision),
		Mission:     sanitize.Text(in.Mission),
	}

	created, err := groupstore.New(h.DB).Create(ctx, group)
	if err != nil {
		if errors.Is(err, groupstore.ErrDuplicateGroupName) {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Log.Error("create group failed", zap.String("name", in.Name), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to create group")
		return
	}

	h.Activity.Record(ctx, r, "group.create", map[string]string{
		"group_id": created.ID.Hex(),
		"lab_id":   labID.Hex(),
		"name":     created.Name,
	})
	httpjson.Write(w, http.StatusCreated, created)
}
