// internal/app/features/labs/create.go
package labs

import (
	"context"
	"errors"
	"net/http"
	"strings"

	labstore "github.com/dalemusser/labhub/internal/app/store/labs"
	"github.com/dalemusser/labhub/internal/app/system/dates"
	"github.com/dalemusser/labhub/internal/app/system/httpjson"
	"github.com/dalemusser/labhub/internal/app/system/sanitize"
	"github.com/dalemusser/labhub/internal/app/system/timeouts"
	"github.com/dalemusser/labhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// directorInput is the wire form of a director tenure record. User is a hex
// id; when absent, Name and Designation identify historical personnel.
type directorInput struct {
	User        string `json:"user"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Image       string `json:"image"`
	From        string `json:"from"`
	To          string `json:"to"`
}

type createLabInput struct {
	Name      string          `json:"name"`
	Domain    string          `json:"domain"`
	Vision    string          `json:"vision"`
	Mission   string          `json:"mission"`
	About     string          `json:"about"`
	Directors []directorInput `json:"directors"`
}

// HandleCreate creates a lab. The name must be unique across all labs and
// at least one director is required.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createLabInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		httpjson.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(in.Directors) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "at least one director is required")
		return
	}

	directors := make([]models.Director, 0, len(in.Directors))
	for _, di := range in.Directors {
		d, err := buildDirector(di)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		directors = append(directors, d)
	}

	lab := models.Lab{
		Name:      in.Name,
		Domain:    sanitize.Text(in.Domain),
		Vision:    sanitize.Text(in.Vision),
		Mission:   sanitize.Text(in.Mission),
		About:     sanitize.Text(in.About),
		Directors: directors,
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	created, err := labstore.New(h.DB).Create(ctx, lab)
	if err != nil {
		if errors.Is(err, labstore.ErrDuplicateLabName) {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Log.Error("create lab failed", zap.String("name", in.Name), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to create lab")
		return
	}

	h.Activity.Record(ctx, r, "lab.create", map[string]string{
		"lab_id": created.ID.Hex(),
		"name":   created.Name,
	})
	httpjson.Write(w, http.StatusCreated, created)
}

// buildDirector validates one tenure record. From is required; without a
// user reference, a freeform name must be given.
func buildDirector(in directorInput) (models.Director, error) {
	from, err := dates.Parse(in.From)
	if err != nil {
		return models.Director{}, errors.New("director requires a valid from date")
	}
	to, err := dates.ParseOptional(in.To)
	if err != nil {
		return models.Director{}, errors.New("invalid director to date")
	}

	d := models.Director{
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
			return models.Director{}, errors.New("invalid director user id")
		}
		d.User = &uid
	} else if d.Name == "" {
		return models.Director{}, errors.New("director requires a user reference or a name")
	}

	return d, nil
}
