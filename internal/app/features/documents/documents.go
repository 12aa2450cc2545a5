// internal/app/features/documents/documents.go
package documents

import (
	"context"
	"net/http"

	groupstore "github.com/dalemusser/labhub/internal/app/store/groups"
	"github.com/dalemusser/labhub/internal/app/system/blobstore"
	"github.com/dalemusser/labhub/internal/app/system/httpjson"
	"github.com/dalemusser/labhub/internal/app/system/timeouts"
	"github.com/dalemusser/labhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the flattened document listing across all groups.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Blobs blobstore.Store
}

// NewHandler constructs a documents handler.
func NewHandler(db *mongo.Database, logger *zap.Logger, blobs blobstore.Store) *Handler {
	return &Handler{DB: db, Log: logger, Blobs: blobs}
}

// Routes mounts the documents endpoints (typically under "/documents").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/all", h.ServeAll)
	return r
}

// row is one flattened document entry.
type row struct {
	GroupName   string `json:"group_name"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// ServeAll flattens every group's file sub-resources into one listing,
// resolving blob keys to serving URLs.
func (h *Handler) ServeAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	groupList, err := groupstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("list groups failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load documents")
		return
	}

	rows := []row{}
	for _, g := range groupList {
		rows = append(rows, h.flatten(g.Name, "project", g.Projects)...)
		rows = append(rows, h.flatten(g.Name, "patent", g.Patents)...)
		rows = append(rows, h.flatten(g.Name, "technology", g.Technologies)...)
		rows = append(rows, h.flatten(g.Name, "publication", g.Publications)...)
		rows = append(rows, h.flatten(g.Name, "course", g.Courses)...)
		rows = append(rows, h.flatten(g.Name, "notice", g.Notices)...)
		rows = append(rows, h.flatten(g.Name, "circular", g.Circulars)...)
	}
	httpjson.Write(w, http.StatusOK, rows)
}

func (h *Handler) flatten(groupName, docType string, items []models.FileItem) []row {
	out := make([]row, 0, len(items))
	for _, item := range items {
		out = append(out, row{
			GroupName:   groupName,
			Type:        docType,
			Name:        item.Name,
			Description: item.Description,
			URL:         h.Blobs.URL(item.FileURL),
		})
	}
	return out
}
