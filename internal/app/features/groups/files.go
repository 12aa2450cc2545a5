// internal/app/features/groups/files.go
package groups

import (
	"context"
	"errors"
	"net/http"
	"time"

	groupstore "github.com/dalemusser/labhub/internal/app/store/groups"
	"github.com/dalemusser/labhub/internal/app/system/blobstore"
	"github.com/dalemusser/labhub/internal/app/system/httpjson"
	"github.com/dalemusser/labhub/internal/app/system/metrics"
	"github.com/dalemusser/labhub/internal/app/system/sanitize"
	"github.com/dalemusser/labhub/internal/app/system/timeouts"
	"github.com/dalemusser/labhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const maxFileBytes = 10 << 20

// HandleAddFileItem appends an uploaded file item to one of the group's
// embedded arrays (projects, patents, technologies, publications, courses,
// notices, circulars). Name, description, and the file are all required.
func (h *Handler) HandleAddFileItem(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid group id")
		return
	}
	field := groupstore.FileField(chi.URLParam(r, "kind"))
	if field == "" {
		httpjson.Error(w, http.StatusBadRequest, "unknown sub-resource kind")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFileBytes)
	if err := r.ParseMultipartForm(maxFileBytes); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	name := sanitize.Text(r.FormValue("name"))
	description := sanitize.Text(r.FormValue("description"))
	if name == "" || description == "" {
		httpjson.Error(w, http.StatusBadRequest, "name and description are required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Upload())
	defer cancel()

	key := blobstore.Key("groups/"+field, header.Filename)
	putErr := h.Blobs.Put(ctx, key, file, &blobstore.PutOptions{
		ContentType: header.Header.Get("Content-Type"),
	})
	metrics.ObserveBlobOp("put", putErr)
	if putErr != nil {
		h.Log.Error("blob upload failed", zap.String("key", key), zap.Error(putErr))
		httpjson.Error(w, http.StatusInternalServerError, "file upload failed")
		return
	}

	item := models.FileItem{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: description,
		FileURL:     key,
		CreatedAt:   time.Now().UTC(),
	}

	store := groupstore.New(h.DB)
	if err := store.PushFileItem(ctx, oid, field, item); err != nil {
		h.deleteBlob(ctx, key)
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "group not found")
			return
		}
		h.Log.Error("append file item failed", zap.String("group_id", oid.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to save item")
		return
	}

	h.Activity.Record(ctx, r, "group."+field+".add", map[string]string{
		"group_id": oid.Hex(),
		"item_id":  item.ID.Hex(),
	})

	group, err := store.GetByID(ctx, oid)
	if err != nil {
		httpjson.Write(w, http.StatusCreated, item)
		return
	}
	httpjson.Write(w, http.StatusCreated, groupFileItems(group, field))
}

// HandleUpdateFileItem rewrites fields of one embedded item; a replacement
// file swaps the stored blob, deleting the old one best-effort.
func (h *Handler) HandleUpdateFileItem(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid group id")
		return
	}
	field := groupstore.FileField(chi.URLParam(r, "kind"))
	if field == "" {
		httpjson.Error(w, http.StatusBadRequest, "unknown sub-resource kind")
		return
	}
	itemID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "itemID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid item id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFileBytes)
	if err := r.ParseMultipartForm(maxFileBytes); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Upload())
	defer cancel()

	store := groupstore.New(h.DB)
	group, err := store.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "group not found")
			return
		}
		h.Log.Error("load group failed", zap.String("group_id", oid.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load group")
		return
	}
	existing := findFileItem(groupFileItems(group, field), itemID)
	if existing == nil {
		httpjson.Error(w, http.StatusNotFound, "item not found")
		return
	}

	set := bson.M{}
	if name := sanitize.Text(r.FormValue("name")); name != "" {
		set["name"] = name
	}
	if description := sanitize.Text(r.FormValue("description")); description != "" {
		set["description"] = description
	}

	var oldKey, newKey string
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		newKey = blobstore.Key("groups/"+field, header.Filename)
		putErr := h.Blobs.Put(ctx, newKey, file, &blobstore.PutOptions{
			ContentType: header.Header.Get("Content-Type"),
		})
		metrics.ObserveBlobOp("put", putErr)
		if putErr != nil {
			h.Log.Error("blob upload failed", zap.String("key", newKey), zap.Error(putErr))
			httpjson.Error(w, http.StatusInternalServerError, "file upload failed")
			return
		}
		set["file_url"] = newKey
		oldKey = existing.FileURL
	}

	if len(set) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "no fields to update")
		return
	}

	if err := store.UpdateFileItem(ctx, oid, field, itemID, set); err != nil {
		// The replacement blob is already stored; remove it so a failed
		// update does not strand an orphan.
		h.deleteBlob(ctx, newKey)
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "item not found")
			return
		}
		h.Log.Error("update file item failed", zap.String("group_id", oid.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	if oldKey != "" {
		h.deleteBlob(ctx, oldKey)
	}

	h.Activity.Record(ctx, r, "group."+field+".update", map[string]string{
		"group_id": oid.Hex(),
		"item_id":  itemID.Hex(),
	})

	updated, err := store.GetByID(ctx, oid)
	if err != nil {
		httpjson.Message(w, "item updated")
		return
	}
	httpjson.Write(w, http.StatusOK, groupFileItems(updated, field))
}

// HandleDeleteFileItem removes one embedded item. The blob delete is
// best-effort; the record removal is authoritative.
func (h *Handler) HandleDeleteFileItem(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid group id")
		return
	}
	field := groupstore.FileField(chi.URLParam(r, "kind"))
	if field == "" {
		httpjson.Error(w, http.StatusBadRequest, "unknown sub-resource kind")
		return
	}
	itemID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "itemID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid item id")
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
		httpjson.Error(w, http.StatusInternalServerError, "failed to load group")
		return
	}
	existing := findFileItem(groupFileItems(group, field), itemID)
	if existing == nil {
		httpjson.Error(w, http.StatusNotFound, "item not found")
		return
	}

	h.deleteBlob(ctx, existing.FileURL)

	if err := store.PullFileItem(ctx, oid, field, itemID); err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "item not found")
			return
		}
		h.Log.Error("delete file item failed", zap.String("group_id", oid.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	h.Activity.Record(ctx, r, "group."+field+".delete", map[string]string{
		"group_id": oid.Hex(),
		"item_id":  itemID.Hex(),
	})
	httpjson.Message(w, "item deleted")
}

func (h *Handler) deleteBlob(ctx context.Context, key string) {
	if key == "" {
		return
	}
	err := h.Blobs.Delete(ctx, key)
	metrics.ObserveBlobOp("delete", err)
	if err != nil {
		h.Log.Warn("blob delete failed", zap.String("key", key), zap.Error(err))
	}
}

// groupFileItems returns the embedded array named by field.
func groupFileItems(group models.Group, field string) []models.FileItem {
	switch field {
	case "projects":
		return group.Projects
	case "patents":
		return group.Patents
	case "technologies":
		return group.Technologies
	case "publications":
		return group.Publications
	case "courses":
		return group.Courses
	case "notices":
		return group.Notices
	case "circulars":
		return group.Circulars
	}
	return nil
}

func findFileItem(items []models.FileItem, id primitive.ObjectID) *models.FileItem {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}
