// internal/app/features/users/uploads.go
package users

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	userstore "github.com/dalemusser/labhub/internal/app/store/users"
	"github.com/dalemusser/labhub/internal/app/system/authz"
	"github.com/dalemusser/labhub/internal/app/system/blobstore"
	"github.com/dalemusser/labhub/internal/app/system/httpjson"
	"github.com/dalemusser/labhub/internal/app/system/metrics"
	"github.com/dalemusser/labhub/internal/app/system/timeouts"
	"github.com/dalemusser/labhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	maxDocumentBytes = 2 << 20
	maxPhotoBytes    = 1 << 20
)

// HandleUploadDocument attaches a PDF to a user profile. PDF only, 2 MB cap.
func (h *Handler) HandleUploadDocument(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if !authz.IsAdmin(r) && !authz.IsSelf(r, idHex) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentBytes)
	if err := r.ParseMultipartForm(maxDocumentBytes); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "file too large or invalid form; PDFs up to 2 MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if !isPDF(header.Filename, header.Header.Get("Content-Type")) {
		httpjson.Error(w, http.StatusBadRequest, "only PDF documents are accepted")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Upload())
	defer cancel()

	key := blobstore.Key("users/documents", header.Filename)
	putErr := h.Blobs.Put(ctx, key, file, &blobstore.PutOptions{ContentType: "application/pdf"})
	metrics.ObserveBlobOp("put", putErr)
	if putErr != nil {
		h.Log.Error("document upload failed", zap.String("key", key), zap.Error(putErr))
		httpjson.Error(w, http.StatusInternalServerError, "file upload failed")
		return
	}

	doc := models.Document{
		ID:       primitive.NewObjectID(),
		Filename: header.Filename,
		URL:      key,
	}

	store := userstore.New(h.DB)
	if err := store.PushDocument(ctx, oid, doc); err != nil {
		h.deleteBlob(ctx, key)
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("attach document failed", zap.String("user_id", idHex), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to save document")
		return
	}

	h.Activity.Record(ctx, r, "user.document.add", map[string]string{
		"user_id":     idHex,
		"document_id": doc.ID.Hex(),
	})
	httpjson.Write(w, http.StatusCreated, doc)
}

// HandleUploadPhoto sets the user's profile photo. JPEG or PNG, 1 MB cap.
// The previous photo blob is removed best-effort.
func (h *Handler) HandleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if !authz.IsAdmin(r) && !authz.IsSelf(r, idHex) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes)
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "file too large or invalid form; images up to 1 MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !isImage(header.Filename, contentType) {
		httpjson.Error(w, http.StatusBadRequest, "only JPEG and PNG images are accepted")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Upload())
	defer cancel()

	store := userstore.New(h.DB)
	user, err := store.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("load user failed", zap.String("user_id", idHex), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	key := blobstore.Key("users/photos", header.Filename)
	putErr := h.Blobs.Put(ctx, key, file, &blobstore.PutOptions{ContentType: contentType})
	metrics.ObserveBlobOp("put", putErr)
	if putErr != nil {
		h.Log.Error("photo upload failed", zap.String("key", key), zap.Error(putErr))
		httpjson.Error(w, http.StatusInternalServerError, "file upload failed")
		return
	}

	if err := store.Update(ctx, oid, bson.M{"photo": key}); err != nil {
		h.deleteBlob(ctx, key)
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("set photo failed", zap.String("user_id", idHex), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to save photo")
		return
	}

	if user.Photo != "" {
		h.deleteBlob(ctx, user.Photo)
	}

	h.Activity.Record(ctx, r, "user.photo.set", map[string]string{"user_id": idHex})
	httpjson.Write(w, http.StatusOK, map[string]string{"photo": key})
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

func isPDF(filename, contentType string) bool {
	if contentType == "application/pdf" {
		return true
	}
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

func isImage(filename, contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png":
		return true
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}
