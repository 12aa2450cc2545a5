// internal/app/features/users/handler.go
package users

import (
	"github.com/dalemusser/labhub/internal/app/system/activitylog"
	"github.com/dalemusser/labhub/internal/app/system/blobstore"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Users.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Blobs    blobstore.Store
	Activity *activitylog.Logger
}

// NewHandler constructs a Users handler bound to its collaborators.
func NewHandler(db *mongo.Database, logger *zap.Logger, blobs blobstore.Store, act *activitylog.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Blobs:    blobs,
		Activity: act,
	}
}
