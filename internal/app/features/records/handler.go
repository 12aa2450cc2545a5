// internal/app/features/records/handler.go
package records

import (
	"github.com/dalemusser/labhub/internal/app/system/activitylog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the standalone work-record collections. One handler covers
// all five kinds; Routes binds a kind per mount point.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Activity *activitylog.Logger
}

// NewHandler constructs a work-record handler bound to its collaborators.
func NewHandler(db *mongo.Database, logger *zap.Logger, act *activitylog.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Activity: act,
	}
}
