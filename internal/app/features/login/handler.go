// internal/app/features/login/handler.go
package login

import (
	"github.com/dalemusser/labhub/internal/app/system/activitylog"
	"github.com/dalemusser/labhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves registration, login, and self-service profile updates.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Tokens   *auth.Manager
	Activity *activitylog.Logger
}

// NewHandler constructs a login handler bound to its collaborators.
func NewHandler(db *mongo.Database, logger *zap.Logger, tokens *auth.Manager, act *activitylog.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Tokens:   tokens,
		Activity: act,
	}
}
