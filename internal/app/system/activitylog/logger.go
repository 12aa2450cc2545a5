// internal/app/system/activitylog/logger.go
package activitylog

import (
	"context"
	"net/http"

	"github.com/dalemusser/labhub/internal/app/store/activity"
	"github.com/dalemusser/labhub/internal/app/system/auth"
	"github.com/dalemusser/labhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Mode controls where activity events go.
// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off".
type Mode string

const (
	ModeAll Mode = "all"
	ModeDB  Mode = "db"
	ModeLog Mode = "log"
	ModeOff Mode = "off"
)

// Logger records who did what. It writes to the activity collection and to
// structured logs depending on Mode. A nil *Logger is a no-op, so handlers
// never need to guard calls.
type Logger struct {
	store  *activity.Store
	zapLog *zap.Logger
	mode   Mode
}

func New(store *activity.Store, zapLog *zap.Logger, mode Mode) *Logger {
	return &Logger{store: store, zapLog: zapLog, mode: mode}
}

// Record logs one action. Failures to persist are logged and swallowed;
// activity logging never fails the request that triggered it.
func (l *Logger) Record(ctx context.Context, r *http.Request, action string, details map[string]string) {
	if l == nil || l.mode == ModeOff {
		return
	}

	var userID *primitive.ObjectID
	var userName string
	if r != nil {
		if u, ok := auth.CurrentUser(r); ok {
			userName = u.Name
			if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
				userID = &oid
			}
		}
	}

	if l.mode == ModeAll || l.mode == ModeLog {
		fields := []zap.Field{
			zap.Bool("activity", true),
			zap.String("action", action),
			zap.String("user", userName),
		}
		for k, v := range details {
			fields = append(fields, zap.String(k, v))
		}
		l.zapLog.Info("activity", fields...)
	}

	if l.mode == ModeAll || l.mode == ModeDB {
		entry := models.ActivityEntry{
			UserID:  userID,
			Action:  action,
			Details: details,
		}
		if err := l.store.Append(ctx, entry); err != nil {
			l.zapLog.Error("activity append failed",
				zap.String("action", action),
				zap.Error(err))
		}
	}
}
