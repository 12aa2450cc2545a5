// internal/domain/models/activity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityEntry is one append-only activity-log row. UserID is nil for
// anonymous actions.
type ActivityEntry struct {
	ID        primitive.ObjectID  `bson:"_id" json:"id"`
	UserID    *primitive.ObjectID `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Action    string              `bson:"action" json:"action"`
	Details   map[string]string   `bson:"details,omitempty" json:"details,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
}
