// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Role gates the admin-only write surface.
const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// Document is an uploaded file attached to a user profile.
type Document struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Filename string             `bson:"filename" json:"filename"`
	URL      string             `bson:"url" json:"url"`
}

// EmploymentPeriod records a user's service window. To is only settable
// by admins.
type EmploymentPeriod struct {
	From *time.Time `bson:"from,omitempty" json:"from,omitempty"`
	To   *time.Time `bson:"to,omitempty" json:"to,omitempty"`
}

// User represents employees and admins. PasswordHash is a bcrypt hash and
// is never serialized.
type User struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Role         string             `bson:"role" json:"role"`
	Photo        string             `bson:"photo,omitempty" json:"photo,omitempty"`
	About        string             `bson:"about,omitempty" json:"about,omitempty"`

	Employment EmploymentPeriod `bson:"employment,omitempty" json:"employment,omitempty"`
	Documents  []Document       `bson:"documents" json:"documents"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
