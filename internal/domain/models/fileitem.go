// internal/domain/models/fileitem.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileItem is a named, described upload embedded in a parent document
// (lab notices/circulars/advertisements/products, group work documents).
// FileURL points into the blob store; deleting the item is authoritative
// even when the blob delete fails.
type FileItem struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	FileURL     string             `bson:"file_url" json:"file_url"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// ContactInfoType enumerates the allowed contact entry kinds.
const (
	ContactEmail   = "Email"
	ContactPhone   = "Phone"
	ContactAddress = "Address"
	ContactOther   = "Other"
)

// ValidContactType reports whether t is one of the allowed contact kinds.
func ValidContactType(t string) bool {
	switch t {
	case ContactEmail, ContactPhone, ContactAddress, ContactOther:
		return true
	}
	return false
}

// ContactInfo is an embedded contact entry on a lab or group.
type ContactInfo struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Type  string             `bson:"type" json:"type"`
	Label string             `bson:"label,omitempty" json:"label,omitempty"`
	Value string             `bson:"value" json:"value"`
}

// Director is a tenure record for a lab director or a group assistant
// director. It points at a User when the person has an account, or carries
// freeform name/designation for historical personnel. A nil To means
// currently serving.
type Director struct {
	ID          primitive.ObjectID  `bson:"_id" json:"id"`
	User        *primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	Name        string              `bson:"name,omitempty" json:"name,omitempty"`
	Designation string              `bson:"designation,omitempty" json:"designation,omitempty"`
	Image       string              `bson:"image,omitempty" json:"image,omitempty"`
	From        time.Time           `bson:"from" json:"from"`
	To          *time.Time          `bson:"to,omitempty" json:"to,omitempty"`
}
