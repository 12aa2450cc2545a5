// internal/domain/models/workrecord.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecordKind is the closed enumeration of standalone work-record types.
// Unknown kinds are rejected at the edge as validation errors; nothing
// dispatches on free-form strings past that point.
type RecordKind string

const (
	KindProject     RecordKind = "project"
	KindPatent      RecordKind = "patent"
	KindPublication RecordKind = "publication"
	KindTechnology  RecordKind = "technology"
	KindCourse      RecordKind = "course"
)

// Collection returns the Mongo collection backing the kind.
func (k RecordKind) Collection() string {
	switch k {
	case KindProject:
		return "projects"
	case KindPatent:
		return "patents"
	case KindPublication:
		return "publications"
	case KindTechnology:
		return "technologies"
	case KindCourse:
		return "courses"
	}
	return ""
}

// Valid reports whether k names a known record kind.
func (k RecordKind) Valid() bool { return k.Collection() != "" }

// RecordKinds lists every kind, in route order.
var RecordKinds = []RecordKind{KindProject, KindPatent, KindPublication, KindTechnology, KindCourse}

// WorkRecord is the canonical standalone work-record document. The five
// kinds share one shape; per-kind fields are optional and only a subset is
// populated for any given kind (Inventor for patents, Journal for
// publications, and so on). Title is required for every kind.
type WorkRecord struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Title string             `bson:"title" json:"title"`

	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Status      string `bson:"status,omitempty" json:"status,omitempty"`

	Inventor   string `bson:"inventor,omitempty" json:"inventor,omitempty"`
	Author     string `bson:"author,omitempty" json:"author,omitempty"`
	Journal    string `bson:"journal,omitempty" json:"journal,omitempty"`
	Instructor string `bson:"instructor,omitempty" json:"instructor,omitempty"`

	StartDate     *time.Time `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate       *time.Time `bson:"end_date,omitempty" json:"end_date,omitempty"`
	FilingDate    *time.Time `bson:"filing_date,omitempty" json:"filing_date,omitempty"`
	PublishedDate *time.Time `bson:"published_date,omitempty" json:"published_date,omitempty"`
	DevelopedDate *time.Time `bson:"developed_date,omitempty" json:"developed_date,omitempty"`

	DocumentURL string              `bson:"document_url,omitempty" json:"document_url,omitempty"`
	GroupID     *primitive.ObjectID `bson:"group_id,omitempty" json:"group_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
