// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a sub-unit of a Lab.
//
// NOTE:
//   - LabID is set at creation and never changes; (name_ci, lab_id) is
//     unique so the same group name may recur under different labs.
//   - Work documents here are embedded FileItems, unlike the lab-side
//     id references: a group's uploads have no standalone collection.
type Group struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"`
	LabID  primitive.ObjectID `bson:"lab_id" json:"lab_id"`

	Description string `bson:"description,omitempty" json:"description,omitempty"`
	About       string `bson:"about,omitempty" json:"about,omitempty"`
	Vision      string `bson:"vision,omitempty" json:"vision,omitempty"`
	Mission     string `bson:"mission,omitempty" json:"mission,omitempty"`

	Employees []primitive.ObjectID `bson:"employees" json:"employees"`

	AssistantDirectors []Director `bson:"assistant_directors" json:"assistant_directors"`

	Projects     []FileItem `bson:"projects" json:"projects"`
	Patents      []FileItem `bson:"patents" json:"patents"`
	Technologies []FileItem `bson:"technologies" json:"technologies"`
	Publications []FileItem `bson:"publications" json:"publications"`
	Courses      []FileItem `bson:"courses" json:"courses"`
	Notices      []FileItem `bson:"notices" json:"notices"`
	Circulars    []FileItem `bson:"circulars" json:"circulars"`

	ContactInfo []ContactInfo `bson:"contact_info" json:"contact_info"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
