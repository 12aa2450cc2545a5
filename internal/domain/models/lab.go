// internal/domain/models/lab.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lab is the top-level organizational unit. Work records (projects,
// patents, publications, technologies, courses) are standalone documents
// referenced by id; notices and the other upload arrays are embedded
// FileItems because they have no existence outside the lab.
//
// NameCI is the case/diacritic-folded name and carries the unique index.
type Lab struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"`
	Domain string             `bson:"domain,omitempty" json:"domain,omitempty"`

	Vision  string `bson:"vision,omitempty" json:"vision,omitempty"`
	Mission string `bson:"mission,omitempty" json:"mission,omitempty"`
	About   string `bson:"about,omitempty" json:"about,omitempty"`

	Directors []Director `bson:"directors" json:"directors"`

	// Work-record references (many-to-many by id).
	Projects     []primitive.ObjectID `bson:"projects" json:"projects"`
	Patents      []primitive.ObjectID `bson:"patents" json:"patents"`
	Publications []primitive.ObjectID `bson:"publications" json:"publications"`
	Technologies []primitive.ObjectID `bson:"technologies" json:"technologies"`
	Courses      []primitive.ObjectID `bson:"courses" json:"courses"`

	Manpower []primitive.ObjectID `bson:"manpower" json:"manpower"`

	Notices        []FileItem `bson:"notices" json:"notices"`
	Circulars      []FileItem `bson:"circulars" json:"circulars"`
	Advertisements []FileItem `bson:"advertisements" json:"advertisements"`
	Products       []FileItem `bson:"products" json:"products"`

	ContactInfo []ContactInfo `bson:"contact_info" json:"contact_info"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
