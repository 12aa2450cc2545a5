package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/labhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// WithChiURLParams adds several chi URL parameters at once.
func WithChiURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateLab inserts a lab with one founding director and empty collections.
func (f *Fixtures) CreateLab(ctx context.Context, name string) models.Lab {
	f.t.Helper()

	now := time.Now().UTC()
	lab := models.Lab{
		ID:     primitive.NewObjectID(),
		Name:   name,
		NameCI: text.Fold(name),
		Domain: "Test Domain",
		Vision: "Test vision",
		Directors: []models.Director{
			{
				ID:          primitive.NewObjectID(),
				Name:        "Test Director",
				Designation: "Director",
				From:        now,
			},
		},
		Projects:       []primitive.ObjectID{},
		Patents:        []primitive.ObjectID{},
		Publications:   []primitive.ObjectID{},
		Technologies:   []primitive.ObjectID{},
		Courses:        []primitive.ObjectID{},
		Manpower:       []primitive.ObjectID{},
		Notices:        []models.FileItem{},
		Circulars:      []models.FileItem{},
		Advertisements: []models.FileItem{},
		Products:       []models.FileItem{},
		ContactInfo:    []models.ContactInfo{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := f.db.Collection("labs").InsertOne(ctx, lab)
	if err != nil {
		f.t.Fatalf("failed to create test lab: %v", err)
	}

	return lab
}

// CreateGroup inserts a group under the given lab.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, labID primitive.ObjectID) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.Group{
		ID:                 primitive.NewObjectID(),
		Name:               name,
		NameCI:             text.Fold(name),
		LabID:              labID,
		Description:        "Test group description",
		Employees:          []primitive.ObjectID{},
		AssistantDirectors: []models.Director{},
		Projects:           []models.FileItem{},
		Patents:            []models.FileItem{},
		Technologies:       []models.FileItem{},
		Publications:       []models.FileItem{},
		Courses:            []models.FileItem{},
		Notices:            []models.FileItem{},
		Circulars:          []models.FileItem{},
		ContactInfo:        []models.ContactInfo{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	_, err := f.db.Collection("groups").InsertOne(ctx, group)
	if err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}

	return group
}

// CreateUser inserts a user with the given role. The password hash is a
// placeholder; login tests hash their own.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		Documents:    []models.Document{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateAdmin inserts an admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleAdmin)
}

// CreateWorkRecord inserts a standalone record of the given kind.
func (f *Fixtures) CreateWorkRecord(ctx context.Context, kind models.RecordKind, name string) models.WorkRecord {
	f.t.Helper()

	now := time.Now().UTC()
	rec := models.WorkRecord{
		ID:          primitive.NewObjectID(),
		Title:       name,
		Description: "Test record description",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := f.db.Collection(kind.Collection()).InsertOne(ctx, rec)
	if err != nil {
		f.t.Fatalf("failed to create test %s record: %v", kind, err)
	}

	return rec
}
