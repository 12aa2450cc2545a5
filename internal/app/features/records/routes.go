// internal/app/features/records/routes.go
package records

import (
	"github.com/dalemusser/labhub/internal/app/system/auth"
	"github.com/dalemusser/labhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the CRUD surface for one record kind (bootstrap mounts it
// once per kind: /projects, /patents, /publications, /technologies,
// /courses). Reads are public; writes require the admin role.
func Routes(h *Handler, kind models.RecordKind) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.serveList(kind))
	r.Get("/{id}", h.serveView(kind))

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole("admin"))

		pr.Post("/", h.handleCreate(kind))
		pr.Put("/{id}", h.handleUpdate(kind))
		pr.Delete("/{id}", h.handleDelete(kind))
	})

	return r
}
