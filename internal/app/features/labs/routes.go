// internal/app/features/labs/routes.go
package labs

import (
	"github.com/dalemusser/labhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Lab routes under the base path (typically "/labs" from
// bootstrap). Reads are public; writes require the admin role.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Public reads, fully reference-resolved.
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)

	// Admin-only writes.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole("admin"))

		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)

		pr.Post("/{id}/directors", h.HandleAddDirector)

		// {kind} covers both embedded file arrays (notices, circulars,
		// advertisements, products) and work-record reference fields
		// (projects, patents, publications, technologies, courses) on
		// DELETE; the handlers dispatch on the segment.
		pr.Post("/{id}/{kind}", h.HandleAddFileItem)
		pr.Put("/{id}/{kind}/{itemID}", h.HandleUpdateFileItem)
		pr.Delete("/{id}/{kind}/{itemID}", h.HandleDeleteSubResource)
	})

	return r
}
