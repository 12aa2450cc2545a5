// internal/app/features/groups/routes.go
package groups

import (
	"github.com/dalemusser/labhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Group routes under the base path (typically "/groups"
// from bootstrap). Reads are public; writes require the admin role.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Public reads, fully reference-resolved.
	r.Get("/", h.ServeList)
	r.Get("/names", h.ServeNames)
	r.Get("/{id}", h.ServeView)

	// Admin-only writes.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole("admin"))

		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)

		pr.Post("/{id}/assistant-directors", h.HandleAddAssistantDirector)

		pr.Post("/{id}/contact-info", h.HandleAddContactInfo)
		pr.Put("/{id}/contact-info/{contactID}", h.HandleUpdateContactInfo)
		pr.Delete("/{id}/contact-info/{contactID}", h.HandleDeleteContactInfo)

		pr.Post("/{id}/{kind}", h.HandleAddFileItem)
		pr.Put("/{id}/{kind}/{itemID}", h.HandleUpdateFileItem)
		pr.Delete("/{id}/{kind}/{itemID}", h.HandleDeleteFileItem)
	})

	return r
}
