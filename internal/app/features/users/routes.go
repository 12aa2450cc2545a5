// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/labhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all User routes under the base path (typically "/users"
// from bootstrap). Everything requires a signed-in caller; self-or-admin
// checks happen in the handlers.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)
	r.Put("/{id}", h.HandleUpdate)

	r.Post("/{id}/documents", h.HandleUploadDocument)
	r.Post("/{id}/photo", h.HandleUploadPhoto)

	return r
}
