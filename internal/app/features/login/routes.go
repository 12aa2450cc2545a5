// internal/app/features/login/routes.go
package login

import (
	"github.com/dalemusser/labhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the auth endpoints (typically under "/auth" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Put("/update-profile", h.HandleUpdateProfile)
	})

	return r
}
