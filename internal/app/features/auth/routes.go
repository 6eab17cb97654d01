// internal/app/features/auth/routes.go
package auth

import (
	sysauth "github.com/dalemusser/kanbanhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes wires the identity endpoints directly under /api.
// Registration and login are the only unauthenticated writes in the
// system.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/registration", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)

	r.Group(func(pr chi.Router) {
		pr.Use(sysauth.RequireSignedIn)
		pr.Get("/email-check", h.ServeEmailCheck)
	})

	return r
}
