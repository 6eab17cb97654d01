// internal/app/features/boards/routes.go
package boards

import (
	"github.com/dalemusser/kanbanhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Post("/", h.HandleCreateBoard)
		pr.Get("/", h.ServeBoardList)

		pr.Get("/{id}", h.ServeBoardView)
		pr.Patch("/{id}", h.HandleEditBoard)
		pr.Delete("/{id}", h.HandleDeleteBoard)
	})

	return r
}
