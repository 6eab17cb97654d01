// internal/app/features/tasks/routes.go
package tasks

import (
	"github.com/dalemusser/kanbanhub/internal/app/features/comments"
	"github.com/dalemusser/kanbanhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes wires the task endpoints. Comment routes nest under
// /{taskID}/comments, mirroring the comment-belongs-to-task URL
// contract.
func Routes(h *Handler, ch *comments.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Post("/", h.HandleCreateTask)
		pr.Get("/assigned-to-me", h.ServeAssignedToMe)
		pr.Get("/reviewing", h.ServeReviewing)

		pr.Patch("/{id}", h.HandleEditTask)
		pr.Delete("/{id}", h.HandleDeleteTask)

		pr.Route("/{taskID}/comments", func(cr chi.Router) {
			cr.Get("/", ch.ServeCommentList)
			cr.Post("/", ch.HandleCreateComment)
			cr.Delete("/{commentID}", ch.HandleDeleteComment)
		})
	})

	return r
}
