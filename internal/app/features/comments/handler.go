// internal/app/features/comments/handler.go
package comments

import (
	boardstore "github.com/dalemusser/kanbanhub/internal/app/store/boards"
	commentstore "github.com/dalemusser/kanbanhub/internal/app/store/comments"
	taskstore "github.com/dalemusser/kanbanhub/internal/app/store/tasks"
	userstore "github.com/dalemusser/kanbanhub/internal/app/store/users"
	"github.com/dalemusser/kanbanhub/internal/app/system/apierr"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the comments feature.
// Its routes are nested under /api/tasks/{taskID}/comments, so every
// operation resolves the task (and its board) first.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger

	boards   *boardstore.Store
	tasks    *taskstore.Store
	users    *userstore.Store
	comments *commentstore.Store
	errs     *apierr.ErrorLogger
}

// NewHandler constructs a comments Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		boards:   boardstore.New(db),
		tasks:    taskstore.New(db),
		users:    userstore.New(db),
		comments: commentstore.New(db),
		errs:     apierr.NewErrorLogger(logger),
	}
}
