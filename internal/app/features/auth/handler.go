// internal/app/features/auth/handler.go
package auth

import (
	userstore "github.com/dalemusser/kanbanhub/internal/app/store/users"
	"github.com/dalemusser/kanbanhub/internal/app/system/apierr"
	sysauth "github.com/dalemusser/kanbanhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the identity feature:
// registration, login, logout, and the email availability probe.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger

	sessions *sysauth.Manager
	users    *userstore.Store
	errs     *apierr.ErrorLogger
}

// NewHandler constructs an auth Handler. The session manager is built
// once in bootstrap and shared with the router middleware.
func NewHandler(db *mongo.Database, sessions *sysauth.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		sessions: sessions,
		users:    userstore.New(db),
		errs:     apierr.NewErrorLogger(logger),
	}
}
