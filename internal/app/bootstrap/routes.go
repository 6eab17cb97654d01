// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authfeature "github.com/dalemusser/kanbanhub/internal/app/features/auth"
	boardsfeature "github.com/dalemusser/kanbanhub/internal/app/features/boards"
	commentsfeature "github.com/dalemusser/kanbanhub/internal/app/features/comments"
	healthfeature "github.com/dalemusser/kanbanhub/internal/app/features/health"
	tasksfeature "github.com/dalemusser/kanbanhub/internal/app/features/tasks"
	tokenstore "github.com/dalemusser/kanbanhub/internal/app/store/tokens"
	userstore "github.com/dalemusser/kanbanhub/internal/app/store/users"
	"github.com/dalemusser/kanbanhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed. The credential manager is built here and
// its LoadUser middleware applied globally, so every handler can read
// the current user from context; RequireSignedIn inside the feature
// routers draws the authenticated/anonymous line.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase
	secure := coreCfg.Env == "prod"

	tokens := tokenstore.New(db, appCfg.TokenTTL)
	users := userstore.New(db)

	credentials, err := auth.NewManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, tokens, users, logger)
	if err != nil {
		logger.Error("credential manager init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(credentials.LoadUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Get("/health", healthHandler.Serve)

	commentsHandler := commentsfeature.NewHandler(db, logger)

	r.Route("/api", func(api chi.Router) {
		api.Mount("/", authfeature.Routes(authfeature.NewHandler(db, credentials, logger)))
		api.Mount("/boards", boardsfeature.Routes(boardsfeature.NewHandler(db, logger)))
		api.Mount("/tasks", tasksfeature.Routes(tasksfeature.NewHandler(db, logger), commentsHandler))
	})

	return r, nil
}
