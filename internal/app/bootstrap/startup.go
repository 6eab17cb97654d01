// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/kanbanhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.DBOpTimeout > 0 {
		timeouts.Configure(timeouts.Config{
			Short:  appCfg.DBOpTimeout / 2,
			Medium: appCfg.DBOpTimeout,
			Long:   appCfg.DBOpTimeout * 3,
		})
		logger.Info("database operation timeouts configured",
			zap.Duration("medium", appCfg.DBOpTimeout))
	}
	return nil
}
