// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/bhavyaverma/portfolio/internal/app/store/admins"
	"github.com/bhavyaverma/portfolio/internal/app/store/loginattempts"
	"github.com/bhavyaverma/portfolio/internal/app/store/sessions"
	"github.com/bhavyaverma/portfolio/internal/app/system/adminauth"
	"github.com/bhavyaverma/portfolio/internal/app/system/authtoken"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are
// complete, but before the HTTP handler is built and requests are
// served. It seeds the bootstrap admin account when one is configured
// and the username does not exist yet.
//
// Returning a non-nil error aborts startup and prevents the server
// from starting.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminUsername == "" {
		logger.Debug("no bootstrap admin configured")
		return nil
	}

	svc := adminauth.New(
		admins.New(deps.MongoDatabase),
		sessions.New(deps.MongoDatabase),
		loginattempts.New(deps.MongoDatabase),
		authtoken.New(appCfg.JWTSecret, appCfg.SessionTTL),
		logger,
	)
	if err := svc.Bootstrap(ctx, appCfg.AdminUsername, appCfg.AdminPassword, appCfg.AdminEmail); err != nil {
		logger.Error("failed to seed admin account", zap.Error(err))
		return err
	}

	return nil
}
