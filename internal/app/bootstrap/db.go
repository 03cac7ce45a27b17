// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/bhavyaverma/portfolio/internal/app/system/indexes"
	"github.com/bhavyaverma/portfolio/internal/app/system/mailer"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// ConnectDB connects to MongoDB and initializes the mailer.
//
// WAFFLE calls this after configuration is loaded but before
// EnsureSchema and Startup. Clients are stored in DBDeps for use in
// later hooks and handlers.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	poolCfg := wafflemongo.DefaultPoolConfig()
	if appCfg.MongoMaxPoolSize > 0 {
		poolCfg.MaxPoolSize = appCfg.MongoMaxPoolSize
	}
	if appCfg.MongoMinPoolSize > 0 {
		poolCfg.MinPoolSize = appCfg.MongoMinPoolSize
	}

	client, err := wafflemongo.ConnectWithPool(ctx, appCfg.MongoURI, appCfg.MongoDatabase, poolCfg)
	if err != nil {
		return DBDeps{}, err
	}

	db := client.Database(appCfg.MongoDatabase)

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool_size", poolCfg.MaxPoolSize),
		zap.Uint64("min_pool_size", poolCfg.MinPoolSize),
	)

	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)
	if mail.Enabled() {
		logger.Info("initialized email mailer",
			zap.String("host", appCfg.MailSMTPHost),
			zap.Int("port", appCfg.MailSMTPPort),
		)
	} else {
		logger.Info("email mailer disabled (no SMTP host configured)")
	}

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: db,
		Mailer:        mail,
	}, nil
}

// EnsureSchema sets up indexes as needed.
//
// This runs after ConnectDB succeeds but before Startup and before the
// HTTP handler is built. The context has a timeout based on
// coreCfg.IndexBootTimeout.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("ensuring database indexes")
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("failed to ensure indexes", zap.Error(err))
		return err
	}

	logger.Info("database schema ensured successfully")
	return nil
}
