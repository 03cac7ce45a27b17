// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "PORTFOLIO"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: PORTFOLIO_MONGO_URI, PORTFOLIO_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "portfolio", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Admin authentication
	{Name: "jwt_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Admin token signing secret (must be strong in production)"},
	{Name: "session_ttl", Default: "24h", Desc: "Admin session lifetime (e.g., 24h, 8h)"},

	// Bootstrap admin account
	{Name: "admin_username", Default: "", Desc: "Username of the admin account to create on startup (if set)"},
	{Name: "admin_password", Default: "", Desc: "Password of the admin account to create on startup"},
	{Name: "admin_email", Default: "", Desc: "Email of the admin account to create on startup"},

	// Résumé storage
	{Name: "resume_static_url", Default: "/Bhavya_Verma_Resume.pdf", Desc: "Public path of the fallback resume PDF"},
	{Name: "resume_max_upload", Default: 10 * 1024 * 1024, Desc: "Resume upload size cap in bytes (default: 10 MiB)"},

	// Rate limiting
	{Name: "login_rate_per_minute", Default: 10, Desc: "Login attempts allowed per minute per IP"},
	{Name: "contact_rate_per_minute", Default: 5, Desc: "Contact submissions allowed per minute per IP"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host (empty disables email)"},
	{Name: "mail_smtp_port", Default: 587, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@example.com", Desc: "From email address"},
	{Name: "mail_from_name", Default: "Portfolio", Desc: "From display name"},

	// Contact notifications
	{Name: "contact_email", Default: "", Desc: "Recipient of contact-form notifications"},
	{Name: "owner_name", Default: "Bhavya Verma", Desc: "Display name used in contact auto-replies"},

	// Static site
	{Name: "static_dir", Default: "public", Desc: "Directory of public assets served at /"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, PORTFOLIO_* for app), and
// command-line flags, merged with precedence: flags > env > files >
// defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret:  appValues.String("jwt_secret"),
		SessionTTL: appValues.Duration("session_ttl", 24*time.Hour),

		AdminUsername: appValues.String("admin_username"),
		AdminPassword: appValues.String("admin_password"),
		AdminEmail:    appValues.String("admin_email"),

		ResumeStaticURL: appValues.String("resume_static_url"),
		ResumeMaxUpload: int64(appValues.Int("resume_max_upload")),

		LoginRatePerMinute:   appValues.Int("login_rate_per_minute"),
		ContactRatePerMinute: appValues.Int("contact_rate_per_minute"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		ContactEmail: appValues.String("contact_email"),
		OwnerName:    appValues.String("owner_name"),

		StaticDir: appValues.String("static_dir"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" && len(appCfg.JWTSecret) < 32 {
		return fmt.Errorf("jwt_secret is too weak for production; provide >=32 random chars")
	}

	if appCfg.ResumeMaxUpload <= 0 {
		return fmt.Errorf("resume_max_upload must be positive")
	}

	return nil
}
