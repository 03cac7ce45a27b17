// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings like ports, TLS, logging, and CORS; AppConfig
// is everything specific to the portfolio service.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// Admin authentication configuration
	JWTSecret  string        // Signing secret for admin bearer tokens (must be strong in production)
	SessionTTL time.Duration // Admin session lifetime (default: 24h)

	// Bootstrap admin account, created on startup when the username
	// does not exist yet
	AdminUsername string
	AdminPassword string
	AdminEmail    string

	// Résumé storage configuration
	ResumeStaticURL string // Public path of the bundled fallback PDF
	ResumeMaxUpload int64  // Upload size cap in bytes (default: 10 MiB)

	// Rate limiting (requests per minute per IP)
	LoginRatePerMinute   int
	ContactRatePerMinute int

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (empty disables email)
	MailSMTPPort int    // SMTP server port
	MailSMTPUser string // SMTP username
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address
	MailFromName string // From display name

	// Contact notification recipient and auto-reply signature
	ContactEmail string // Where contact-form notifications are sent
	OwnerName    string // Display name used in the auto-reply

	// Static site configuration
	StaticDir string // Directory of public assets served at /
}
