// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	adminauthfeature "github.com/bhavyaverma/portfolio/internal/app/features/adminauth"
	contactapifeature "github.com/bhavyaverma/portfolio/internal/app/features/contactapi"
	healthfeature "github.com/bhavyaverma/portfolio/internal/app/features/health"
	resumeapifeature "github.com/bhavyaverma/portfolio/internal/app/features/resumeapi"
	statsapifeature "github.com/bhavyaverma/portfolio/internal/app/features/statsapi"
	"github.com/bhavyaverma/portfolio/internal/app/store/admins"
	"github.com/bhavyaverma/portfolio/internal/app/store/analytics"
	"github.com/bhavyaverma/portfolio/internal/app/store/contacts"
	"github.com/bhavyaverma/portfolio/internal/app/store/downloads"
	"github.com/bhavyaverma/portfolio/internal/app/store/loginattempts"
	resumestore "github.com/bhavyaverma/portfolio/internal/app/store/resume"
	"github.com/bhavyaverma/portfolio/internal/app/store/sessions"
	"github.com/bhavyaverma/portfolio/internal/app/system/adminauth"
	"github.com/bhavyaverma/portfolio/internal/app/system/authtoken"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. The site splits into three
// surfaces:
//   - public API routes: /api/contact, /api/resume/download
//   - admin API routes: /api/admin/* behind bearer-token auth
//   - static assets: the portfolio site itself, served from StaticDir
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Stores
	adminStore := admins.New(db)
	sessionStore := sessions.New(db)
	attemptStore := loginattempts.New(db)
	downloadStore := downloads.New(db)
	contactStore := contacts.New(db)
	analyticsStore := analytics.New(db)
	resumeStore := resumestore.New(db, appCfg.ResumeStaticURL)

	// Auth service: signed tokens plus revocable session records.
	tokens := authtoken.New(appCfg.JWTSecret, appCfg.SessionTTL)
	authSvc := adminauth.New(adminStore, sessionStore, attemptStore, tokens, logger)

	// Feature handlers
	authHandler := adminauthfeature.NewHandler(authSvc, logger)
	contactHandler := contactapifeature.NewHandler(contactStore, analyticsStore, deps.Mailer, appCfg.ContactEmail, appCfg.OwnerName, logger)
	resumeHandler := resumeapifeature.NewHandler(resumeStore, downloadStore, analyticsStore, appCfg.ResumeMaxUpload, logger)
	statsHandler := statsapifeature.NewHandler(downloadStore, contactStore, attemptStore, sessionStore, logger)
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORSFromConfig(coreCfg))
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// API routes: JSON only, permissive CORS so the site can be served
	// from a CDN domain, no cookies involved.
	r.Route("/api", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))

		api.Mount("/contact", contactapifeature.Routes(contactHandler, appCfg.ContactRatePerMinute))
		api.Mount("/resume", resumeapifeature.PublicRoutes(resumeHandler))

		api.Route("/admin", func(admin chi.Router) {
			admin.Mount("/", adminauthfeature.Routes(authHandler, authSvc, appCfg.LoginRatePerMinute))

			admin.Group(func(gr chi.Router) {
				gr.Use(authSvc.RequireAdmin)
				gr.Get("/contacts", contactHandler.ListHandler)
				gr.Get("/stats", statsHandler.DashboardHandler)
				gr.Get("/download-stats", statsHandler.DownloadStatsHandler)
				gr.Post("/resume", resumeHandler.UploadHandler)
			})
		})
	})

	// Health checks
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static portfolio site, including the fallback resume PDF.
	r.Handle("/*", fileserver.Handler("/", appCfg.StaticDir))

	logger.Info("HTTP handler built",
		zap.String("static_dir", appCfg.StaticDir),
		zap.String("resume_fallback", appCfg.ResumeStaticURL),
	)

	return r, nil
}
