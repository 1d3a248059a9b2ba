// Package entrypoint wires the application together and runs the server.
package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/satriadi/perpustakaan/internal/audit"
	"github.com/satriadi/perpustakaan/internal/auth"
	"github.com/satriadi/perpustakaan/internal/catalog"
	"github.com/satriadi/perpustakaan/internal/config"
	"github.com/satriadi/perpustakaan/internal/database"
	auditrepo "github.com/satriadi/perpustakaan/internal/database/audit"
	"github.com/satriadi/perpustakaan/internal/database/books"
	"github.com/satriadi/perpustakaan/internal/database/users"
	http_controllers "github.com/satriadi/perpustakaan/internal/http"
	"github.com/satriadi/perpustakaan/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the cleanup scheduler)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Perpustakaan v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Catalog service over the user and book repositories
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	catalogService := catalog.NewService(
		users.NewRepository(db.DB),
		books.NewRepository(db.DB),
		hasher,
	)

	// Audit trail with scheduled retention pruning
	auditService := audit.NewService(auditrepo.NewRepository(db.DB))
	auditScheduler := scheduler.NewAuditCleanupScheduler(auditService, cfg.Audit)

	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	if err := auditScheduler.Start(schedulerCtx); err != nil {
		schedulerCancel()
		log.Fatalf("Failed to start audit cleanup scheduler: %v", err)
	}

	// Get underlying SQL DB for the session store
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	// Generate or use configured CSRF secret
	var csrfSecret []byte
	if cfg.Auth.SessionSecret != "" {
		csrfSecret, err = hex.DecodeString(cfg.Auth.SessionSecret)
		if err != nil {
			// Not hex, use as raw bytes
			csrfSecret = []byte(cfg.Auth.SessionSecret)
		}
	} else {
		secret, err := auth.GenerateSessionSecret()
		if err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
		csrfSecret, _ = hex.DecodeString(secret)
		log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
	}

	routerCfg := http_controllers.RouterConfig{
		Catalog:        catalogService,
		Database:       db,
		Auditor:        auditService,
		SessionManager: sessionManager,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		auditScheduler.Stop()
		schedulerCancel()
	}

	Serve(router, cfg, onShutdown)
}
