// Package http wires the catalog service, sessions and the activity log
// into a JSON API served by Gin.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/satriadi/perpustakaan/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before the session middleware so the session context
	// is not overwritten by CSRF's request replacement
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.Middleware())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	authController := NewAuthController(cfg.Catalog, cfg.SessionManager, cfg.Auditor)
	catalogController := NewCatalogController(cfg.Catalog, cfg.Auditor)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Account and session endpoints
	router.POST("/api/users", authController.Register)
	router.POST("/api/session", authController.Login)
	router.GET("/api/session", authController.SessionInfo)

	// All catalog routes require a session that matches the service's
	// current user
	authenticated := router.Group("/")
	authenticated.Use(auth.NewMiddleware(cfg.SessionManager, cfg.Catalog).RequireSession())

	authenticated.DELETE("/api/session", authController.Logout)
	authenticated.POST("/api/session/password", authController.ChangePassword)

	authenticated.GET("/api/books", catalogController.ListBooks)
	authenticated.POST("/api/books", catalogController.AddBook)
	authenticated.PUT("/api/books/:id", catalogController.UpdateBook)
	authenticated.DELETE("/api/books/:id", catalogController.DeleteBook)
	authenticated.POST("/api/books/sort", catalogController.SortBooks)
	authenticated.GET("/api/books/search", catalogController.SearchBooks)
	authenticated.GET("/api/books/:id/related", catalogController.RelatedBooks)
	authenticated.POST("/api/catalog/reload", catalogController.ReloadCatalog)
	authenticated.GET("/api/stats", catalogController.Stats)

	if cfg.Auditor != nil {
		auditController := NewAuditController(cfg.Auditor)
		authenticated.GET("/api/audit", auditController.GetEvents)
	}

	return router
}
