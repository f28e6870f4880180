// Package http wires the gin router and the JSON controllers over the
// library service.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/bibliosmart/bibliosmart/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	if cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() {
		authController := auth.NewController(cfg.AuthService, cfg.SessionManager)
		authController.RegisterRoutes(router)
	}

	api := router.Group("/api")
	if cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() && cfg.SessionManager != nil {
		api.Use(cfg.SessionManager.RequireOperator())
	}

	dashboardController := NewDashboardController(cfg.Store)
	api.GET("/dashboard", dashboardController.Dashboard)

	booksController := NewBooksController(cfg.Store, cfg.Service, cfg.Enricher, cfg.TaskClient)
	api.GET("/books", booksController.List)
	api.POST("/books", booksController.Create)
	api.DELETE("/books/:id", booksController.Delete)
	api.POST("/books/autofill", booksController.Autofill)
	api.POST("/books/:id/enrich", booksController.Enrich)
	api.POST("/books/enrich-all", booksController.EnrichAll)

	readersController := NewReadersController(cfg.Store, cfg.Service)
	api.GET("/readers", readersController.List)
	api.POST("/readers", readersController.Create)
	api.DELETE("/readers/:id", readersController.Delete)

	loansController := NewLoansController(cfg.Store, cfg.Service)
	api.GET("/loans", loansController.List)
	api.POST("/loans", loansController.Create)
	api.POST("/loans/:id/return", loansController.Return)

	reportsController := NewReportsController(cfg.Store)
	api.GET("/reports/available", reportsController.Available)
	api.GET("/reports/genres", reportsController.Genres)
	api.GET("/reports/returns", reportsController.Returns)

	adminController := NewAdminController(cfg.Store, cfg.BackupDir)
	api.POST("/admin/backup", adminController.Backup)

	return router
}
