package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/sarpras/internal/server/handlers"
	"github.com/mamadbah2/sarpras/internal/server/middleware"
	"github.com/mamadbah2/sarpras/internal/service/auth"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Inventory *handlers.InventoryHandler
	Import    *handlers.ImportHandler
	Report    *handlers.ReportHandler
}

// New wires the Gin engine with required routes and middlewares. Reads are
// open to any authenticated session; every mutating route additionally
// requires the admin role, enforced here rather than by the client hiding
// its buttons.
func New(h Handlers, authSvc *auth.Service, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	authed := api.Group("", middleware.Authenticate(authSvc, logger))
	authed.GET("/auth/me", h.Auth.Me)
	authed.GET("/inventory", h.Inventory.List)
	authed.GET("/inventory/stream", h.Inventory.Stream)
	authed.GET("/inventory/:id", h.Inventory.Get)

	admin := authed.Group("", middleware.RequireAdmin())
	admin.POST("/inventory", h.Inventory.Create)
	admin.PUT("/inventory/:id", h.Inventory.Update)
	admin.DELETE("/inventory/:id", h.Inventory.Delete)
	admin.POST("/inventory/batch-delete", h.Inventory.BatchDelete)
	admin.POST("/inventory/import", h.Import.Import)
	admin.GET("/reports", h.Report.Download)
	admin.POST("/reports/sheet", h.Report.ExportToSheet)
	admin.GET("/dashboard/summary", h.Report.Summary)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
