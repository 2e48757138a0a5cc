package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/cropbudget/internal/server/handlers"
)

// Handlers groups the HTTP adapters served by the engine.
type Handlers struct {
	Seasons       *handlers.SeasonHandler
	Tickets       *handlers.TicketHandler
	Grids         *handlers.GridHandler
	Notifications *handlers.NotificationHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/", handlers.RequireOwner())

	api.GET("/seasons", h.Seasons.Years)
	seasons := api.Group("/seasons/:year")
	{
		seasons.GET("", h.Seasons.Document)
		seasons.PUT("", h.Seasons.Replace)
		seasons.GET("/status", h.Seasons.Status)
		seasons.POST("/save", h.Seasons.Save)
		seasons.POST("/copy", h.Seasons.Copy)
		seasons.GET("/budget", h.Seasons.Budget)
		seasons.GET("/summary", h.Seasons.Summary)
		seasons.GET("/report", h.Notifications.Report)

		seasons.POST("/crops", h.Seasons.AddCrop)
		seasons.DELETE("/crops/:id", h.Seasons.RemoveCrop)
		seasons.POST("/contracts/:group", h.Seasons.AddContract)
		seasons.DELETE("/contracts/:group/:id", h.Seasons.RemoveContract)
		seasons.POST("/overhead", h.Seasons.AddOverhead)
		seasons.DELETE("/overhead/:id", h.Seasons.RemoveOverhead)
		seasons.POST("/rents", h.Seasons.AddCashRent)
		seasons.POST("/capital", h.Seasons.AddCapitalItem)
		seasons.POST("/wishlist/:id/plan", h.Seasons.PlanWish)

		seasons.GET("/tickets", h.Tickets.List)
		seasons.POST("/tickets", h.Tickets.QuickAdd)
		seasons.GET("/tickets/export", h.Tickets.Export)
		seasons.PATCH("/tickets/:id", h.Tickets.Edit)
		seasons.DELETE("/tickets/:id", h.Tickets.Delete)

		seasons.POST("/imports", h.Tickets.StartImport)
		seasons.POST("/grid", h.Grids.Open)
	}

	imports := api.Group("/imports/:id")
	{
		imports.GET("", h.Tickets.GetImport)
		imports.PUT("/mapping", h.Tickets.UpdateMapping)
		imports.POST("/commit", h.Tickets.CommitImport)
		imports.DELETE("", h.Tickets.DiscardImport)
	}

	grids := api.Group("/grid/:id")
	{
		grids.GET("", h.Grids.State)
		grids.DELETE("", h.Grids.Close)
		grids.POST("/focus", h.Grids.Focus)
		grids.POST("/key", h.Grids.Key)
		grids.POST("/edit", h.Grids.Edit)
		grids.POST("/rows", h.Grids.AddRow)
		grids.POST("/sort", h.Grids.Sort)
		grids.POST("/filter", h.Grids.Filter)
	}

	api.POST("/notifications", h.Notifications.Send)

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
