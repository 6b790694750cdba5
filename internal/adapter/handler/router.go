package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jh-117/meeting-agenda-builder-sub000/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	agendaHandler     *Agenda
	exportHandler     *Export
	attachmentHandler *Attachment
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, agendaHandler *Agenda, exportHandler *Export, attachmentHandler *Attachment) *Router {
	return &Router{
		cfg:               cfg,
		agendaHandler:     agendaHandler,
		exportHandler:     exportHandler,
		attachmentHandler: attachmentHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupGenerationRoutes(v1)
	rt.setupSessionRoutes(v1)
	rt.setupAttachmentRoutes(v1)
}

// setupGenerationRoutes configures the stateless generation route
func (rt *Router) setupGenerationRoutes(g *echo.Group) {
	g.POST("/generate", rt.agendaHandler.Generate)
}

// setupSessionRoutes configures edit-session routes
func (rt *Router) setupSessionRoutes(g *echo.Group) {
	agendas := g.Group("/agendas")

	agendas.POST("", rt.agendaHandler.CreateSession)
	agendas.GET("/:id", rt.agendaHandler.GetSession)
	agendas.DELETE("/:id", rt.agendaHandler.DeleteSession)

	agendas.PATCH("/:id/fields", rt.agendaHandler.EditField)
	agendas.PATCH("/:id/items", rt.agendaHandler.EditItem)
	agendas.POST("/:id/items", rt.agendaHandler.AddItem)
	agendas.DELETE("/:id/items/:index", rt.agendaHandler.RemoveItem)
	agendas.POST("/:id/reorder", rt.agendaHandler.Reorder)

	agendas.POST("/:id/regenerate", rt.agendaHandler.RegenerateAll)
	agendas.POST("/:id/items/:itemId/regenerate", rt.agendaHandler.RegenerateItem)

	agendas.GET("/:id/export", rt.exportHandler.Download)
	agendas.GET("/:id/preview", rt.exportHandler.Preview)
}

// setupAttachmentRoutes configures attachment routes. Attachments are
// optional: without object storage the routes answer 501.
func (rt *Router) setupAttachmentRoutes(g *echo.Group) {
	attachments := g.Group("/attachments")

	if rt.attachmentHandler != nil {
		attachments.POST("", rt.attachmentHandler.Upload)
		attachments.POST("/extract", rt.attachmentHandler.Extract)
		attachments.DELETE("", rt.attachmentHandler.Delete)
	} else {
		attachments.POST("", rt.notImplemented)
		attachments.POST("/extract", rt.notImplemented)
		attachments.DELETE("", rt.notImplemented)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not available",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Configure object storage to enable attachments",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
