package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/jh-117/meeting-agenda-builder-sub000/errors"
	agendaUsecase "github.com/jh-117/meeting-agenda-builder-sub000/internal/usecase/agenda"
	exportUsecase "github.com/jh-117/meeting-agenda-builder-sub000/internal/usecase/export"
	"github.com/jh-117/meeting-agenda-builder-sub000/pkg/i18n"
)

// Export handles document export HTTP requests
type Export struct {
	sessions agendaUsecase.Service
	exporter exportUsecase.Service
	logger   *zap.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(sessions agendaUsecase.Service, exporter exportUsecase.Service, logger *zap.Logger) *Export {
	return &Export{
		sessions: sessions,
		exporter: exporter,
		logger:   logger,
	}
}

// Download handles GET /agendas/:id/export
// @Summary      Download the agenda as a document
// @Description  Renders the session's current agenda as pdf, docx or txt and returns it as a file download
// @Tags         Export
// @Produce      application/octet-stream
// @Param        id        path      string  true   "Session ID"
// @Param        format    query     string  true   "Export format: pdf, docx or txt"
// @Param        language  query     string  false  "Label language, defaults to the session language"
// @Success      200  {file}    file  "Rendered document"
// @Failure      400  {object}  map[string]interface{}  "Unsupported format"
// @Failure      404  {object}  map[string]interface{}  "Session not found"
// @Failure      500  {object}  map[string]interface{}  "Rendering failed"
// @Router       /agendas/{id}/export [get]
func (h *Export) Download(c echo.Context) error {
	session, err := h.sessions.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	format, err := exportUsecase.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation(err.Error()))
	}

	language := c.QueryParam("language")
	if language == "" {
		language = session.Language
	}

	file, err := h.exporter.Export(&session.Agenda, format, i18n.Normalize(language))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if h.logger != nil {
		h.logger.Info("agenda exported",
			zap.String("session_id", session.ID),
			zap.String("format", string(format)),
			zap.Int("bytes", len(file.Data)),
		)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", file.Name))
	return c.Blob(http.StatusOK, file.ContentType, file.Data)
}

// Preview handles GET /agendas/:id/preview
// @Summary      Preview the agenda as HTML
// @Tags         Export
// @Produce      html
// @Param        id        path      string  true   "Session ID"
// @Param        language  query     string  false  "Label language, defaults to the session language"
// @Success      200  {string}  string  "HTML preview"
// @Failure      404  {object}  map[string]interface{}  "Session not found"
// @Router       /agendas/{id}/preview [get]
func (h *Export) Preview(c echo.Context) error {
	session, err := h.sessions.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	language := c.QueryParam("language")
	if language == "" {
		language = session.Language
	}

	page, err := h.exporter.PreviewHTML(&session.Agenda, i18n.Normalize(language))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.HTMLBlob(http.StatusOK, page)
}
