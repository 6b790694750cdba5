package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/jh-117/meeting-agenda-builder-sub000/errors"
	agendaDTO "github.com/jh-117/meeting-agenda-builder-sub000/internal/adapter/dto/agenda"
	"github.com/jh-117/meeting-agenda-builder-sub000/internal/domain/entities"
	agendaUsecase "github.com/jh-117/meeting-agenda-builder-sub000/internal/usecase/agenda"
	"github.com/jh-117/meeting-agenda-builder-sub000/internal/usecase/generation"
	"github.com/jh-117/meeting-agenda-builder-sub000/pkg/i18n"
)

// Agenda handles agenda generation and edit-session HTTP requests
type Agenda struct {
	sessions  agendaUsecase.Service
	generator generation.Service
	logger    *zap.Logger
}

// NewAgendaHandler creates a new agenda handler
func NewAgendaHandler(sessions agendaUsecase.Service, generator generation.Service, logger *zap.Logger) *Agenda {
	return &Agenda{
		sessions:  sessions,
		generator: generator,
		logger:    logger,
	}
}

// Generate handles POST /generate
// @Summary      Run one stateless generation call
// @Description  Action-tagged union endpoint: generate from a form, regenerate all items, or regenerate one item
// @Tags         Generation
// @Accept       json
// @Produce      json
// @Param        request  body      agenda.GenerateRequest  true  "Generation request"
// @Success      200      {object}  map[string]interface{}  "Generation result"
// @Failure      400      {object}  map[string]interface{}  "Invalid request or validation failed"
// @Failure      502      {object}  map[string]interface{}  "Generation backend failed"
// @Router       /generate [post]
func (h *Agenda) Generate(c echo.Context) error {
	var req agendaDTO.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation(err.Error()))
	}
	if msg := req.ValidateForAction(); msg != "" {
		return HandleError(h.logger, c, apperrors.ErrValidation(msg))
	}

	language := i18n.Normalize(req.Language)
	ctx := c.Request().Context()

	switch req.Action {
	case agendaDTO.ActionGenerate:
		content, ctype := req.FormData.AttachmentContent, req.FormData.AttachmentType
		if req.AttachmentContent != nil {
			content, ctype = req.AttachmentContent, req.AttachmentType
		}
		result, err := h.generator.Generate(ctx, req.FormData, language, content, ctype)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		return HandleSuccess(h.logger, c, map[string]interface{}{"agendaData": result})

	case agendaDTO.ActionRegenerate:
		lists, err := h.generator.RegenerateAll(ctx, req.AgendaData, language, req.AttachmentContent, req.AttachmentType)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		return HandleSuccess(h.logger, c, lists)

	default: // regenerate_item, guarded by the oneof validation
		ictx := entities.ItemContext{}
		if req.Context != nil {
			ictx = *req.Context
		} else if req.AgendaData != nil {
			ictx = req.AgendaData.Context()
		}
		item, err := h.generator.RegenerateItem(ctx, req.ItemData, ictx, language)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		return HandleSuccess(h.logger, c, map[string]interface{}{"itemData": item})
	}
}

// CreateSession handles POST /agendas
// @Summary      Open an edit session
// @Description  Generates an agenda from the form submission and opens a server-side edit session around it
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        request  body      agenda.CreateSessionRequest  true  "Session creation request"
// @Success      200      {object}  map[string]interface{}  "Edit session"
// @Failure      400      {object}  map[string]interface{}  "Invalid request or validation failed"
// @Failure      502      {object}  map[string]interface{}  "Generation backend failed"
// @Router       /agendas [post]
func (h *Agenda) CreateSession(c echo.Context) error {
	var req agendaDTO.CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation(err.Error()))
	}

	session, err := h.sessions.Create(c.Request().Context(), req.FormData, i18n.Normalize(req.Language))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, session)
}

// GetSession handles GET /agendas/:id
// @Summary      Fetch an edit session
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  map[string]interface{}  "Edit session"
// @Failure      404  {object}  map[string]interface{}  "Session not found"
// @Router       /agendas/{id} [get]
func (h *Agenda) GetSession(c echo.Context) error {
	session, err := h.sessions.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, session)
}

// DeleteSession handles DELETE /agendas/:id
// @Summary      Discard an edit session
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  map[string]interface{}  "Deleted"
// @Router       /agendas/{id} [delete]
func (h *Agenda) DeleteSession(c echo.Context) error {
	if err := h.sessions.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, nil)
}

// EditField handles PATCH /agendas/:id/fields
// @Summary      Edit a top-level agenda field
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Session ID"
// @Param        request  body      agenda.FieldEditRequest  true  "Field edit"
// @Success      200      {object}  map[string]interface{}  "Updated session"
// @Failure      400      {object}  map[string]interface{}  "Unknown field"
// @Failure      404      {object}  map[string]interface{}  "Session not found"
// @Router       /agendas/{id}/fields [patch]
func (h *Agenda) EditField(c echo.Context) error {
	var req agendaDTO.FieldEditRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation(err.Error()))
	}

	session, err := h.sessions.ApplyFieldEdit(c.Request().Context(), c.Param("id"), req.Field, req.Value)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, session)
}

// EditItem handles PATCH /agendas/:id/items
// @Summary      Edit one field of one list item
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Session ID"
// @Param        request  body      agenda.ItemEditRequest  true  "Item edit"
// @Success      200      {object}  map[string]interface{}  "Updated session"
// @Failure      400      {object}  map[string]interface{}  "Unknown field or list"
// @Failure      404      {object}  map[string]interface{}  "Session not found"
// @Router       /agendas/{id}/items [patch]
func (h *Agenda) EditItem(c echo.Context) error {
	var req agendaDTO.ItemEditRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation(err.Error()))
	}

	session, err := h.sessions.ApplyItemEdit(c.Request().Context(), c.Param("id"), req.List, *req.Index, req.Field, req.Value)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, session)
}

// AddItem handles POST /agendas/:id/items
// @Summary      Append an empty agenda item
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  map[string]interface{}  "Updated session"
// @Failure      404  {object}  map[string]interface{}  "Session not found"
// @Router       /agendas/{id}/items [post]
func (h *Agenda) AddItem(c echo.Context) error {
	session, err := h.sessions.AddAgendaItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, session)
}

// RemoveItem handles DELETE /agendas/:id/items/:index
// @Summary      Remove the agenda item at an index
// @Tags         Sessions
// @Produce      json
// @Param        id     path      string  true  "Session ID"
// @Param        index  path      int     true  "Item index"
// @Success      200    {object}  map[string]interface{}  "Updated session"
// @Failure      400    {object}  map[string]interface{}  "Index is not a number"
// @Failure      404    {object}  map[string]interface{}  "Session not found"
// @Router       /agendas/{id}/items/{index} [delete]
func (h *Agenda) RemoveItem(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation("index must be an integer"))
	}

	session, err := h.sessions.RemoveAgendaItem(c.Request().Context(), c.Param("id"), index)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, session)
}

// Reorder handles POST /agendas/:id/reorder
// @Summary      Move an agenda item to another item's position
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Session ID"
// @Param        request  body      agenda.ReorderRequest  true  "Reorder request"
// @Success      200      {object}  map[string]interface{}  "Updated session"
// @Failure      404      {object}  map[string]interface{}  "Session not found"
// @Router       /agendas/{id}/reorder [post]
func (h *Agenda) Reorder(c echo.Context) error {
	var req agendaDTO.ReorderRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation(err.Error()))
	}

	session, err := h.sessions.Reorder(c.Request().Context(), c.Param("id"), req.ActiveID, req.OverID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, session)
}

// RegenerateAll handles POST /agendas/:id/regenerate
// @Summary      Regenerate both item lists
// @Description  Replaces the agenda and action item lists from a fresh generation; other fields keep their edits
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  map[string]interface{}  "Updated session"
// @Failure      404  {object}  map[string]interface{}  "Session not found"
// @Failure      409  {object}  map[string]interface{}  "Regeneration already in flight"
// @Failure      502  {object}  map[string]interface{}  "Generation backend failed"
// @Router       /agendas/{id}/regenerate [post]
func (h *Agenda) RegenerateAll(c echo.Context) error {
	session, err := h.sessions.RegenerateAll(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, session)
}

// RegenerateItem handles POST /agendas/:id/items/:itemId/regenerate
// @Summary      Regenerate one agenda item
// @Description  Replaces the item's content from a fresh generation, keeping its id. A result for an item deleted mid-flight is discarded
// @Tags         Sessions
// @Produce      json
// @Param        id      path      string  true  "Session ID"
// @Param        itemId  path      string  true  "Agenda item ID"
// @Success      200     {object}  map[string]interface{}  "Updated session"
// @Failure      404     {object}  map[string]interface{}  "Session or item not found"
// @Failure      409     {object}  map[string]interface{}  "Regeneration already in flight for this item"
// @Failure      410     {object}  map[string]interface{}  "Item deleted while regenerating"
// @Failure      502     {object}  map[string]interface{}  "Generation backend failed"
// @Router       /agendas/{id}/items/{itemId}/regenerate [post]
func (h *Agenda) RegenerateItem(c echo.Context) error {
	session, err := h.sessions.RegenerateItem(c.Request().Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, session)
}
