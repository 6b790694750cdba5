package handler

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/jh-117/meeting-agenda-builder-sub000/errors"
	agendaDTO "github.com/jh-117/meeting-agenda-builder-sub000/internal/adapter/dto/agenda"
	"github.com/jh-117/meeting-agenda-builder-sub000/internal/usecase/extract"
)

// maxAttachmentBytes bounds a single uploaded attachment.
const maxAttachmentBytes = 20 << 20 // 20 MiB

// BlobStore is the attachment sink. The MinIO client satisfies it.
type BlobStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	RemoveObject(ctx context.Context, objectName string) error
}

// Attachment handles attachment upload and text extraction requests
type Attachment struct {
	store     BlobStore
	extractor *extract.Service
	logger    *zap.Logger
}

// NewAttachmentHandler creates a new attachment handler
func NewAttachmentHandler(store BlobStore, extractor *extract.Service, logger *zap.Logger) *Attachment {
	return &Attachment{
		store:     store,
		extractor: extractor,
		logger:    logger,
	}
}

// Upload handles POST /attachments
// @Summary      Upload an attachment
// @Description  Stores one uploaded file and returns its object key for later extraction
// @Tags         Attachments
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Attachment file"
// @Success      200   {object}  agenda.UploadResponse  "Stored attachment"
// @Failure      400   {object}  map[string]interface{}  "Missing or oversized file"
// @Failure      500   {object}  map[string]interface{}  "Storage failed"
// @Router       /attachments [post]
func (h *Attachment) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation("file is required"))
	}
	if fileHeader.Size > maxAttachmentBytes {
		return HandleError(h.logger, c, apperrors.ErrValidation(
			fmt.Sprintf("file exceeds the %d byte limit", maxAttachmentBytes)))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInternal(err))
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	objectKey := "attachments/" + uuid.NewString() + filepath.Ext(fileHeader.Filename)

	if err := h.store.UploadFile(c.Request().Context(), objectKey, src, fileHeader.Size, contentType); err != nil {
		return HandleError(h.logger, c, apperrors.ErrStorage(err))
	}

	if h.logger != nil {
		h.logger.Info("attachment uploaded",
			zap.String("object_key", objectKey),
			zap.String("file_name", fileHeader.Filename),
			zap.Int64("size", fileHeader.Size),
		)
	}

	return HandleSuccess(h.logger, c, agendaDTO.UploadResponse{
		ObjectKey: objectKey,
		FileName:  fileHeader.Filename,
		FileType:  contentType,
		Size:      fileHeader.Size,
	})
}

// Extract handles POST /attachments/extract
// @Summary      Extract attachment text
// @Description  Extracts plain text from a stored attachment. Failure is reported inside the envelope with a placeholder text, never as an HTTP error
// @Tags         Attachments
// @Accept       json
// @Produce      json
// @Param        request  body      agenda.ExtractRequest  true  "Extraction request"
// @Success      200      {object}  map[string]interface{}  "Extraction result"
// @Failure      400      {object}  map[string]interface{}  "Invalid request"
// @Router       /attachments/extract [post]
func (h *Attachment) Extract(c echo.Context) error {
	var req agendaDTO.ExtractRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrValidation(err.Error()))
	}

	result := h.extractor.Extract(c.Request().Context(), req.ObjectKey, req.FileName, req.FileType)
	return HandleSuccess(h.logger, c, result)
}

// Delete handles DELETE /attachments
// @Summary      Delete an attachment
// @Description  Removes a stored attachment once its extracted text has been folded into the form submission
// @Tags         Attachments
// @Produce      json
// @Param        objectKey  query     string  true  "Object key returned by the upload"
// @Success      200        {object}  map[string]interface{}  "Deleted"
// @Failure      400        {object}  map[string]interface{}  "Missing object key"
// @Failure      500        {object}  map[string]interface{}  "Storage failed"
// @Router       /attachments [delete]
func (h *Attachment) Delete(c echo.Context) error {
	objectKey := c.QueryParam("objectKey")
	if objectKey == "" {
		return HandleError(h.logger, c, apperrors.ErrValidation("objectKey is required"))
	}

	if err := h.store.RemoveObject(c.Request().Context(), objectKey); err != nil {
		return HandleError(h.logger, c, apperrors.ErrStorage(err))
	}

	if h.logger != nil {
		h.logger.Info("attachment deleted", zap.String("object_key", objectKey))
	}
	return HandleSuccess(h.logger, c, nil)
}
