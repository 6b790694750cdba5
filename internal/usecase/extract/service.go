package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	backoff "github.com/cenkalti/backoff/v4"
	docx "github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// MaxExtractedChars caps the text contributed by one attachment.
const MaxExtractedChars = 10000

// ObjectStore is the attachment source. The MinIO client satisfies it;
// tests substitute a fake.
type ObjectStore interface {
	GetObject(ctx context.Context, objectName string) (io.ReadCloser, error)
}

// Result is the extraction response envelope. A failed extraction is
// reported inside the envelope with a placeholder text so the rest of
// the form submission is never blocked.
type Result struct {
	Success       bool   `json:"success"`
	ExtractedText string `json:"extractedText"`
	FileName      string `json:"fileName"`
	FileType      string `json:"fileType"`
	Error         string `json:"error,omitempty"`
}

// Service turns stored attachments into plain text for generation
// grounding.
type Service struct {
	store  ObjectStore
	logger *zap.Logger
}

// NewService constructs the extraction service.
func NewService(store ObjectStore, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Extract downloads the object and extracts plain text according to
// the declared type. It never returns an error: failures produce a
// Result with Success=false and a placeholder text.
func (s *Service) Extract(ctx context.Context, objectName, fileName, fileType string) *Result {
	data, err := s.download(ctx, objectName)
	if err != nil {
		return s.failure(fileName, fileType, fmt.Errorf("download failed: %w", err))
	}

	text, err := extractText(data, fileName, fileType)
	if err != nil {
		return s.failure(fileName, fileType, err)
	}

	return &Result{
		Success:       true,
		ExtractedText: truncate(text, MaxExtractedChars),
		FileName:      fileName,
		FileType:      fileType,
	}
}

// download fetches the object with transport-level retries. Retrying
// here is transport resilience, not generation retry: a failed
// extraction still resolves to a placeholder.
func (s *Service) download(ctx context.Context, objectName string) ([]byte, error) {
	var data []byte
	fetch := func() error {
		obj, err := s.store.GetObject(ctx, objectName)
		if err != nil {
			return err
		}
		defer obj.Close()
		data, err = io.ReadAll(obj)
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(fetch, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Service) failure(fileName, fileType string, cause error) *Result {
	if s.logger != nil {
		s.logger.Warn("attachment extraction failed",
			zap.String("file_name", fileName),
			zap.String("file_type", fileType),
			zap.Error(cause),
		)
	}
	return &Result{
		Success:       false,
		ExtractedText: fmt.Sprintf("[Error extracting text from %s]", fileName),
		FileName:      fileName,
		FileType:      fileType,
		Error:         cause.Error(),
	}
}

type attachmentKind int

const (
	kindUnknown attachmentKind = iota
	kindText
	kindPDF
	kindDocx
	kindImage
)

func detectKind(fileName, fileType string) attachmentKind {
	t := strings.ToLower(fileType)
	switch {
	case strings.HasPrefix(t, "text/"):
		return kindText
	case strings.Contains(t, "pdf"):
		return kindPDF
	case strings.Contains(t, "wordprocessingml") || strings.Contains(t, "msword") || t == "docx":
		return kindDocx
	case strings.HasPrefix(t, "image/"):
		return kindImage
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".txt", ".md", ".csv":
		return kindText
	case ".pdf":
		return kindPDF
	case ".docx", ".doc":
		return kindDocx
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return kindImage
	}
	return kindUnknown
}

func extractText(data []byte, fileName, fileType string) (string, error) {
	switch detectKind(fileName, fileType) {
	case kindText:
		return string(data), nil
	case kindPDF:
		return extractPDFText(data)
	case kindDocx:
		return extractDocxText(data)
	case kindImage:
		return "", fmt.Errorf("OCR for image attachments is not supported")
	default:
		// Unknown type: accept it when it already reads as text.
		if utf8.Valid(data) {
			return string(data), nil
		}
		return "", fmt.Errorf("unsupported attachment type %q", fileType)
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	text, err := io.ReadAll(textReader)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}

	var b strings.Builder
	for _, item := range doc.Document.Body.Items {
		if s, ok := item.(fmt.Stringer); ok {
			b.WriteString(s.String())
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// truncate cuts at a rune boundary.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
