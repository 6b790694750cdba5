package export

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/jh-117/meeting-agenda-builder-sub000/errors"
	"github.com/jh-117/meeting-agenda-builder-sub000/internal/domain/entities"
	"github.com/jh-117/meeting-agenda-builder-sub000/pkg/i18n"
)

// Format is a supported export format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

// ParseFormat validates a format query value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatDOCX:
		return FormatDOCX, nil
	case FormatTXT:
		return FormatTXT, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// File is a rendered, downloadable document.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Service renders read-only agenda snapshots into downloadable
// documents. It never mutates its input.
type Service interface {
	Export(agenda *entities.AgendaData, format Format, language string) (*File, error)
	PreviewHTML(agenda *entities.AgendaData, language string) ([]byte, error)
}

type exportService struct {
	logger *zap.Logger
	now    func() time.Time

	// renderStyledPDF is the primary PDF path. Kept as a field so the
	// fallback behavior is testable without a real rendering failure.
	renderStyledPDF func(*entities.AgendaData, i18n.LabelSet) ([]byte, error)
}

// NewService constructs the exporter.
func NewService(logger *zap.Logger) Service {
	return &exportService{
		logger:          logger,
		now:             time.Now,
		renderStyledPDF: renderStyledPDF,
	}
}

// Export renders the agenda in the requested format with the
// language-selected label set. All formats share the same section
// order and skip empty optional fields entirely.
func (s *exportService) Export(agenda *entities.AgendaData, format Format, language string) (*File, error) {
	labels := i18n.LabelsFor(language)

	switch format {
	case FormatTXT:
		data := []byte(renderTXT(agenda, labels))
		return s.file(labels, format, "text/plain; charset=utf-8", data), nil

	case FormatDOCX:
		data, err := renderDOCX(agenda, labels)
		if err != nil {
			return nil, apperrors.ErrExport(string(format), err)
		}
		return s.file(labels, format,
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document", data), nil

	case FormatPDF:
		data, err := s.renderPDF(agenda, labels)
		if err != nil {
			return nil, apperrors.ErrExport(string(format), err)
		}
		return s.file(labels, format, "application/pdf", data), nil

	default:
		return nil, apperrors.ErrValidation(fmt.Sprintf("unsupported export format %q", format))
	}
}

// renderPDF tries the styled layout first; any error or panic there
// degrades to the plain text layout instead of reaching the caller.
func (s *exportService) renderPDF(agenda *entities.AgendaData, labels i18n.LabelSet) ([]byte, error) {
	data, err := s.tryStyledPDF(agenda, labels)
	if err == nil {
		return data, nil
	}
	if s.logger != nil {
		s.logger.Warn("styled PDF render failed, using text fallback", zap.Error(err))
	}
	return renderTextPDF(agenda, labels)
}

func (s *exportService) tryStyledPDF(agenda *entities.AgendaData, labels i18n.LabelSet) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("styled render panic: %v", r)
		}
	}()
	return s.renderStyledPDF(agenda, labels)
}

func (s *exportService) file(labels i18n.LabelSet, format Format, contentType string, data []byte) *File {
	return &File{
		Name:        fmt.Sprintf("%s-%d.%s", labels.BaseName, s.now().UnixMilli(), format),
		ContentType: contentType,
		Data:        data,
	}
}

// documentTitle falls back to the localized default when the meeting
// has no title.
func documentTitle(agenda *entities.AgendaData, labels i18n.LabelSet) string {
	if strings.TrimSpace(agenda.MeetingTitle) != "" {
		return agenda.MeetingTitle
	}
	return labels.DefaultTitle
}

// infoLine is one "label: value" row of the basic info section.
type infoLine struct {
	label string
	value string
}

// infoLines assembles the basic info rows, skipping empty fields.
func infoLines(agenda *entities.AgendaData, labels i18n.LabelSet) []infoLine {
	lines := make([]infoLine, 0, 7)
	add := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			lines = append(lines, infoLine{label: label, value: value})
		}
	}
	add(labels.Date, agenda.MeetingDate)
	add(labels.Time, agenda.MeetingTime)
	if agenda.Duration > 0 {
		add(labels.Duration, fmt.Sprintf("%d %s", agenda.Duration, labels.Minutes))
	}
	add(labels.Location, agenda.Location)
	add(labels.Facilitator, agenda.Facilitator)
	add(labels.NoteTaker, agenda.NoteTaker)
	add(labels.Attendees, agenda.Attendees)
	return lines
}

// itemLines assembles the sub-field rows of one agenda item, skipping
// empty fields. The topic is rendered separately as the item heading.
func itemLines(item entities.AgendaItem, labels i18n.LabelSet) []infoLine {
	lines := make([]infoLine, 0, 4)
	if strings.TrimSpace(item.Owner) != "" {
		lines = append(lines, infoLine{labels.Owner, item.Owner})
	}
	if item.TimeAllocation > 0 {
		lines = append(lines, infoLine{labels.TimeAllocation, fmt.Sprintf("%d %s", item.TimeAllocation, labels.Minutes)})
	}
	if strings.TrimSpace(item.Description) != "" {
		lines = append(lines, infoLine{labels.Description, item.Description})
	}
	if strings.TrimSpace(item.ExpectedOutput) != "" {
		lines = append(lines, infoLine{labels.ExpectedOutput, item.ExpectedOutput})
	}
	return lines
}

// actionLines assembles the sub-field rows of one action item.
func actionLines(item entities.ActionItem, labels i18n.LabelSet) []infoLine {
	lines := make([]infoLine, 0, 2)
	if strings.TrimSpace(item.Owner) != "" {
		lines = append(lines, infoLine{labels.Owner, item.Owner})
	}
	if strings.TrimSpace(item.Deadline) != "" {
		lines = append(lines, infoLine{labels.Deadline, item.Deadline})
	}
	return lines
}
