package export

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jh-117/meeting-agenda-builder-sub000/internal/domain/entities"
	"github.com/jh-117/meeting-agenda-builder-sub000/pkg/i18n"
)

func newTestExporter() *exportService {
	return NewService(zap.NewNop()).(*exportService)
}

func TestParseFormat(t *testing.T) {
	for _, ok := range []string{"pdf", "docx", "txt", "PDF", "Txt"} {
		if _, err := ParseFormat(ok); err != nil {
			t.Fatalf("expected %q to parse: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "doc", "html", "pdfx"} {
		if _, err := ParseFormat(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestExport_FileNames(t *testing.T) {
	svc := newTestExporter()
	svc.now = func() time.Time { return time.UnixMilli(1756350000000) }

	for _, format := range []Format{FormatPDF, FormatDOCX, FormatTXT} {
		file, err := svc.Export(exportAgenda(), format, "en")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", format, err)
		}
		want := fmt.Sprintf("meeting-agenda-1756350000000.%s", format)
		if file.Name != want {
			t.Fatalf("expected name %q, got %q", want, file.Name)
		}
		if len(file.Data) == 0 {
			t.Fatalf("%s: empty file", format)
		}
	}
}

func TestExport_PDFMagic(t *testing.T) {
	svc := newTestExporter()

	file, err := svc.Export(exportAgenda(), FormatPDF, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(file.Data, []byte("%PDF")) {
		t.Fatalf("expected PDF magic, got %q", file.Data[:8])
	}
	if file.ContentType != "application/pdf" {
		t.Fatalf("unexpected content type %q", file.ContentType)
	}
}

func TestExport_DOCXMagic(t *testing.T) {
	svc := newTestExporter()

	file, err := svc.Export(exportAgenda(), FormatDOCX, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// DOCX is a zip container.
	if !bytes.HasPrefix(file.Data, []byte("PK")) {
		t.Fatalf("expected zip magic, got %q", file.Data[:4])
	}
}

func TestExport_TXTContent(t *testing.T) {
	svc := newTestExporter()

	file, err := svc.Export(exportAgenda(), FormatTXT, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(file.Data), "Quarterly Planning") {
		t.Fatal("expected agenda content in TXT export")
	}
	if !strings.HasPrefix(file.ContentType, "text/plain") {
		t.Fatalf("unexpected content type %q", file.ContentType)
	}
}

func TestExport_UnsupportedFormat(t *testing.T) {
	svc := newTestExporter()
	if _, err := svc.Export(exportAgenda(), Format("html"), "en"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestExport_StyledPDFFailureFallsBack(t *testing.T) {
	svc := newTestExporter()
	svc.renderStyledPDF = func(*entities.AgendaData, i18n.LabelSet) ([]byte, error) {
		return nil, fmt.Errorf("layout blew up")
	}

	file, err := svc.Export(exportAgenda(), FormatPDF, "en")
	if err != nil {
		t.Fatalf("fallback must succeed: %v", err)
	}
	if !bytes.HasPrefix(file.Data, []byte("%PDF")) {
		t.Fatal("fallback output is not a PDF")
	}
}

func TestExport_StyledPDFPanicFallsBack(t *testing.T) {
	svc := newTestExporter()
	svc.renderStyledPDF = func(*entities.AgendaData, i18n.LabelSet) ([]byte, error) {
		panic("unexpected glyph")
	}

	file, err := svc.Export(exportAgenda(), FormatPDF, "en")
	if err != nil {
		t.Fatalf("fallback must absorb the panic: %v", err)
	}
	if !bytes.HasPrefix(file.Data, []byte("%PDF")) {
		t.Fatal("fallback output is not a PDF")
	}
}

func TestPreviewHTML(t *testing.T) {
	svc := newTestExporter()

	agenda := exportAgenda()
	agenda.AgendaItems[0].Description = "Walk the **numbers**"

	page, err := svc.PreviewHTML(agenda, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := string(page)
	if !strings.Contains(out, "Quarterly Planning") {
		t.Fatal("expected title in preview")
	}
	if !strings.Contains(out, "<strong>numbers</strong>") {
		t.Fatal("expected markdown description to be converted")
	}
}
