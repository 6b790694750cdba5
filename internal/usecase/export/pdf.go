package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/jh-117/meeting-agenda-builder-sub000/internal/domain/entities"
	"github.com/jh-117/meeting-agenda-builder-sub000/pkg/i18n"
)

// A4 portrait with automatic page breaks. Core fonts only: non-Latin
// scripts degrade in the PDF; DOCX and TXT remain fully Unicode.

// renderStyledPDF is the primary path: a styled layout with a header
// band and numbered item blocks.
func renderStyledPDF(agenda *entities.AgendaData, labels i18n.LabelSet) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Header band
	pdf.SetFillColor(31, 78, 121)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(10, 8)
	pdf.CellFormat(190, 12, tr(documentTitle(agenda, labels)), "", 1, "C", false, 0, "")
	pdf.SetY(34)
	pdf.SetTextColor(40, 40, 40)

	// Basic info
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range infoLines(agenda, labels) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 7, tr(line.label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 7, tr(line.value), "", "L", false)
	}

	if agenda.MeetingObjective != "" {
		styledSectionTitle(pdf, tr(labels.Objective))
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(agenda.MeetingObjective), "", "L", false)
	}

	if len(agenda.AgendaItems) > 0 {
		styledSectionTitle(pdf, tr(labels.AgendaSection))
		for i, item := range agenda.AgendaItems {
			pdf.SetFillColor(234, 240, 248)
			pdf.SetFont("Helvetica", "B", 12)
			pdf.CellFormat(0, 8, tr(fmt.Sprintf("%d. %s", i+1, item.Topic)), "", 1, "L", true, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			for _, line := range itemLines(item, labels) {
				pdf.SetX(16)
				pdf.MultiCell(0, 5.5, tr(fmt.Sprintf("%s: %s", line.label, line.value)), "", "L", false)
			}
			pdf.Ln(2)
		}
	}

	if len(agenda.ActionItems) > 0 {
		styledSectionTitle(pdf, tr(labels.ActionSection))
		pdf.SetFont("Helvetica", "", 10)
		for i, item := range agenda.ActionItems {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(0, 7, tr(fmt.Sprintf("%d. %s", i+1, item.Task)), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			for _, line := range actionLines(item, labels) {
				pdf.SetX(16)
				pdf.MultiCell(0, 5.5, tr(fmt.Sprintf("%s: %s", line.label, line.value)), "", "L", false)
			}
			pdf.Ln(1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func styledSectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(31, 78, 121)
	pdf.CellFormat(0, 9, title, "B", 1, "L", false, 0, "")
	pdf.SetTextColor(40, 40, 40)
	pdf.Ln(1)
}

// renderTextPDF is the fallback path: the TXT layout flowed onto PDF
// pages as wrapped text. Page breaks come from the auto page break
// whenever the cursor would pass the printable height.
func renderTextPDF(agenda *entities.AgendaData, labels i18n.LabelSet) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Courier", "", 10)
	pdf.SetTextColor(0, 0, 0)

	for _, line := range splitLines(renderTXT(agenda, labels)) {
		if line == "" {
			pdf.Ln(4)
			continue
		}
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
