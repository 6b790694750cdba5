package export

import (
	"bytes"
	"fmt"

	docx "github.com/fumiama/go-docx"

	"github.com/jh-117/meeting-agenda-builder-sub000/internal/domain/entities"
	"github.com/jh-117/meeting-agenda-builder-sub000/pkg/i18n"
)

// renderDOCX builds the Word mirror of the agenda: same section
// order, one bold heading per agenda item topic.
func renderDOCX(agenda *entities.AgendaData, labels i18n.LabelSet) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	title := doc.AddParagraph()
	title.AddText(documentTitle(agenda, labels)).Size("36").Bold()

	doc.AddParagraph() // spacer

	for _, line := range infoLines(agenda, labels) {
		p := doc.AddParagraph()
		p.AddText(line.label + ": ").Bold()
		p.AddText(line.value)
	}

	if agenda.MeetingObjective != "" {
		docxSectionTitle(doc, labels.Objective)
		doc.AddParagraph().AddText(agenda.MeetingObjective)
	}

	if len(agenda.AgendaItems) > 0 {
		docxSectionTitle(doc, labels.AgendaSection)
		for i, item := range agenda.AgendaItems {
			heading := doc.AddParagraph()
			heading.AddText(fmt.Sprintf("%d. %s", i+1, item.Topic)).Size("26").Bold()
			for _, line := range itemLines(item, labels) {
				p := doc.AddParagraph()
				p.AddText(line.label + ": ").Bold()
				p.AddText(line.value)
			}
		}
	}

	if len(agenda.ActionItems) > 0 {
		docxSectionTitle(doc, labels.ActionSection)
		for i, item := range agenda.ActionItems {
			heading := doc.AddParagraph()
			heading.AddText(fmt.Sprintf("%d. %s", i+1, item.Task)).Bold()
			for _, line := range actionLines(item, labels) {
				p := doc.AddParagraph()
				p.AddText(line.label + ": ").Bold()
				p.AddText(line.value)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func docxSectionTitle(doc *docx.Docx, title string) {
	doc.AddParagraph() // spacer
	p := doc.AddParagraph()
	p.AddText(title).Size("30").Bold().Color("1F4E79")
}
