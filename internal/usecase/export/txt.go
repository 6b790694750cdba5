package export

import (
	"fmt"
	"strings"

	"github.com/jh-117/meeting-agenda-builder-sub000/internal/domain/entities"
	"github.com/jh-117/meeting-agenda-builder-sub000/pkg/i18n"
)

const txtDelimiter = "====================================="

// renderTXT builds the plain-text mirror of the agenda: same section
// order as the other formats, simple delimiters, two-space indent for
// item sub-fields. Empty fields are skipped, never printed blank.
func renderTXT(agenda *entities.AgendaData, labels i18n.LabelSet) string {
	var b strings.Builder

	b.WriteString(txtDelimiter + "\n")
	b.WriteString(labels.DefaultTitle + "\n")
	if strings.TrimSpace(agenda.MeetingTitle) != "" {
		b.WriteString(agenda.MeetingTitle + "\n")
	}
	b.WriteString(txtDelimiter + "\n\n")

	for _, line := range infoLines(agenda, labels) {
		fmt.Fprintf(&b, "%s: %s\n", line.label, line.value)
	}

	if strings.TrimSpace(agenda.MeetingObjective) != "" {
		fmt.Fprintf(&b, "\n%s\n%s\n", sectionHeader(labels.Objective), agenda.MeetingObjective)
	}

	if len(agenda.AgendaItems) > 0 {
		fmt.Fprintf(&b, "\n%s\n", sectionHeader(labels.AgendaSection))
		for i, item := range agenda.AgendaItems {
			fmt.Fprintf(&b, "%d. %s\n", i+1, item.Topic)
			for _, line := range itemLines(item, labels) {
				fmt.Fprintf(&b, "  %s: %s\n", line.label, line.value)
			}
		}
	}

	if len(agenda.ActionItems) > 0 {
		fmt.Fprintf(&b, "\n%s\n", sectionHeader(labels.ActionSection))
		for i, item := range agenda.ActionItems {
			fmt.Fprintf(&b, "%d. %s\n", i+1, item.Task)
			for _, line := range actionLines(item, labels) {
				fmt.Fprintf(&b, "  %s: %s\n", line.label, line.value)
			}
		}
	}

	return b.String()
}

func sectionHeader(title string) string {
	return fmt.Sprintf("===== %s =====", title)
}
