package export

import (
	"strings"
	"testing"

	"github.com/jh-117/meeting-agenda-builder-sub000/internal/domain/entities"
	"github.com/jh-117/meeting-agenda-builder-sub000/pkg/i18n"
)

func exportAgenda() *entities.AgendaData {
	return &entities.AgendaData{
		MeetingTitle: "Quarterly Planning",
		MeetingDate:  "2026-09-01",
		Duration:     60,
		Facilitator:  "Kim",
		AgendaItems: []entities.AgendaItem{
			{ID: "a1", Topic: "Review Q3", Owner: "Lee", TimeAllocation: 20, Description: "Walk the numbers", ExpectedOutput: "Shared picture"},
			{ID: "a2", Topic: "Plan Q4", TimeAllocation: 30},
		},
		ActionItems: []entities.ActionItem{
			{Task: "Send minutes", Owner: "Sam", Deadline: "2026-09-02"},
		},
	}
}

func TestRenderTXT(t *testing.T) {
	out := renderTXT(exportAgenda(), i18n.LabelsFor("en"))

	for _, want := range []string{
		"Quarterly Planning",
		"Date: 2026-09-01",
		"Duration: 60 minutes",
		"Facilitator: Kim",
		"===== Agenda Items =====",
		"1. Review Q3",
		"  Owner: Lee",
		"  Description: Walk the numbers",
		"  Expected Output: Shared picture",
		"2. Plan Q4",
		"===== Action Items =====",
		"1. Send minutes",
		"  Deadline: 2026-09-02",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestRenderTXT_SkipsEmptyFields(t *testing.T) {
	agenda := exportAgenda()
	agenda.NoteTaker = ""
	agenda.Location = ""

	out := renderTXT(agenda, i18n.LabelsFor("en"))

	if strings.Contains(out, "Note Taker:") {
		t.Fatal("empty note taker must be skipped, not printed blank")
	}
	if strings.Contains(out, "Location:") {
		t.Fatal("empty location must be skipped")
	}
	// Plan Q4 has no owner: no owner row may appear between it and the
	// next section header.
	idx := strings.Index(out, "2. Plan Q4")
	if idx == -1 {
		t.Fatalf("missing second item:\n%s", out)
	}
	rest := out[idx:]
	if end := strings.Index(rest, "====="); end != -1 {
		rest = rest[:end]
	}
	if strings.Contains(rest, "Owner:") {
		t.Fatal("unexpected owner row for item without owner")
	}
}

func TestRenderTXT_LocalizedLabels(t *testing.T) {
	out := renderTXT(exportAgenda(), i18n.LabelsFor("zh"))
	labels := i18n.LabelsFor("zh")

	if !strings.Contains(out, labels.AgendaSection) {
		t.Fatalf("expected localized section header %q:\n%s", labels.AgendaSection, out)
	}
	if !strings.Contains(out, "Quarterly Planning") {
		t.Fatal("user content must pass through verbatim regardless of label language")
	}
}

func TestRenderTXT_DefaultTitleFallback(t *testing.T) {
	agenda := exportAgenda()
	agenda.MeetingTitle = ""

	out := renderTXT(agenda, i18n.LabelsFor("en"))
	if !strings.Contains(out, "Meeting Agenda") {
		t.Fatalf("expected default title:\n%s", out)
	}
}
