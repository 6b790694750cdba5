package entities

import (
	"testing"
)

func sampleAgenda() AgendaData {
	return AgendaData{
		MeetingTitle: "Quarterly Planning",
		Duration:     60,
		AgendaItems: []AgendaItem{
			{ID: "a1", Topic: "Review Q3", TimeAllocation: 20},
			{ID: "a2", Topic: "Plan Q4", TimeAllocation: 30},
		},
		ActionItems: []ActionItem{
			{Task: "Send minutes", Owner: "Sam", Deadline: "2026-09-01"},
		},
	}
}

func TestWithField(t *testing.T) {
	agenda := sampleAgenda()

	updated, err := agenda.WithField("meetingTitle", "Renamed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.MeetingTitle != "Renamed" {
		t.Fatalf("expected renamed title, got %q", updated.MeetingTitle)
	}
	if agenda.MeetingTitle != "Quarterly Planning" {
		t.Fatalf("original mutated: %q", agenda.MeetingTitle)
	}

	updated, err = agenda.WithField("duration", float64(90))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Duration != 90 {
		t.Fatalf("expected duration 90, got %d", updated.Duration)
	}

	if _, err := agenda.WithField("nope", "x"); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestWithItemField(t *testing.T) {
	agenda := sampleAgenda()

	updated, err := agenda.WithItemField(ListAgenda, 0, "owner", "Alex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.AgendaItems[0].Owner != "Alex" {
		t.Fatalf("expected owner Alex, got %q", updated.AgendaItems[0].Owner)
	}
	if agenda.AgendaItems[0].Owner != "" {
		t.Fatalf("original mutated: %q", agenda.AgendaItems[0].Owner)
	}

	updated, err = agenda.WithItemField(ListAction, 0, "task", "Share recording")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ActionItems[0].Task != "Share recording" {
		t.Fatalf("expected updated task, got %q", updated.ActionItems[0].Task)
	}

	if _, err := agenda.WithItemField(ListAgenda, 0, "nope", "x"); err == nil {
		t.Fatal("expected error for unknown item field")
	}
	if _, err := agenda.WithItemField("attendee", 0, "owner", "x"); err == nil {
		t.Fatal("expected error for unknown list")
	}
}

func TestWithItemField_ClampsTimeAllocation(t *testing.T) {
	agenda := sampleAgenda()

	updated, err := agenda.WithItemField(ListAgenda, 0, "timeAllocation", float64(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.AgendaItems[0].TimeAllocation != MinTimeAllocation {
		t.Fatalf("expected clamp to %d, got %d", MinTimeAllocation, updated.AgendaItems[0].TimeAllocation)
	}
}

func TestWithItemField_OutOfRangeIsNoOp(t *testing.T) {
	agenda := sampleAgenda()

	updated, err := agenda.WithItemField(ListAgenda, 7, "owner", "Alex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.AgendaItems) != 2 || updated.AgendaItems[0].Owner != "" {
		t.Fatal("out-of-range edit should leave items untouched")
	}
}

func TestWithAgendaItemRemoved(t *testing.T) {
	agenda := sampleAgenda()

	updated := agenda.WithAgendaItemRemoved(0)
	if len(updated.AgendaItems) != 1 || updated.AgendaItems[0].ID != "a2" {
		t.Fatalf("expected only a2 left, got %v", idsOf(updated.AgendaItems))
	}

	updated = agenda.WithAgendaItemRemoved(9)
	if len(updated.AgendaItems) != 2 {
		t.Fatal("out-of-range removal should be a no-op")
	}
}

func TestWithAgendaItemReplaced_PreservesID(t *testing.T) {
	agenda := sampleAgenda()

	replacement := AgendaItem{ID: "model-made-this-up", Topic: "Fresh take", TimeAllocation: 10}
	updated, found := agenda.WithAgendaItemReplaced("a2", replacement)
	if !found {
		t.Fatal("expected a2 to be found")
	}
	if updated.AgendaItems[1].ID != "a2" {
		t.Fatalf("expected preserved id a2, got %q", updated.AgendaItems[1].ID)
	}
	if updated.AgendaItems[1].Topic != "Fresh take" {
		t.Fatalf("expected replaced topic, got %q", updated.AgendaItems[1].Topic)
	}

	if _, found := agenda.WithAgendaItemReplaced("gone", replacement); found {
		t.Fatal("expected missing id to report not found")
	}
}

func TestWithLists_ReplacesWholesaleAndNormalizes(t *testing.T) {
	agenda := sampleAgenda()

	updated := agenda.WithLists(GeneratedLists{
		AgendaItems: []AgendaItem{{Topic: "New only item", TimeAllocation: 0}},
	})
	if len(updated.AgendaItems) != 1 {
		t.Fatalf("expected 1 item, got %d", len(updated.AgendaItems))
	}
	if updated.AgendaItems[0].ID == "" {
		t.Fatal("expected normalized item to get an id")
	}
	if updated.AgendaItems[0].TimeAllocation != DefaultTimeAllocation {
		t.Fatalf("expected default allocation, got %d", updated.AgendaItems[0].TimeAllocation)
	}
	if updated.ActionItems == nil {
		t.Fatal("action items must never be nil")
	}
	if updated.MeetingTitle != agenda.MeetingTitle {
		t.Fatal("fields outside the lists must survive")
	}
}

func TestFormSubmissionMetadata(t *testing.T) {
	sub := FormSubmission{MeetingTitle: "Sync", Duration: 30, Facilitator: "Kim"}
	meta := sub.Metadata()

	if meta.MeetingTitle != "Sync" || meta.Duration != 30 || meta.Facilitator != "Kim" {
		t.Fatalf("metadata fields not carried over: %+v", meta)
	}
	if meta.AgendaItems == nil || meta.ActionItems == nil {
		t.Fatal("metadata lists must be empty, not nil")
	}
}
