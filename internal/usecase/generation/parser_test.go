package generation

import (
	"testing"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n  ", `{"a":1}`},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractJSON(tc.input); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestParseLists(t *testing.T) {
	p := NewParser()

	lists, err := p.ParseLists("```json\n" + `{
		"agendaItems": [
			{"topic": "Welcome", "timeAllocation": 5},
			{"topic": "Roadmap", "owner": "Lee"}
		],
		"actionItems": [
			{"task": "Book room", "owner": "Lee"},
			{"task": "  "}
		]
	}` + "\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(lists.AgendaItems) != 2 {
		t.Fatalf("expected 2 agenda items, got %d", len(lists.AgendaItems))
	}
	for _, item := range lists.AgendaItems {
		if item.ID == "" {
			t.Fatal("expected parsed items to be normalized with ids")
		}
	}
	if lists.AgendaItems[1].TimeAllocation == 0 {
		t.Fatal("expected default time allocation")
	}
	if len(lists.ActionItems) != 1 {
		t.Fatalf("expected blank tasks to be dropped, got %d items", len(lists.ActionItems))
	}
	if lists.ActionItems[0].Deadline == "" {
		t.Fatal("expected missing deadline to default")
	}
}

func TestParseLists_Errors(t *testing.T) {
	p := NewParser()

	if _, err := p.ParseLists(""); err == nil {
		t.Fatal("expected error for empty response")
	}
	if _, err := p.ParseLists("not json at all"); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if _, err := p.ParseLists(`{"actionItems": []}`); err == nil {
		t.Fatal("expected error when agendaItems is missing")
	}
	if _, err := p.ParseLists(`{"agendaItems": []}`); err == nil {
		t.Fatal("expected error when agendaItems is empty")
	}
	if _, err := p.ParseLists(`{"agendaItems": [{"owner": "Lee"}]}`); err == nil {
		t.Fatal("expected error for item without topic")
	}
}

func TestParseItem(t *testing.T) {
	p := NewParser()

	item, err := p.ParseItem("```json\n" + `{"topic": "Budget review", "timeAllocation": 10}` + "\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Topic != "Budget review" {
		t.Fatalf("unexpected topic %q", item.Topic)
	}

	if _, err := p.ParseItem(`{"owner": "Lee"}`); err == nil {
		t.Fatal("expected error for item without topic")
	}
	if _, err := p.ParseItem(""); err == nil {
		t.Fatal("expected error for empty response")
	}
}
