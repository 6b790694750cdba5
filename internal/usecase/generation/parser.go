package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jh-117/meeting-agenda-builder-sub000/internal/domain/entities"
)

// Parser handles parsing and validation of model responses
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// rawLists mirrors the JSON shape the model is asked to return for
// generate / regenerate actions. Pointer slices distinguish a missing
// key from an empty list.
type rawLists struct {
	AgendaItems *[]entities.AgendaItem `json:"agendaItems"`
	ActionItems *[]entities.ActionItem `json:"actionItems"`
}

// ParseLists parses a generate/regenerate response into the two item
// lists. The model may wrap the JSON in markdown code fences; they are
// stripped before parsing (the endpoint strips its own copy too —
// defense in depth).
func (p *Parser) ParseLists(content string) (*entities.GeneratedLists, error) {
	content = ExtractJSON(content)
	if content == "" {
		return nil, entities.ErrEmptyResponse
	}

	var raw rawLists
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if raw.AgendaItems == nil || len(*raw.AgendaItems) == 0 {
		return nil, fmt.Errorf("%w: missing agendaItems", entities.ErrMalformedAgenda)
	}

	lists := &entities.GeneratedLists{
		AgendaItems: make([]entities.AgendaItem, 0, len(*raw.AgendaItems)),
		ActionItems: []entities.ActionItem{},
	}
	for _, item := range *raw.AgendaItems {
		if strings.TrimSpace(item.Topic) == "" {
			return nil, fmt.Errorf("%w: agenda item without topic", entities.ErrMalformedAgenda)
		}
		lists.AgendaItems = append(lists.AgendaItems, item.Normalize())
	}
	if raw.ActionItems != nil {
		for _, item := range *raw.ActionItems {
			if strings.TrimSpace(item.Task) == "" {
				continue
			}
			lists.ActionItems = append(lists.ActionItems, item.Normalize())
		}
	}

	return lists, nil
}

// ParseItem parses a regenerate_item response into a single agenda
// item. The returned item carries whatever id the model produced (or
// none): preserving the original id is the caller's responsibility.
func (p *Parser) ParseItem(content string) (*entities.AgendaItem, error) {
	content = ExtractJSON(content)
	if content == "" {
		return nil, entities.ErrEmptyResponse
	}

	var item entities.AgendaItem
	if err := json.Unmarshal([]byte(content), &item); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if strings.TrimSpace(item.Topic) == "" {
		return nil, fmt.Errorf("%w: missing topic", entities.ErrMalformedAgenda)
	}

	return &item, nil
}

// ExtractJSON extracts JSON content from markdown code blocks or plain text
func ExtractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
