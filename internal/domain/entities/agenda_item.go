package entities

import "github.com/google/uuid"

const (
	// DefaultTimeAllocation is assigned when the model or the user
	// leaves the allocation unset.
	DefaultTimeAllocation = 15
	// MinTimeAllocation is the editor floor for a single item.
	MinTimeAllocation = 5
)

// AgendaItem is one scheduled topic on the agenda. The ID is the
// stable reorder key and is never recomputed from position.
type AgendaItem struct {
	ID             string `json:"id"`
	Topic          string `json:"topic"`
	Owner          string `json:"owner,omitempty"`
	TimeAllocation int    `json:"timeAllocation"`
	Description    string `json:"description,omitempty"`
	ExpectedOutput string `json:"expectedOutput,omitempty"`
}

// NewAgendaItem creates an empty item with a fresh ID and default
// time allocation, as produced by the explicit "add item" action.
func NewAgendaItem() AgendaItem {
	return AgendaItem{
		ID:             uuid.NewString(),
		TimeAllocation: DefaultTimeAllocation,
	}
}

// Normalize assigns a missing ID and clamps the time allocation.
func (i AgendaItem) Normalize() AgendaItem {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.TimeAllocation <= 0 {
		i.TimeAllocation = DefaultTimeAllocation
	} else if i.TimeAllocation < MinTimeAllocation {
		i.TimeAllocation = MinTimeAllocation
	}
	return i
}

// CloneAgendaItems returns a defensive copy of the slice. The result
// is never nil.
func CloneAgendaItems(items []AgendaItem) []AgendaItem {
	out := make([]AgendaItem, len(items))
	copy(out, items)
	return out
}
