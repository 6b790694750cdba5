package entities

import (
	"fmt"
	"strconv"
)

// List names accepted by WithItemField.
const (
	ListAgenda = "agenda"
	ListAction = "action"
)

// AgendaData is the aggregate the rest of the system operates on.
// agendaItems and actionItems are always present, possibly empty,
// never nil once an AgendaData exists.
type AgendaData struct {
	MeetingTitle     string       `json:"meetingTitle"`
	MeetingDate      string       `json:"meetingDate,omitempty"`
	MeetingTime      string       `json:"meetingTime,omitempty"`
	Duration         int          `json:"duration"`
	Location         string       `json:"location,omitempty"`
	Facilitator      string       `json:"facilitator,omitempty"`
	NoteTaker        string       `json:"noteTaker,omitempty"`
	Attendees        string       `json:"attendees,omitempty"`
	MeetingObjective string       `json:"meetingObjective,omitempty"`
	AgendaItems      []AgendaItem `json:"agendaItems"`
	ActionItems      []ActionItem `json:"actionItems"`
}

// FormSubmission is the original input, retained for the lifetime of
// the edit session so regeneration can resend the same grounding
// context without re-upload.
type FormSubmission struct {
	MeetingTitle      string  `json:"meetingTitle"`
	MeetingDate       string  `json:"meetingDate,omitempty"`
	MeetingTime       string  `json:"meetingTime,omitempty"`
	Duration          int     `json:"duration"`
	Location          string  `json:"location,omitempty"`
	Facilitator       string  `json:"facilitator,omitempty"`
	NoteTaker         string  `json:"noteTaker,omitempty"`
	Attendees         string  `json:"attendees,omitempty"`
	MeetingObjective  string  `json:"meetingObjective,omitempty"`
	NeedAISupplement  bool    `json:"needAISupplement,omitempty"`
	AdditionalInfo    string  `json:"additionalInfo,omitempty"`
	AttachmentContent *string `json:"attachmentContent,omitempty"`
	AttachmentType    *string `json:"attachmentType,omitempty"`
}

// ItemContext is the minimal meeting context sent with a single-item
// regeneration request.
type ItemContext struct {
	MeetingTitle     string `json:"meetingTitle"`
	MeetingObjective string `json:"meetingObjective,omitempty"`
}

// GeneratedLists is the payload a whole-list regeneration returns:
// only the two arrays, fields outside them are the caller's to merge.
type GeneratedLists struct {
	AgendaItems []AgendaItem `json:"agendaItems"`
	ActionItems []ActionItem `json:"actionItems"`
}

// Normalize guarantees the aggregate invariants: non-nil arrays,
// item IDs assigned, allocations clamped, deadlines defaulted.
func (a AgendaData) Normalize() AgendaData {
	items := make([]AgendaItem, 0, len(a.AgendaItems))
	for _, it := range a.AgendaItems {
		items = append(items, it.Normalize())
	}
	actions := make([]ActionItem, 0, len(a.ActionItems))
	for _, ac := range a.ActionItems {
		actions = append(actions, ac.Normalize())
	}
	a.AgendaItems = items
	a.ActionItems = actions
	return a
}

// WithField returns a copy with one top-level field replaced. The
// arrays are untouched. Field names follow the JSON wire names.
func (a AgendaData) WithField(field string, value any) (AgendaData, error) {
	out := a.clone()
	switch field {
	case "meetingTitle":
		out.MeetingTitle = asString(value)
	case "meetingDate":
		out.MeetingDate = asString(value)
	case "meetingTime":
		out.MeetingTime = asString(value)
	case "duration":
		d, err := asInt(value)
		if err != nil {
			return a, fmt.Errorf("duration: %w", err)
		}
		out.Duration = d
	case "location":
		out.Location = asString(value)
	case "facilitator":
		out.Facilitator = asString(value)
	case "noteTaker":
		out.NoteTaker = asString(value)
	case "attendees":
		out.Attendees = asString(value)
	case "meetingObjective":
		out.MeetingObjective = asString(value)
	default:
		return a, fmt.Errorf("unknown agenda field %q", field)
	}
	return out, nil
}

// WithItemField returns a copy with one field of one list element
// replaced. An out-of-range index is a no-op: a concurrent delete may
// have shrunk the list since the edit was issued.
func (a AgendaData) WithItemField(list string, index int, field string, value any) (AgendaData, error) {
	switch list {
	case ListAgenda:
		if index < 0 || index >= len(a.AgendaItems) {
			return a.clone(), nil
		}
		out := a.clone()
		item := out.AgendaItems[index]
		switch field {
		case "topic":
			item.Topic = asString(value)
		case "owner":
			item.Owner = asString(value)
		case "timeAllocation":
			t, err := asInt(value)
			if err != nil {
				return a, fmt.Errorf("timeAllocation: %w", err)
			}
			if t < MinTimeAllocation {
				t = MinTimeAllocation
			}
			item.TimeAllocation = t
		case "description":
			item.Description = asString(value)
		case "expectedOutput":
			item.ExpectedOutput = asString(value)
		default:
			return a, fmt.Errorf("unknown agenda item field %q", field)
		}
		out.AgendaItems[index] = item
		return out, nil
	case ListAction:
		if index < 0 || index >= len(a.ActionItems) {
			return a.clone(), nil
		}
		out := a.clone()
		item := out.ActionItems[index]
		switch field {
		case "task":
			item.Task = asString(value)
		case "owner":
			item.Owner = asString(value)
		case "deadline":
			item.Deadline = asString(value)
		default:
			return a, fmt.Errorf("unknown action item field %q", field)
		}
		out.ActionItems[index] = item
		return out, nil
	default:
		return a, fmt.Errorf("unknown list %q", list)
	}
}

// WithAgendaItemAppended returns a copy with the item appended.
func (a AgendaData) WithAgendaItemAppended(item AgendaItem) AgendaData {
	out := a.clone()
	out.AgendaItems = append(out.AgendaItems, item)
	return out
}

// WithAgendaItemRemoved returns a copy with the item at index removed.
// An out-of-range index is a no-op.
func (a AgendaData) WithAgendaItemRemoved(index int) AgendaData {
	out := a.clone()
	if index < 0 || index >= len(out.AgendaItems) {
		return out
	}
	out.AgendaItems = append(out.AgendaItems[:index], out.AgendaItems[index+1:]...)
	return out
}

// WithAgendaItemReplaced returns a copy with the item carrying id
// replaced, preserving the original id regardless of what the
// replacement carries. Reports whether the id was found.
func (a AgendaData) WithAgendaItemReplaced(id string, replacement AgendaItem) (AgendaData, bool) {
	out := a.clone()
	for i, it := range out.AgendaItems {
		if it.ID == id {
			replacement.ID = id
			out.AgendaItems[i] = replacement.Normalize()
			return out, true
		}
	}
	return out, false
}

// WithLists returns a copy with both arrays replaced wholesale, the
// merge granularity of a whole-list regeneration.
func (a AgendaData) WithLists(lists GeneratedLists) AgendaData {
	out := a.clone()
	out.AgendaItems = CloneAgendaItems(lists.AgendaItems)
	out.ActionItems = CloneActionItems(lists.ActionItems)
	return out.Normalize()
}

// WithReorder returns a copy with the item identified by activeID
// moved to the position of the item identified by overID. See MoveItem.
func (a AgendaData) WithReorder(activeID, overID string) AgendaData {
	out := a.clone()
	out.AgendaItems = MoveItem(out.AgendaItems, activeID, overID)
	return out
}

// FindAgendaItem returns the item with the given id, if present.
func (a AgendaData) FindAgendaItem(id string) (AgendaItem, bool) {
	for _, it := range a.AgendaItems {
		if it.ID == id {
			return it, true
		}
	}
	return AgendaItem{}, false
}

// Context returns the minimal regeneration context for a single item.
func (a AgendaData) Context() ItemContext {
	return ItemContext{
		MeetingTitle:     a.MeetingTitle,
		MeetingObjective: a.MeetingObjective,
	}
}

func (a AgendaData) clone() AgendaData {
	a.AgendaItems = CloneAgendaItems(a.AgendaItems)
	a.ActionItems = CloneActionItems(a.ActionItems)
	return a
}

// Metadata returns an AgendaData carrying the submission's meeting
// metadata and empty lists.
func (f FormSubmission) Metadata() AgendaData {
	return AgendaData{
		MeetingTitle:     f.MeetingTitle,
		MeetingDate:      f.MeetingDate,
		MeetingTime:      f.MeetingTime,
		Duration:         f.Duration,
		Location:         f.Location,
		Facilitator:      f.Facilitator,
		NoteTaker:        f.NoteTaker,
		Attendees:        f.Attendees,
		MeetingObjective: f.MeetingObjective,
		AgendaItems:      []AgendaItem{},
		ActionItems:      []ActionItem{},
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}

func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}
