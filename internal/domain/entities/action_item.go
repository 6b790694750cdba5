package entities

import "time"

// DeadlineLayout is the ISO date layout used for action item deadlines.
const DeadlineLayout = "2006-01-02"

// ActionItem is a follow-up task distinct from agenda items. The list
// is not reorderable, so items carry no ID; identity for edits is the
// positional index.
type ActionItem struct {
	Task     string `json:"task"`
	Owner    string `json:"owner,omitempty"`
	Deadline string `json:"deadline"`
}

// Normalize fills a missing deadline with today's date.
func (a ActionItem) Normalize() ActionItem {
	if a.Deadline == "" {
		a.Deadline = time.Now().Format(DeadlineLayout)
	}
	return a
}

// CloneActionItems returns a defensive copy of the slice. The result
// is never nil.
func CloneActionItems(items []ActionItem) []ActionItem {
	out := make([]ActionItem, len(items))
	copy(out, items)
	return out
}
