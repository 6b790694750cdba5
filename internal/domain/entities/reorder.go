package entities

// MoveItem moves the item identified by activeID to the position of
// the item identified by overID, shifting the rest. The move is a
// stable permutation: the relative order of all other items is
// unchanged. Unknown ids or activeID == overID return the input
// unchanged. The input slice is never mutated.
func MoveItem(items []AgendaItem, activeID, overID string) []AgendaItem {
	out := CloneAgendaItems(items)
	if activeID == overID {
		return out
	}

	oldIdx, newIdx := -1, -1
	for i, it := range out {
		switch it.ID {
		case activeID:
			oldIdx = i
		case overID:
			newIdx = i
		}
	}
	if oldIdx == -1 || newIdx == -1 {
		return out
	}

	moved := out[oldIdx]
	out = append(out[:oldIdx], out[oldIdx+1:]...)
	out = append(out[:newIdx], append([]AgendaItem{moved}, out[newIdx:]...)...)
	return out
}
