// Package orderedlist implements the client-side half of the milestone
// reorder protocol: an ordered list that applies drag-and-drop or up/down
// moves optimistically and reverts to the last confirmed ordering when the
// server refuses the full-ordering submission.
package orderedlist

// Keyed is anything addressable by a stable string id.
type Keyed interface {
	Key() string
}

// Move returns a copy of items with the element keyed dragID re-inserted at
// the position of dropID. Unknown ids or a no-op drop return the input
// unchanged.
func Move[T Keyed](items []T, dragID, dropID string) []T {
	from := indexOf(items, dragID)
	to := indexOf(items, dropID)
	if from < 0 || to < 0 || from == to {
		return items
	}
	next := make([]T, 0, len(items))
	next = append(next, items...)
	moved := next[from]
	next = append(next[:from], next[from+1:]...)
	next = append(next[:to], append([]T{moved}, next[to:]...)...)
	return next
}

// MoveBy returns a copy of items with the element at index shifted by delta
// positions. Out-of-range targets return the input unchanged.
func MoveBy[T Keyed](items []T, index, delta int) []T {
	to := index + delta
	if index < 0 || index >= len(items) || to < 0 || to >= len(items) {
		return items
	}
	next := make([]T, 0, len(items))
	next = append(next, items...)
	moved := next[index]
	next = append(next[:index], next[index+1:]...)
	next = append(next[:to], append([]T{moved}, next[to:]...)...)
	return next
}

// IDs returns the keys of items in order. This is the complete new ordering
// the reorder endpoint expects, never a delta.
func IDs[T Keyed](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Key()
	}
	return out
}

func indexOf[T Keyed](items []T, id string) int {
	for i, it := range items {
		if it.Key() == id {
			return i
		}
	}
	return -1
}

// List tracks an optimistic ordering against the last server-confirmed one.
type List[T Keyed] struct {
	confirmed []T
	items     []T
}

// New builds a List from the server ordering (already sorted by stored
// order, creation time breaking ties).
func New[T Keyed](items []T) *List[T] {
	l := &List[T]{}
	l.confirmed = append(l.confirmed, items...)
	l.items = append(l.items, items...)
	return l
}

// Items returns the current (possibly optimistic) ordering.
func (l *List[T]) Items() []T { return l.items }

// Apply renders a new ordering before any network confirmation.
func (l *List[T]) Apply(next []T) { l.items = next }

// Commit marks the current ordering as server-confirmed.
func (l *List[T]) Commit() {
	l.confirmed = append(l.confirmed[:0], l.items...)
}

// Revert discards optimistic state after a rejected or failed submission,
// restoring the last known-good server ordering. The slice passed to Apply
// stays untouched; Revert swaps in a fresh copy of the confirmed ordering.
func (l *List[T]) Revert() {
	l.items = append([]T(nil), l.confirmed...)
}
