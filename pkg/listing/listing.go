// Package listing orders shopping lists and products for presentation:
// stable multi-key sorting, pinned partitioning, completed-item placement
// and single-step manual reordering.
package listing

import (
	"cmp"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnsupportedOperation is returned for a manual reorder of fewer than two items.
	ErrUnsupportedOperation = errors.New("operation requires at least two items")
	// ErrItemNotFound is returned when a reorder names an unknown uid.
	ErrItemNotFound = errors.New("item not found")
)

// Entry is the sortable projection of a list or product.
type Entry struct {
	UID          string
	Position     int
	Created      time.Time
	LastModified time.Time
	Name         string
	Total        decimal.Decimal
	Pinned       bool
	Completed    bool
}

// Item is anything that can be projected to an Entry.
type Item interface {
	Entry() Entry
}

// SortItems returns a stably sorted copy of items. Items with equal keys keep
// their relative input order in both directions.
func SortItems[T Item](items []T, s Sort) []T {
	sorted := slices.Clone(items)
	if len(sorted) < 2 {
		return sorted
	}
	compare := comparator(s.By)
	slices.SortStableFunc(sorted, func(a, b T) int {
		c := compare(a.Entry(), b.Entry())
		if !s.Ascending {
			return -c
		}
		return c
	})
	return sorted
}

func comparator(by SortBy) func(a, b Entry) int {
	switch by {
	case SortByCreated:
		return func(a, b Entry) int { return a.Created.Compare(b.Created) }
	case SortByLastModified:
		return func(a, b Entry) int { return a.LastModified.Compare(b.LastModified) }
	case SortByName:
		return func(a, b Entry) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case SortByTotal:
		return func(a, b Entry) int { return a.Total.Cmp(b.Total) }
	default:
		return func(a, b Entry) int { return cmp.Compare(a.Position, b.Position) }
	}
}

// PartitionPinned splits items into (pinnedActive, other). An item is
// pinnedActive when it is pinned and not completed; under NoSplit every
// pinned item qualifies. Input order is preserved within each half.
func PartitionPinned[T Item](items []T, mode DisplayCompleted) (pinned, other []T) {
	pinned = make([]T, 0)
	other = make([]T, 0, len(items))
	for _, item := range items {
		e := item.Entry()
		if e.Pinned && (mode == DisplayCompletedNoSplit || !e.Completed) {
			pinned = append(pinned, item)
			continue
		}
		other = append(other, item)
	}
	return pinned, other
}

// SplitByCompletion places completed items first or last, drops them, or
// leaves the order untouched.
func SplitByCompletion[T Item](items []T, mode DisplayCompleted) []T {
	if mode == DisplayCompletedNoSplit {
		return slices.Clone(items)
	}
	active := make([]T, 0, len(items))
	completed := make([]T, 0)
	for _, item := range items {
		if item.Entry().Completed {
			completed = append(completed, item)
		} else {
			active = append(active, item)
		}
	}
	switch mode {
	case DisplayCompletedFirst:
		return append(completed, active...)
	case DisplayCompletedHide:
		return active
	default:
		return append(active, completed...)
	}
}

// Arranged is the presentation order split into its two sections.
type Arranged[T Item] struct {
	Pinned []T
	Other  []T
}

// All returns Pinned followed by Other.
func (a Arranged[T]) All() []T {
	return append(slices.Clone(a.Pinned), a.Other...)
}

// Arrange returns sort(pinnedActive) ++ splitByCompletion(sort(other)).
func Arrange[T Item](items []T, s Sort, mode DisplayCompleted) Arranged[T] {
	pinned, other := PartitionPinned(items, mode)
	return Arranged[T]{
		Pinned: SortItems(pinned, s),
		Other:  SplitByCompletion(SortItems(other, s), mode),
	}
}

// MoveUp swaps the item with uid and its predecessor.
func MoveUp[T Item](items []T, uid string) ([]T, error) {
	return move(items, uid, -1)
}

// MoveDown swaps the item with uid and its successor.
func MoveDown[T Item](items []T, uid string) ([]T, error) {
	return move(items, uid, 1)
}

func move[T Item](items []T, uid string, step int) ([]T, error) {
	if len(items) < 2 {
		return nil, ErrUnsupportedOperation
	}
	i := slices.IndexFunc(items, func(item T) bool { return item.Entry().UID == uid })
	if i < 0 {
		return nil, ErrItemNotFound
	}
	moved := slices.Clone(items)
	j := i + step
	if j < 0 || j >= len(moved) {
		return moved, nil
	}
	moved[i], moved[j] = moved[j], moved[i]
	return moved, nil
}

// Renumber maps each uid to its dense 0..N-1 index in items.
func Renumber[T Item](items []T) map[string]int {
	positions := make(map[string]int, len(items))
	for i, item := range items {
		positions[item.Entry().UID] = i
	}
	return positions
}
