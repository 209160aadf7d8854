package listing

import "strings"

// SortBy names the key items are ordered by.
type SortBy int

const (
	SortByPosition SortBy = iota
	SortByCreated
	SortByLastModified
	SortByName
	SortByTotal
)

var sortByNames = []string{"POSITION", "CREATED", "LAST_MODIFIED", "NAME", "TOTAL"}

func (s SortBy) String() string {
	if s < 0 || int(s) >= len(sortByNames) {
		return sortByNames[SortByPosition]
	}
	return sortByNames[s]
}

// ParseSortBy parses a stored enum name. Unknown or empty input yields
// SortByPosition.
func ParseSortBy(raw string) SortBy {
	if i := indexOf(sortByNames, raw); i >= 0 {
		return SortBy(i)
	}
	return SortByPosition
}

// Sort is a sort key plus direction.
type Sort struct {
	By        SortBy
	Ascending bool
}

// DefaultSort orders by manual position, ascending.
var DefaultSort = Sort{By: SortByPosition, Ascending: true}

// DisplayCompleted is the policy for completed items.
type DisplayCompleted int

const (
	DisplayCompletedLast DisplayCompleted = iota
	DisplayCompletedFirst
	DisplayCompletedHide
	DisplayCompletedNoSplit
)

var displayCompletedNames = []string{"LAST", "FIRST", "HIDE", "NO_SPLIT"}

func (d DisplayCompleted) String() string {
	if d < 0 || int(d) >= len(displayCompletedNames) {
		return displayCompletedNames[DisplayCompletedLast]
	}
	return displayCompletedNames[d]
}

// ParseDisplayCompleted parses a stored enum name. Unknown or empty input
// yields DisplayCompletedLast.
func ParseDisplayCompleted(raw string) DisplayCompleted {
	if i := indexOf(displayCompletedNames, raw); i >= 0 {
		return DisplayCompleted(i)
	}
	return DisplayCompletedLast
}

func indexOf(names []string, raw string) int {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	for i, name := range names {
		if name == raw {
			return i
		}
	}
	return -1
}
