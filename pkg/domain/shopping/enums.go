package shopping

import "strings"

// Location is where a list lives.
type Location int

const (
	LocationPurchases Location = iota
	LocationArchive
	LocationTrash
)

var locationNames = []string{"PURCHASES", "ARCHIVE", "TRASH"}

func (l Location) String() string { return nameOf(locationNames, int(l)) }

// ParseLocation parses a stored name, defaulting to LocationPurchases.
func ParseLocation(raw string) Location {
	return Location(parse(locationNames, raw, int(LocationPurchases)))
}

// LocationFrom derives the location from the stored flags; deleted wins
// over archived.
func LocationFrom(archived, deleted bool) Location {
	switch {
	case deleted:
		return LocationTrash
	case archived:
		return LocationArchive
	default:
		return LocationPurchases
	}
}

// Archived and Deleted give the stored flags for a location.
func (l Location) Archived() bool { return l == LocationArchive }
func (l Location) Deleted() bool  { return l == LocationTrash }

// DisplayTotal selects which partition a total is shown for.
type DisplayTotal int

const (
	DisplayTotalAll DisplayTotal = iota
	DisplayTotalCompleted
	DisplayTotalActive
)

var displayTotalNames = []string{"ALL", "COMPLETED", "ACTIVE"}

func (d DisplayTotal) String() string { return nameOf(displayTotalNames, int(d)) }

// ParseDisplayTotal parses a stored name, defaulting to DisplayTotalAll.
func ParseDisplayTotal(raw string) DisplayTotal {
	return DisplayTotal(parse(displayTotalNames, raw, int(DisplayTotalAll)))
}

// FontSize is the user-selected text size.
type FontSize int

const (
	FontSizeSmall FontSize = iota
	FontSizeMedium
	FontSizeLarge
	FontSizeHuge
)

var fontSizeNames = []string{"SMALL", "MEDIUM", "LARGE", "HUGE"}

func (f FontSize) String() string { return nameOf(fontSizeNames, int(f)) }

// ParseFontSize parses a stored name, defaulting to FontSizeMedium.
func ParseFontSize(raw string) FontSize {
	return FontSize(parse(fontSizeNames, raw, int(FontSizeMedium)))
}

func nameOf(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return names[0]
	}
	return names[i]
}

func parse(names []string, raw string, fallback int) int {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	for i, name := range names {
		if name == raw {
			return i
		}
	}
	return fallback
}
