// Package legacy converts the rows and preferences of historical on-device
// schemas into the canonical shopping model.
//
// Missing or garbled values never fail a conversion; every field has a
// default. Only an absent table or column, which means the schema is not
// the one a coercer expects, is an error.
package legacy

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSchemaMismatch reports a missing legacy table or column.
var ErrSchemaMismatch = errors.New("legacy schema mismatch")

// ErrSourceUnavailable reports a legacy source that cannot be evaluated,
// such as one without a configured path. It is not a reason to mark the
// generation migrated.
var ErrSourceUnavailable = errors.New("legacy source unavailable")

// ErrUnknownGeneration is returned for a generation without a coercer.
var ErrUnknownGeneration = errors.New("unknown legacy generation")

// Generation identifies one historical schema.
type Generation int

const (
	// Gen1 is the hand-written SQLite schema with a shared preferences file.
	Gen1 Generation = 1
	// Gen2 is the first Room schema.
	Gen2 Generation = 2
)

// Generations lists every supported generation, oldest first.
func Generations() []Generation {
	return []Generation{Gen1, Gen2}
}

func (g Generation) String() string {
	return "gen" + strconv.Itoa(int(g))
}

// ParseGeneration accepts "gen1", "1" and similar.
func ParseGeneration(raw string) (Generation, error) {
	s := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(raw)), "gen")
	n, err := strconv.Atoi(s)
	if err == nil {
		for _, g := range Generations() {
			if int(g) == n {
				return g, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGeneration, raw)
}

// Snapshot is everything read from one legacy generation. Tables are named
// by their canonical role; Table.Name keeps the legacy name.
type Snapshot struct {
	Generation    Generation
	Shoppings     Table
	Products      Table
	Autocompletes Table
	Preferences   Preferences
}

// Source reads one legacy generation.
type Source interface {
	Generation() Generation
	// Pending reports whether there is legacy data to import. It returns
	// ErrSourceUnavailable when the source cannot be evaluated.
	Pending(ctx context.Context) (bool, error)
	Read(ctx context.Context) (Snapshot, error)
}

func schemaMismatch(table, column string) error {
	if column == "" {
		return fmt.Errorf("%w: table %q not found", ErrSchemaMismatch, table)
	}
	return fmt.Errorf("%w: column %q not found in table %q", ErrSchemaMismatch, column, table)
}
