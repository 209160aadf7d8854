// Package legacy reads legacy generations from their on-device sqlite files.
// The files are opened read only and are never modified.
package legacy

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/amirasaad/shoplist/pkg/legacy"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tableNames struct {
	shoppings     string
	products      string
	autocompletes string
}

// SQLiteSource reads one legacy generation from a sqlite file and, for
// generation 1, its shared preferences XML file.
type SQLiteSource struct {
	gen       legacy.Generation
	dbPath    string
	prefsPath string
	tables    tableNames
	logger    *slog.Logger
}

// NewGen1Source reads the pre-Room tables list, goods and complete. prefsPath
// may be empty when the preferences file is unknown.
func NewGen1Source(dbPath, prefsPath string, logger *slog.Logger) *SQLiteSource {
	return &SQLiteSource{
		gen:       legacy.Gen1,
		dbPath:    dbPath,
		prefsPath: prefsPath,
		tables: tableNames{
			shoppings:     legacy.Gen1TableList,
			products:      legacy.Gen1TableGoods,
			autocompletes: legacy.Gen1TableComplete,
		},
		logger: logger.With("source", legacy.Gen1.String()),
	}
}

// NewGen2Source reads the early Room tables.
func NewGen2Source(dbPath string, logger *slog.Logger) *SQLiteSource {
	return &SQLiteSource{
		gen:    legacy.Gen2,
		dbPath: dbPath,
		tables: tableNames{
			shoppings:     legacy.Gen2TableShoppings,
			products:      legacy.Gen2TableProducts,
			autocompletes: legacy.Gen2TableAutocompletes,
		},
		logger: logger.With("source", legacy.Gen2.String()),
	}
}

// Generation implements legacy.Source.
func (s *SQLiteSource) Generation() legacy.Generation {
	return s.gen
}

// Pending reports whether the database file exists with its list table.
// For generation 1 with known preferences, they must also show a used
// installation; with unknown preferences the list table must have rows.
// An unconfigured source returns legacy.ErrSourceUnavailable.
func (s *SQLiteSource) Pending(ctx context.Context) (bool, error) {
	if s.dbPath == "" {
		return false, fmt.Errorf("%w: %s database path not configured", legacy.ErrSourceUnavailable, s.gen)
	}
	if _, err := os.Stat(s.dbPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("Legacy database not found", "path", s.dbPath)
			return false, nil
		}
		return false, fmt.Errorf("stat legacy database: %w", err)
	}

	prefsKnown := true
	if s.gen == legacy.Gen1 {
		prefs, known, err := s.preferences()
		if err != nil {
			return false, err
		}
		prefsKnown = known
		if known && !legacy.Gen1ImportRequested(prefs) {
			s.logger.Debug("Legacy preferences show a first run, nothing to import")
			return false, nil
		}
	}

	db, closeDB, err := s.open()
	if err != nil {
		return false, err
	}
	defer closeDB()
	db = db.WithContext(ctx)
	if !db.Migrator().HasTable(s.tables.shoppings) {
		return false, nil
	}
	if prefsKnown {
		return true, nil
	}

	var n int64
	if err := db.Table(s.tables.shoppings).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count legacy table %s: %w", s.tables.shoppings, err)
	}
	s.logger.Debug("Legacy preferences unknown, deciding by stored lists", "lists", n)
	return n > 0, nil
}

// Read loads every legacy table in full. A missing table is returned without
// columns and is reported by coercer validation.
func (s *SQLiteSource) Read(ctx context.Context) (legacy.Snapshot, error) {
	prefs, _, err := s.preferences()
	if err != nil {
		return legacy.Snapshot{}, err
	}

	db, closeDB, err := s.open()
	if err != nil {
		return legacy.Snapshot{}, err
	}
	defer closeDB()

	snap := legacy.Snapshot{Generation: s.gen, Preferences: prefs}
	for _, t := range []struct {
		name string
		dst  *legacy.Table
	}{
		{s.tables.shoppings, &snap.Shoppings},
		{s.tables.products, &snap.Products},
		{s.tables.autocompletes, &snap.Autocompletes},
	} {
		table, err := readTable(ctx, db, t.name)
		if err != nil {
			return legacy.Snapshot{}, err
		}
		*t.dst = table
	}

	s.logger.Info("Read legacy tables",
		"shoppings", len(snap.Shoppings.Rows),
		"products", len(snap.Products.Rows),
		"autocompletes", len(snap.Autocompletes.Rows))
	return snap, nil
}

// preferences reads the generation 1 preferences file. known is false when
// no file is configured or it does not exist.
func (s *SQLiteSource) preferences() (prefs legacy.Preferences, known bool, err error) {
	if s.prefsPath == "" {
		return legacy.Preferences{}, false, nil
	}
	f, err := os.Open(s.prefsPath)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("Legacy preferences not found", "path", s.prefsPath)
		return legacy.Preferences{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("open legacy preferences: %w", err)
	}
	defer func() { _ = f.Close() }()
	prefs, err = legacy.LoadSharedPreferences(f)
	if err != nil {
		return nil, false, err
	}
	return prefs, true, nil
}

func (s *SQLiteSource) open() (*gorm.DB, func(), error) {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=ro", s.dbPath)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open legacy database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("open legacy database: %w", err)
	}
	return db, func() { _ = sqlDB.Close() }, nil
}

func readTable(ctx context.Context, db *gorm.DB, name string) (legacy.Table, error) {
	table := legacy.Table{Name: name}
	if !db.Migrator().HasTable(name) {
		return table, nil
	}

	rows, err := db.WithContext(ctx).Table(name).Rows()
	if err != nil {
		return table, fmt.Errorf("read legacy table %s: %w", name, err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return table, fmt.Errorf("read legacy table %s: %w", name, err)
	}
	table.Columns = columns

	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return table, fmt.Errorf("scan legacy table %s: %w", name, err)
		}
		row := make(legacy.Row, len(columns))
		for i, c := range columns {
			row[c] = values[i]
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return table, fmt.Errorf("read legacy table %s: %w", name, err)
	}
	return table, nil
}
