package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amirasaad/shoplist/pkg/legacy"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var gen1Schema = []string{
	`CREATE TABLE list (_id INTEGER PRIMARY KEY AUTOINCREMENT, listname TEXT, alarm INTEGER)`,
	`CREATE TABLE goods (_id INTEGER PRIMARY KEY AUTOINCREMENT, listid INTEGER, goodsname TEXT,
		number TEXT, numbermeasure TEXT, pricemeasure TEXT, goodsbuy INTEGER)`,
	`CREATE TABLE complete (_id INTEGER PRIMARY KEY AUTOINCREMENT, completename TEXT)`,
}

var gen2Schema = []string{
	`CREATE TABLE shoppings (id INTEGER PRIMARY KEY AUTOINCREMENT, position INTEGER NOT NULL DEFAULT 0,
		last_modified INTEGER, name TEXT, reminder INTEGER, total REAL, total_formatted INTEGER,
		archived INTEGER, deleted INTEGER, sort_by TEXT, sort_ascending INTEGER,
		sort_formatted INTEGER, pinned INTEGER)`,
	`CREATE TABLE products (id INTEGER PRIMARY KEY AUTOINCREMENT, shopping_id INTEGER,
		position INTEGER NOT NULL DEFAULT 0, last_modified INTEGER, name TEXT, quantity REAL,
		quantity_symbol TEXT, price REAL, discount REAL, discount_as_percent INTEGER, tax_rate REAL,
		tax_rate_as_percent INTEGER, total REAL, total_formatted INTEGER, completed INTEGER,
		pinned INTEGER, note TEXT, manufacturer TEXT, brand TEXT, size TEXT, color TEXT, provider TEXT)`,
	`CREATE TABLE autocompletes (id INTEGER PRIMARY KEY AUTOINCREMENT, last_modified INTEGER, name TEXT,
		quantity REAL, quantity_symbol TEXT, price REAL, discount REAL, discount_as_percent INTEGER,
		tax_rate REAL, tax_rate_as_percent INTEGER)`,
}

// LegacyFixture holds raw legacy rows keyed by column name.
type LegacyFixture struct {
	Shoppings     []map[string]any
	Products      []map[string]any
	Autocompletes []map[string]any
	Preferences   legacy.Preferences
}

// WriteGen1 creates a generation 1 database and preferences file in dir and
// returns their paths.
func WriteGen1(t testing.TB, dir string, f LegacyFixture) (dbPath, prefsPath string) {
	t.Helper()

	dbPath = filepath.Join(dir, "shopping.db")
	db := OpenSQLiteFile(t, dbPath)
	exec(t, db, gen1Schema)
	insert(t, db, legacy.Gen1TableList, f.Shoppings)
	insert(t, db, legacy.Gen1TableGoods, f.Products)
	insert(t, db, legacy.Gen1TableComplete, f.Autocompletes)

	prefsPath = filepath.Join(dir, "preferences.xml")
	file, err := os.Create(prefsPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()
	require.NoError(t, f.Preferences.Encode(file))
	return dbPath, prefsPath
}

// WriteGen2 creates a generation 2 database in dir and returns its path.
func WriteGen2(t testing.TB, dir string, f LegacyFixture) string {
	t.Helper()

	dbPath := filepath.Join(dir, "shopping_room.db")
	db := OpenSQLiteFile(t, dbPath)
	exec(t, db, gen2Schema)
	insert(t, db, legacy.Gen2TableShoppings, f.Shoppings)
	insert(t, db, legacy.Gen2TableProducts, f.Products)
	insert(t, db, legacy.Gen2TableAutocompletes, f.Autocompletes)
	return dbPath
}

func exec(t testing.TB, db *gorm.DB, statements []string) {
	t.Helper()
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
}

func insert(t testing.TB, db *gorm.DB, table string, rows []map[string]any) {
	t.Helper()
	for _, row := range rows {
		require.NoError(t, db.Table(table).Create(row).Error)
	}
}
