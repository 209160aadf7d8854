package migration_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strconv"
	"testing"

	infracache "github.com/amirasaad/shoplist/infra/cache"
	infralegacy "github.com/amirasaad/shoplist/infra/legacy"
	infrarepo "github.com/amirasaad/shoplist/infra/repository"
	"github.com/amirasaad/shoplist/pkg/domain/shopping"
	"github.com/amirasaad/shoplist/pkg/legacy"
	"github.com/amirasaad/shoplist/pkg/listing"
	"github.com/amirasaad/shoplist/pkg/repository"
	"github.com/amirasaad/shoplist/pkg/service/migration"
	"github.com/amirasaad/shoplist/pkg/settings"
	"github.com/amirasaad/shoplist/pkg/testutils"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// memSource serves a prepared snapshot.
type memSource struct {
	snap       legacy.Snapshot
	pending    bool
	pendingErr error
	reads      int
	readErr    error
}

func (s *memSource) Generation() legacy.Generation { return s.snap.Generation }

func (s *memSource) Pending(context.Context) (bool, error) { return s.pending, s.pendingErr }

func (s *memSource) Read(context.Context) (legacy.Snapshot, error) {
	s.reads++
	return s.snap, s.readErr
}

func gen2Table(name string, rows []legacy.Row) legacy.Table {
	return legacy.Table{Name: name, Columns: legacy.Gen2Columns(name), Rows: rows}
}

func gen2Snapshot(shoppings, products, autocompletes []legacy.Row) legacy.Snapshot {
	return legacy.Snapshot{
		Generation:    legacy.Gen2,
		Shoppings:     gen2Table(legacy.Gen2TableShoppings, shoppings),
		Products:      gen2Table(legacy.Gen2TableProducts, products),
		Autocompletes: gen2Table(legacy.Gen2TableAutocompletes, autocompletes),
	}
}

type MigrationTestSuite struct {
	suite.Suite
	ctx    context.Context
	db     *gorm.DB
	uow    repository.UnitOfWork
	svc    *migration.Service
	logger *slog.Logger
}

func (s *MigrationTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.db = testutils.NewSQLiteDB(s.T())
	s.uow = infrarepo.NewUoW(s.db, settings.Default().Formats(nil))
	s.svc = migration.NewService(s.uow, s.logger)
}

func (s *MigrationTestSuite) counts() (shoppings, products, autocompletes int64) {
	sr, err := s.uow.ShoppingRepository()
	s.Require().NoError(err)
	pr, err := s.uow.ProductRepository()
	s.Require().NoError(err)
	ar, err := s.uow.AutocompleteRepository()
	s.Require().NoError(err)

	shoppings, err = sr.Count(s.ctx)
	s.Require().NoError(err)
	products, err = pr.Count(s.ctx)
	s.Require().NoError(err)
	autocompletes, err = ar.Count(s.ctx)
	s.Require().NoError(err)
	return
}

func (s *MigrationTestSuite) resetMarker(gen legacy.Generation) {
	prefs, err := s.uow.PreferenceRepository()
	s.Require().NoError(err)
	s.Require().NoError(prefs.Set(s.ctx, settings.MarkerKey(int(gen)), "false"))
}

func (s *MigrationTestSuite) TestGen1FromFiles() {
	dbPath, prefsPath := testutils.WriteGen1(s.T(), s.T().TempDir(), testutils.LegacyFixture{
		Shoppings: []map[string]any{
			{"_id": 1, "listname": "weekly", "alarm": 0},
			{"_id": 2, "listname": "party", "alarm": 1700000000000},
		},
		Products: []map[string]any{
			{"_id": 1, "listid": 1, "goodsname": "milk", "number": "2", "numbermeasure": "l", "pricemeasure": "1.25", "goodsbuy": 1},
			{"_id": 2, "listid": 2, "goodsname": "cake", "number": "1", "numbermeasure": "", "pricemeasure": "9,99", "goodsbuy": 0},
			{"_id": 3, "listid": 1, "goodsname": "bread", "number": "", "numbermeasure": "", "pricemeasure": "2", "goodsbuy": 0},
		},
		Autocompletes: []map[string]any{
			{"_id": 1, "completename": "bread"},
		},
		Preferences: legacy.Preferences{
			legacy.Gen1PrefFirst:       "false",
			legacy.Gen1PrefSortDefault: "1",
			legacy.Gen1PrefSumDefault:  "1",
			legacy.Gen1PrefShowPrice:   "false",
		},
	})
	src := infralegacy.NewGen1Source(dbPath, prefsPath, s.logger)

	res, err := s.svc.Migrate(s.ctx, src)
	s.Require().NoError(err)
	s.Equal(migration.Migrated, res.State)
	s.False(res.Skipped)
	s.Equal(2, res.Shoppings)
	s.Equal(3, res.Products)
	s.Equal(4, res.Autocompletes, "bread from the table plus one per product")
	s.Zero(res.Orphans)

	state, err := s.svc.Status(s.ctx, legacy.Gen1)
	s.Require().NoError(err)
	s.Equal(migration.Migrated, state)

	prefs, err := s.uow.PreferenceRepository()
	s.Require().NoError(err)
	loaded, err := settings.Load(s.ctx, prefs)
	s.Require().NoError(err)
	s.Equal(listing.Sort{By: listing.SortByName, Ascending: true}, loaded.DefaultSort)
	s.Equal(shopping.DisplayTotalActive, loaded.DisplayTotal)
	s.False(loaded.DisplayMoney)

	shoppings, err := s.uow.ShoppingRepository()
	s.Require().NoError(err)
	lists, err := shoppings.List(s.ctx, shopping.LocationPurchases)
	s.Require().NoError(err)
	s.Require().Len(lists, 2)
	s.Equal("Party", lists[0].Name, "lists renumbered by name ascending")
	s.Equal("Weekly", lists[1].Name)
	s.NotNil(lists[0].Reminder)

	products, err := s.uow.ProductRepository()
	s.Require().NoError(err)
	weekly, err := products.ListByShopping(s.ctx, lists[1].UID)
	s.Require().NoError(err)
	s.Require().Len(weekly, 2)
	s.Equal("Bread", weekly[0].Name)
	s.Equal(0, weekly[0].Position)
	s.Equal("Milk", weekly[1].Name)
	s.Equal(1, weekly[1].Position)
	s.True(weekly[1].Completed)
}

func (s *MigrationTestSuite) TestIdempotentAcrossRetries() {
	src := &memSource{pending: true, snap: gen2Snapshot(
		[]legacy.Row{
			{"id": int64(1), "name": "Weekly", "position": int64(0)},
			{"id": int64(2), "name": "Party", "position": int64(1)},
		},
		[]legacy.Row{
			{"id": int64(10), "shopping_id": int64(1), "name": "milk", "price": 1.5},
			{"id": int64(11), "shopping_id": int64(2), "name": "cake", "price": 9.99},
		},
		[]legacy.Row{{"id": int64(1), "name": "Milk"}},
	)}

	first, err := s.svc.Migrate(s.ctx, src)
	s.Require().NoError(err)
	sh1, pr1, ac1 := s.counts()

	s.resetMarker(legacy.Gen2)
	second, err := s.svc.Migrate(s.ctx, src)
	s.Require().NoError(err)
	sh2, pr2, ac2 := s.counts()

	s.Equal(first, second)
	s.Equal(int64(2), sh1)
	s.Equal(int64(2), pr1)
	s.Equal(int64(3), ac1, "the table autocomplete plus one per product")
	s.Equal(sh1, sh2)
	s.Equal(pr1, pr2)
	s.Equal(ac1, ac2)
}

func (s *MigrationTestSuite) TestAutocompletePerProduct() {
	src := &memSource{pending: true, snap: gen2Snapshot(
		[]legacy.Row{
			{"id": int64(1), "name": "Weekly"},
			{"id": int64(2), "name": "Party"},
		},
		[]legacy.Row{
			{"id": int64(10), "shopping_id": int64(1), "name": "milk"},
			{"id": int64(11), "shopping_id": int64(2), "name": "milk"},
		},
		nil,
	)}

	res, err := s.svc.Migrate(s.ctx, src)
	s.Require().NoError(err)
	s.Equal(2, res.Products)
	s.Equal(2, res.Autocompletes)

	_, _, ac := s.counts()
	s.Equal(int64(2), ac)
}

func (s *MigrationTestSuite) TestUnavailableSourceKeepsMarkerUnset() {
	src := &memSource{
		pendingErr: fmt.Errorf("%w: path not configured", legacy.ErrSourceUnavailable),
		snap: gen2Snapshot(
			[]legacy.Row{{"id": int64(1), "name": "Weekly"}}, nil, nil,
		),
	}

	res, err := s.svc.Migrate(s.ctx, src)
	s.Require().NoError(err)
	s.True(res.Skipped)
	s.Equal(migration.NotMigrated, res.State)
	s.Zero(src.reads)

	state, err := s.svc.Status(s.ctx, legacy.Gen2)
	s.Require().NoError(err)
	s.Equal(migration.NotMigrated, state)

	src.pendingErr, src.pending = nil, true
	res, err = s.svc.Migrate(s.ctx, src)
	s.Require().NoError(err)
	s.False(res.Skipped)
	s.Equal(1, res.Shoppings)
}

func (s *MigrationTestSuite) TestGen1WithoutPreferencesImportsLists() {
	fixture := testutils.LegacyFixture{
		Shoppings: []map[string]any{{"_id": 1, "listname": "weekly", "alarm": 0}},
		Products: []map[string]any{
			{"_id": 1, "listid": 1, "goodsname": "milk", "number": "1", "numbermeasure": "", "pricemeasure": "1", "goodsbuy": 0},
		},
	}
	dbPath, _ := testutils.WriteGen1(s.T(), s.T().TempDir(), fixture)

	res, err := s.svc.Migrate(s.ctx, infralegacy.NewGen1Source(dbPath, "", s.logger))
	s.Require().NoError(err)
	s.False(res.Skipped)
	s.Equal(migration.Migrated, res.State)
	s.Equal(1, res.Shoppings)
	s.Equal(1, res.Products)
}

func (s *MigrationTestSuite) TestMarkerSkipsSource() {
	src := &memSource{pending: true, snap: gen2Snapshot(nil, nil, nil)}

	_, err := s.svc.Migrate(s.ctx, src)
	s.Require().NoError(err)
	s.Equal(1, src.reads)

	res, err := s.svc.Migrate(s.ctx, src)
	s.Require().NoError(err)
	s.True(res.Skipped)
	s.Equal(migration.Migrated, res.State)
	s.Equal(1, src.reads, "a migrated generation is never read again")
}

func (s *MigrationTestSuite) TestNothingPendingSetsMarker() {
	src := &memSource{pending: false, snap: gen2Snapshot(nil, nil, nil)}

	res, err := s.svc.Migrate(s.ctx, src)
	s.Require().NoError(err)
	s.True(res.Skipped)
	s.Zero(src.reads)

	state, err := s.svc.Status(s.ctx, legacy.Gen2)
	s.Require().NoError(err)
	s.Equal(migration.Migrated, state)
}

func (s *MigrationTestSuite) TestSchemaMismatchLeavesMarkerUnset() {
	snap := gen2Snapshot(
		[]legacy.Row{{"id": int64(1), "name": "Weekly"}},
		nil, nil,
	)
	snap.Products.Columns = []string{"id", "name"}
	src := &memSource{pending: true, snap: snap}

	res, err := s.svc.Migrate(s.ctx, src)
	s.Require().ErrorIs(err, legacy.ErrSchemaMismatch)
	s.Equal(migration.NotMigrated, res.State)

	state, err := s.svc.Status(s.ctx, legacy.Gen2)
	s.Require().NoError(err)
	s.Equal(migration.NotMigrated, state)

	sh, pr, ac := s.counts()
	s.Zero(sh)
	s.Zero(pr)
	s.Zero(ac)
}

func (s *MigrationTestSuite) TestReadErrorLeavesMarkerUnset() {
	src := &memSource{pending: true, readErr: errors.New("disk I/O error"), snap: gen2Snapshot(nil, nil, nil)}

	res, err := s.svc.Migrate(s.ctx, src)
	s.Require().Error(err)
	s.Equal(migration.NotMigrated, res.State)

	state, err := s.svc.Status(s.ctx, legacy.Gen2)
	s.Require().NoError(err)
	s.Equal(migration.NotMigrated, state)
}

func (s *MigrationTestSuite) TestOrphansAreCounted() {
	src := &memSource{pending: true, snap: gen2Snapshot(
		[]legacy.Row{{"id": int64(1), "name": "Weekly"}},
		[]legacy.Row{
			{"id": int64(10), "shopping_id": int64(1), "name": "milk"},
			{"id": int64(11), "shopping_id": int64(99), "name": "ghost"},
			{"id": int64(12), "shopping_id": int64(98), "name": "ghost"},
		},
		nil,
	)}

	res, err := s.svc.Migrate(s.ctx, src)
	s.Require().NoError(err)
	s.Equal(1, res.Products)
	s.Equal(2, res.Orphans)
	s.Equal(1, res.Autocompletes, "orphans do not produce autocompletes")

	_, pr, _ := s.counts()
	s.Equal(int64(1), pr)
}

func (s *MigrationTestSuite) TestGroupingAtScale() {
	const lists, products = 40, 1500
	rng := rand.New(rand.NewSource(42))

	shoppingRows := make([]legacy.Row, 0, lists)
	for i := range lists {
		shoppingRows = append(shoppingRows, legacy.Row{"id": int64(i + 1), "name": "list " + strconv.Itoa(i)})
	}
	expected := make(map[int64]int)
	productRows := make([]legacy.Row, 0, products)
	for i := range products {
		parent := int64(rng.Intn(lists) + 1)
		expected[parent]++
		productRows = append(productRows, legacy.Row{
			"id": int64(i + 1), "shopping_id": parent, "name": "p" + strconv.Itoa(i),
		})
	}
	rng.Shuffle(len(productRows), func(i, j int) {
		productRows[i], productRows[j] = productRows[j], productRows[i]
	})

	res, err := s.svc.Migrate(s.ctx, &memSource{pending: true, snap: gen2Snapshot(shoppingRows, productRows, nil)})
	s.Require().NoError(err)
	s.Equal(lists, res.Shoppings)
	s.Equal(products, res.Products)
	s.Zero(res.Orphans)

	sr, err := s.uow.ShoppingRepository()
	s.Require().NoError(err)
	pr, err := s.uow.ProductRepository()
	s.Require().NoError(err)
	stored, err := sr.List(s.ctx, shopping.LocationPurchases)
	s.Require().NoError(err)
	s.Require().Len(stored, lists)

	seen := make(map[string]bool, products)
	for _, l := range stored {
		n, err := strconv.ParseInt(l.Name[len("list "):], 10, 64)
		s.Require().NoError(err)
		items, err := pr.ListByShopping(s.ctx, l.UID)
		s.Require().NoError(err)
		s.Len(items, expected[n+1], l.Name)
		for i, p := range items {
			s.False(seen[p.UID], "product attached twice")
			seen[p.UID] = true
			s.Equal(i, p.Position)
		}
	}
	s.Len(seen, products)
}

func (s *MigrationTestSuite) TestMigrateAllCarriesSettingsForward() {
	gen1 := &memSource{pending: false, snap: legacy.Snapshot{Generation: legacy.Gen1}}
	gen2 := &memSource{pending: true, snap: gen2Snapshot(
		[]legacy.Row{{"id": int64(1), "name": "Weekly"}}, nil, nil,
	)}

	prefs, err := s.uow.PreferenceRepository()
	s.Require().NoError(err)
	s.Require().NoError(prefs.Set(s.ctx, settings.KeyCurrencyCode, "EUR"))

	results, err := s.svc.MigrateAll(s.ctx, gen1, gen2)
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.True(results[0].Skipped)
	s.False(results[1].Skipped)

	loaded, err := settings.Load(s.ctx, prefs)
	s.Require().NoError(err)
	s.Equal("EUR", loaded.CurrencyCode)
	s.Equal(3, loaded.MoneyStyle.MaxFractionDigits)
}

func (s *MigrationTestSuite) TestEvictsCachedPreferences() {
	c := infracache.NewMemoryCache()
	s.Require().NoError(c.Set(s.ctx, settings.KeyMoneyMaxFractionDigits, "2", 0))
	s.Require().NoError(c.Set(s.ctx, "unrelated_key", "dark", 0))
	svc := migration.NewService(s.uow, s.logger, migration.WithPreferenceCache(c))

	_, err := svc.Migrate(s.ctx, &memSource{pending: true, snap: gen2Snapshot(nil, nil, nil)})
	s.Require().NoError(err)

	_, ok, err := c.Get(s.ctx, settings.KeyMoneyMaxFractionDigits)
	s.Require().NoError(err)
	s.False(ok)
	_, ok, err = c.Get(s.ctx, "unrelated_key")
	s.Require().NoError(err)
	s.True(ok, "unrelated keys stay cached")
}

func TestMigrationTestSuite(t *testing.T) {
	suite.Run(t, new(MigrationTestSuite))
}
