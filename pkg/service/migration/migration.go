// Package migration imports the data of legacy generations into the
// canonical store exactly once per generation.
//
// A generation is imported when its marker is unset and its source reports
// pending data. Records, carried-over settings and the marker are written in
// a single unit of work, and every record is upserted by a uid derived from
// its legacy key, so an interrupted run can simply be retried.
package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/amirasaad/shoplist/pkg/cache"
	"github.com/amirasaad/shoplist/pkg/domain/shopping"
	"github.com/amirasaad/shoplist/pkg/legacy"
	"github.com/amirasaad/shoplist/pkg/repository"
	"github.com/amirasaad/shoplist/pkg/settings"
	"github.com/google/uuid"
)

// State is the migration state of one generation.
type State int

const (
	NotMigrated State = iota
	Migrating
	Migrated
)

func (s State) String() string {
	switch s {
	case Migrating:
		return "migrating"
	case Migrated:
		return "migrated"
	default:
		return "not_migrated"
	}
}

// Result summarizes one Migrate call.
type Result struct {
	Generation legacy.Generation
	State      State
	// Skipped is true when nothing was imported: the marker was already set,
	// the source had no pending data or it was unavailable. Only the last
	// case leaves State at NotMigrated.
	Skipped       bool
	Shoppings     int
	Products      int
	Autocompletes int
	Orphans       int
}

// uidNamespace scopes the name-based uids of imported records.
var uidNamespace = uuid.MustParse("6f1c8a52-3e0b-4c4e-9a57-1d2b7e9c4f30")

const (
	kindShopping     = "shopping"
	kindProduct      = "product"
	kindAutocomplete = "autocomplete"
)

// recordUID derives a stable uid from the generation, record kind and legacy
// key. It never contains the legacy integer id on its own.
func recordUID(gen legacy.Generation, kind, key string) string {
	return uuid.NewSHA1(uidNamespace, []byte(gen.String()+"/"+kind+"/"+key)).String()
}

// Service runs legacy migrations against the canonical store.
type Service struct {
	uow    repository.UnitOfWork
	cache  cache.PreferenceCache
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithPreferenceCache evicts the preferences a migration writes from c.
func WithPreferenceCache(c cache.PreferenceCache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// NewService creates a migration Service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{uow: uow, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status reads the persisted marker of gen.
func (s *Service) Status(ctx context.Context, gen legacy.Generation) (State, error) {
	store, err := s.uow.PreferenceRepository()
	if err != nil {
		return NotMigrated, err
	}
	migrated, err := settings.IsMigrated(ctx, store, int(gen))
	if err != nil {
		return NotMigrated, fmt.Errorf("read %s marker: %w", gen, err)
	}
	if migrated {
		return Migrated, nil
	}
	return NotMigrated, nil
}

// MigrateAll migrates every source in order and stops at the first error.
func (s *Service) MigrateAll(ctx context.Context, sources ...legacy.Source) ([]Result, error) {
	results := make([]Result, 0, len(sources))
	for _, src := range sources {
		res, err := s.Migrate(ctx, src)
		results = append(results, res)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// Migrate imports src unless its generation is already migrated. A schema
// mismatch aborts before anything is written and leaves the marker unset.
func (s *Service) Migrate(ctx context.Context, src legacy.Source) (Result, error) {
	gen := src.Generation()
	logger := s.logger.With("generation", gen.String())
	res := Result{Generation: gen, State: NotMigrated}

	state, err := s.Status(ctx, gen)
	if err != nil {
		return res, err
	}
	if state == Migrated {
		logger.Debug("Migration skipped: marker already set")
		res.State, res.Skipped = Migrated, true
		return res, nil
	}

	pending, err := src.Pending(ctx)
	if errors.Is(err, legacy.ErrSourceUnavailable) {
		logger.Info("Migration deferred: legacy source unavailable", "reason", err)
		res.Skipped = true
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("check %s source: %w", gen, err)
	}
	if !pending {
		if err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			return setMarker(ctx, uow, gen)
		}); err != nil {
			return res, err
		}
		s.evict(ctx, logger, settings.MarkerKey(int(gen)))
		logger.Info("Migration skipped: no legacy data")
		res.State, res.Skipped = Migrated, true
		return res, nil
	}

	logger.Info("Migration started", "from", NotMigrated, "to", Migrating)
	res.State = Migrating

	snap, err := src.Read(ctx)
	if err != nil {
		return s.fail(logger, res, fmt.Errorf("read %s source: %w", gen, err))
	}
	base, err := s.loadSettings(ctx)
	if err != nil {
		return s.fail(logger, res, err)
	}
	coercer, err := legacy.NewCoercer(gen, snap.Preferences, base)
	if err != nil {
		return s.fail(logger, res, err)
	}
	if err := coercer.Validate(snap); err != nil {
		return s.fail(logger, res, err)
	}

	p := build(coercer, snap)
	if p.orphans > 0 {
		logger.Warn("Products without a list were not imported", "orphans", p.orphans)
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return commit(ctx, uow, gen, p, coercer.Settings())
	})
	if err != nil {
		return s.fail(logger, res, err)
	}
	s.evict(ctx, logger, append(settings.Keys(), settings.MarkerKey(int(gen)))...)

	res.State = Migrated
	res.Shoppings = len(p.lists)
	res.Products = p.productCount()
	res.Autocompletes = len(p.autocompletes)
	res.Orphans = p.orphans
	logger.Info("Migration completed",
		"from", Migrating,
		"to", Migrated,
		"shoppings", res.Shoppings,
		"products", res.Products,
		"autocompletes", res.Autocompletes,
		"orphans", res.Orphans,
	)
	return res, nil
}

func (s *Service) fail(logger *slog.Logger, res Result, err error) (Result, error) {
	if errors.Is(err, legacy.ErrSchemaMismatch) {
		logger.Error("Migration aborted: legacy schema mismatch", "error", err)
	} else {
		logger.Error("Migration failed", "error", err)
	}
	res.State = NotMigrated
	return res, err
}

// evict drops keys written behind the cache's back. Failures only leave
// stale entries until their TTL expires.
func (s *Service) evict(ctx context.Context, logger *slog.Logger, keys ...string) {
	if s.cache == nil {
		return
	}
	for _, key := range keys {
		if err := s.cache.Delete(ctx, key); err != nil {
			logger.Warn("Failed to evict cached preference", "key", key, "error", err)
		}
	}
}

// loadSettings reads the current canonical settings. A previous generation
// may have written them earlier in the same run.
func (s *Service) loadSettings(ctx context.Context) (settings.Settings, error) {
	store, err := s.uow.PreferenceRepository()
	if err != nil {
		return settings.Settings{}, err
	}
	return settings.Load(ctx, store)
}

// plan holds the coerced records of one generation, ready to persist.
type plan struct {
	lists         []shopping.ShoppingList
	autocompletes []shopping.Autocomplete
	orphans       int
}

func (p plan) productCount() int {
	n := 0
	for _, l := range p.lists {
		n += len(l.Products)
	}
	return n
}

// build coerces a snapshot. Products are grouped by parent key in a single
// pass before lists are assembled. When autocompletes are saved, every
// imported product emits one, keyed by the product uid.
func build(c legacy.Coercer, snap legacy.Snapshot) plan {
	gen := c.Generation()

	byParent := make(map[string][]shopping.Product, len(snap.Shoppings.Rows))
	for _, r := range snap.Products.Rows {
		p := c.Product(r)
		p.UID = recordUID(gen, kindProduct, c.ProductKey(r))
		parent := c.ProductParentKey(r)
		byParent[parent] = append(byParent[parent], p)
	}

	lists := make([]shopping.ShoppingList, 0, len(snap.Shoppings.Rows))
	for _, r := range snap.Shoppings.Rows {
		key := c.ShoppingKey(r)
		products, ok := byParent[key]
		if ok {
			delete(byParent, key)
		}
		list := shopping.ShoppingList{Shopping: c.Shopping(r), Products: products}
		list.Shopping.UID = recordUID(gen, kindShopping, key)
		lists = append(lists, c.FinalizeList(list))
	}
	lists = c.FinalizeLists(lists)

	var p plan
	for _, orphaned := range byParent {
		p.orphans += len(orphaned)
	}

	for _, r := range snap.Autocompletes.Rows {
		a := c.Autocomplete(r)
		a.ID = 0
		a.UID = recordUID(gen, kindAutocomplete, c.AutocompleteKey(r))
		p.autocompletes = append(p.autocompletes, a)
	}

	for i := range lists {
		lists[i].Shopping.ID = 0
		for j := range lists[i].Products {
			prod := &lists[i].Products[j]
			prod.ID = 0
			prod.ShoppingUID = lists[i].Shopping.UID
			if !c.SaveAutocompletes() {
				continue
			}
			uid := recordUID(gen, kindAutocomplete, "product:"+prod.UID)
			p.autocompletes = append(p.autocompletes, shopping.AutocompleteFromProduct(*prod, uid))
		}
	}
	p.lists = lists
	return p
}

func commit(
	ctx context.Context,
	uow repository.UnitOfWork,
	gen legacy.Generation,
	p plan,
	carried settings.Settings,
) error {
	shoppings, err := uow.ShoppingRepository()
	if err != nil {
		return err
	}
	products, err := uow.ProductRepository()
	if err != nil {
		return err
	}
	autocompletes, err := uow.AutocompleteRepository()
	if err != nil {
		return err
	}
	prefs, err := uow.PreferenceRepository()
	if err != nil {
		return err
	}

	for i := range p.lists {
		list := &p.lists[i]
		if err := shoppings.Upsert(ctx, &list.Shopping); err != nil {
			return fmt.Errorf("upsert shopping %s: %w", list.Shopping.UID, err)
		}
		for j := range list.Products {
			if err := products.Upsert(ctx, &list.Products[j]); err != nil {
				return fmt.Errorf("upsert product %s: %w", list.Products[j].UID, err)
			}
		}
	}
	for i := range p.autocompletes {
		if err := autocompletes.Upsert(ctx, &p.autocompletes[i]); err != nil {
			return fmt.Errorf("upsert autocomplete %s: %w", p.autocompletes[i].UID, err)
		}
	}
	if err := settings.Save(ctx, prefs, carried); err != nil {
		return err
	}
	return setMarker(ctx, uow, gen)
}

func setMarker(ctx context.Context, uow repository.UnitOfWork, gen legacy.Generation) error {
	prefs, err := uow.PreferenceRepository()
	if err != nil {
		return err
	}
	if err := prefs.Set(ctx, settings.MarkerKey(int(gen)), strconv.FormatBool(true)); err != nil {
		return fmt.Errorf("set %s marker: %w", gen, err)
	}
	return nil
}
