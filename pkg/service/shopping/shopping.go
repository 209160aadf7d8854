// Package shopping provides the presentation-ready views over the canonical
// store: arranged lists and products with their totals, plus the few writes
// the views need (creating records and manual reordering).
package shopping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/shoplist/pkg/aggregate"
	"github.com/amirasaad/shoplist/pkg/domain/shopping"
	"github.com/amirasaad/shoplist/pkg/listing"
	"github.com/amirasaad/shoplist/pkg/money"
	"github.com/amirasaad/shoplist/pkg/repository"
	"github.com/amirasaad/shoplist/pkg/settings"
	"github.com/google/uuid"
)

// ErrEmptyName is returned when a list or product is created without a name.
var ErrEmptyName = errors.New("name is required")

// ListsView is the lists screen of one location.
type ListsView struct {
	Pinned []shopping.ShoppingList
	Other  []shopping.ShoppingList
	Totals aggregate.Totals
}

// ProductsView is the products screen of one list.
type ProductsView struct {
	Shopping shopping.Shopping
	Pinned   []shopping.Product
	Other    []shopping.Product
	Summary  aggregate.Summary
	// Total is the list total for the configured display mode.
	Total money.Value
}

// Service builds views using one settings snapshot.
type Service struct {
	uow      repository.UnitOfWork
	settings settings.Settings
	engine   *aggregate.Engine
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new Service. formats must match the formats the
// UnitOfWork reads values with.
func NewService(
	uow repository.UnitOfWork,
	s settings.Settings,
	formats shopping.Formats,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:      uow,
		settings: s,
		engine:   aggregate.New(formats),
		logger:   logger,
		now:      time.Now,
	}
}

// Lists returns the lists of location arranged in manual order with pinned
// active lists first.
func (s *Service) Lists(ctx context.Context, location shopping.Location) (ListsView, error) {
	lists, err := s.loadLists(ctx, location)
	if err != nil {
		return ListsView{}, err
	}
	arranged := listing.Arrange(lists, listing.DefaultSort, s.settings.DisplayCompleted)
	return ListsView{
		Pinned: arranged.Pinned,
		Other:  arranged.Other,
		Totals: s.engine.ShoppingLists(lists),
	}, nil
}

// Products returns the products of one list. The list's own sort is used
// when it has one, manual order otherwise.
func (s *Service) Products(ctx context.Context, shoppingUID string) (ProductsView, error) {
	list, err := s.loadList(ctx, shoppingUID)
	if err != nil {
		return ProductsView{}, err
	}
	arranged := listing.Arrange(list.Products, list.ProductSort(), s.settings.DisplayCompleted)
	return ProductsView{
		Shopping: list.Shopping,
		Pinned:   arranged.Pinned,
		Other:    arranged.Other,
		Summary:  s.engine.Products(list.Products),
		Total:    s.ListTotal(list),
	}, nil
}

// ListTotal is the total shown next to a list for the configured display
// mode.
func (s *Service) ListTotal(list shopping.ShoppingList) money.Value {
	return s.engine.ShoppingList(list, s.settings.DisplayTotal)
}

// SelectedTotal sums the products of one list whose uid is in uids.
func (s *Service) SelectedTotal(ctx context.Context, shoppingUID string, uids []string) (aggregate.Summary, error) {
	list, err := s.loadList(ctx, shoppingUID)
	if err != nil {
		return aggregate.Summary{}, err
	}
	return s.engine.ProductsByUIDs(list.Products, uids), nil
}

// CreateShopping appends a new list to the purchases.
func (s *Service) CreateShopping(ctx context.Context, name string) (sh *shopping.Shopping, err error) {
	name = s.normalizeName(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	logger := s.logger.With("name", name)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.ShoppingRepository()
		if err != nil {
			return err
		}
		existing, err := repo.List(ctx, shopping.LocationPurchases)
		if err != nil {
			return err
		}
		now := s.now()
		sh = &shopping.Shopping{
			UID:           uuid.New().String(),
			Position:      len(existing),
			Created:       now,
			LastModified:  now,
			Name:          name,
			Total:         shopping.Derived(),
			Location:      shopping.LocationPurchases,
			Sort:          s.settings.DefaultSort,
			SortFormatted: s.settings.DefaultSort.By != listing.SortByPosition,
		}
		return repo.Upsert(ctx, sh)
	})
	if err != nil {
		logger.Error("CreateShopping failed", "error", err)
		return nil, err
	}
	logger.Info("Shopping created", "uid", sh.UID)
	return sh, nil
}

// AddProduct appends p to a list. The product gets a new uid; when
// autocompletes are enabled it is also remembered as one.
func (s *Service) AddProduct(ctx context.Context, shoppingUID string, p shopping.Product) (*shopping.Product, error) {
	p.Name = s.normalizeName(p.Name)
	if p.Name == "" {
		return nil, ErrEmptyName
	}
	logger := s.logger.With("shopping_uid", shoppingUID, "name", p.Name)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		shoppings, err := uow.ShoppingRepository()
		if err != nil {
			return err
		}
		if _, err := shoppings.Get(ctx, shoppingUID); err != nil {
			return err
		}
		products, err := uow.ProductRepository()
		if err != nil {
			return err
		}
		existing, err := products.ListByShopping(ctx, shoppingUID)
		if err != nil {
			return err
		}
		p.ID = 0
		p.UID = uuid.New().String()
		p.ShoppingUID = shoppingUID
		p.Position = len(existing)
		p.LastModified = s.now()
		if err := products.Upsert(ctx, &p); err != nil {
			return err
		}
		if !s.settings.SaveAutocompletes {
			return nil
		}
		autocompletes, err := uow.AutocompleteRepository()
		if err != nil {
			return err
		}
		known, err := autocompletes.List(ctx)
		if err != nil {
			return err
		}
		for _, a := range known {
			if strings.EqualFold(a.Name, p.Name) {
				return nil
			}
		}
		a := shopping.AutocompleteFromProduct(p, uuid.New().String())
		return autocompletes.Upsert(ctx, &a)
	})
	if err != nil {
		logger.Error("AddProduct failed", "error", err)
		return nil, err
	}
	logger.Info("Product added", "uid", p.UID)
	return &p, nil
}

// MoveProduct moves a product one step in the manual order of its list and
// stores dense positions.
func (s *Service) MoveProduct(ctx context.Context, shoppingUID, productUID string, up bool) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.ProductRepository()
		if err != nil {
			return err
		}
		products, err := repo.ListByShopping(ctx, shoppingUID)
		if err != nil {
			return err
		}
		moved, err := move(products, productUID, up)
		if err != nil {
			return fmt.Errorf("move product %s: %w", productUID, err)
		}
		return repo.UpdatePositions(ctx, listing.Renumber(moved))
	})
}

// MoveShopping moves a list one step in the manual order of its location
// and stores dense positions.
func (s *Service) MoveShopping(ctx context.Context, location shopping.Location, shoppingUID string, up bool) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.ShoppingRepository()
		if err != nil {
			return err
		}
		headers, err := repo.List(ctx, location)
		if err != nil {
			return err
		}
		lists := make([]shopping.ShoppingList, 0, len(headers))
		for _, h := range headers {
			lists = append(lists, shopping.ShoppingList{Shopping: h})
		}
		moved, err := move(lists, shoppingUID, up)
		if err != nil {
			return fmt.Errorf("move shopping %s: %w", shoppingUID, err)
		}
		return repo.UpdatePositions(ctx, listing.Renumber(moved))
	})
}

func move[T listing.Item](items []T, uid string, up bool) ([]T, error) {
	if up {
		return listing.MoveUp(items, uid)
	}
	return listing.MoveDown(items, uid)
}

func (s *Service) normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if !s.settings.CapitalizeNames {
		return name
	}
	return shopping.CapitalizeName(name)
}

func (s *Service) loadLists(ctx context.Context, location shopping.Location) ([]shopping.ShoppingList, error) {
	shoppings, err := s.uow.ShoppingRepository()
	if err != nil {
		return nil, err
	}
	products, err := s.uow.ProductRepository()
	if err != nil {
		return nil, err
	}
	headers, err := shoppings.List(ctx, location)
	if err != nil {
		return nil, err
	}
	uids := make([]string, 0, len(headers))
	for _, h := range headers {
		uids = append(uids, h.UID)
	}
	all, err := products.ListByShoppings(ctx, uids)
	if err != nil {
		return nil, err
	}
	byShopping := make(map[string][]shopping.Product, len(headers))
	for _, p := range all {
		byShopping[p.ShoppingUID] = append(byShopping[p.ShoppingUID], p)
	}
	lists := make([]shopping.ShoppingList, 0, len(headers))
	for _, h := range headers {
		lists = append(lists, shopping.ShoppingList{Shopping: h, Products: byShopping[h.UID]})
	}
	return lists, nil
}

func (s *Service) loadList(ctx context.Context, shoppingUID string) (shopping.ShoppingList, error) {
	shoppings, err := s.uow.ShoppingRepository()
	if err != nil {
		return shopping.ShoppingList{}, err
	}
	products, err := s.uow.ProductRepository()
	if err != nil {
		return shopping.ShoppingList{}, err
	}
	header, err := shoppings.Get(ctx, shoppingUID)
	if err != nil {
		return shopping.ShoppingList{}, err
	}
	items, err := products.ListByShopping(ctx, shoppingUID)
	if err != nil {
		return shopping.ShoppingList{}, err
	}
	return shopping.ShoppingList{Shopping: *header, Products: items}, nil
}
