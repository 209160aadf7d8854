package settings_test

import (
	"context"
	"errors"
	"testing"

	"github.com/amirasaad/shoplist/pkg/domain/shopping"
	"github.com/amirasaad/shoplist/pkg/listing"
	"github.com/amirasaad/shoplist/pkg/money"
	"github.com/amirasaad/shoplist/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore map[string]string

func (m mapStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m mapStore) Set(_ context.Context, key, value string) error {
	m[key] = value
	return nil
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk full")
}

func (failingStore) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

func TestLoad_Defaults(t *testing.T) {
	s, err := settings.Load(context.Background(), mapStore{})
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), s)
	assert.Equal(t, listing.DefaultSort, s.DefaultSort)
	assert.Equal(t, money.MoneyStyle, s.MoneyStyle)
}

func TestLoad_GarbledValuesFallBack(t *testing.T) {
	s, err := settings.Load(context.Background(), mapStore{
		settings.KeyMoneyMaxFractionDigits: "two",
		settings.KeyTaxRate:                "abc",
		settings.KeyDisplayTotal:           "EVERYTHING",
		settings.KeySortBy:                 "color",
		settings.KeyCapitalizeNames:        "maybe",
		settings.KeyCurrencyPosition:       "middle",
	})
	require.NoError(t, err)
	d := settings.Default()
	assert.Equal(t, d.MoneyStyle, s.MoneyStyle)
	assert.Equal(t, d.TaxRate, s.TaxRate)
	assert.Equal(t, d.DisplayTotal, s.DisplayTotal)
	assert.Equal(t, d.DefaultSort, s.DefaultSort)
	assert.Equal(t, d.CapitalizeNames, s.CapitalizeNames)
	assert.Empty(t, s.CurrencyPosition)
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := mapStore{}
	want := settings.Default()
	want.MoneyStyle = money.Style{MinFractionDigits: 2, MaxFractionDigits: 3}
	want.CurrencyCode = "EUR"
	want.CurrencyPosition = settings.PositionBefore
	want.TaxRate = 7.5
	want.ProductsFontSize = shopping.FontSizeHuge
	want.DisplayCompleted = listing.DisplayCompletedHide
	want.DisplayTotal = shopping.DisplayTotalActive
	want.SaveAutocompletes = false
	want.DefaultSort = listing.Sort{By: listing.SortByTotal, Ascending: false}

	require.NoError(t, settings.Save(ctx, store, want))
	got, err := settings.Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Len(t, store, len(settings.Keys()))
}

func TestLoad_StoreError(t *testing.T) {
	_, err := settings.Load(context.Background(), failingStore{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	err = settings.Save(context.Background(), failingStore{}, settings.Default())
	require.Error(t, err)
}

func TestIsMigrated(t *testing.T) {
	ctx := context.Background()
	store := mapStore{}

	migrated, err := settings.IsMigrated(ctx, store, 1)
	require.NoError(t, err)
	assert.False(t, migrated)

	store[settings.MarkerKey(1)] = "true"
	migrated, err = settings.IsMigrated(ctx, store, 1)
	require.NoError(t, err)
	assert.True(t, migrated)
	assert.Equal(t, "legacy_gen2_migrated", settings.MarkerKey(2))

	_, err = settings.IsMigrated(ctx, failingStore{}, 1)
	assert.Error(t, err)
}

func TestSettings_Formats(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*settings.Settings)
		expected string
	}{
		{name: "default currency", modify: func(*settings.Settings) {}, expected: "$1,234.50"},
		{name: "currency code", modify: func(s *settings.Settings) { s.CurrencyCode = "EUR" }, expected: "1,234.50 €"},
		{name: "known symbol", modify: func(s *settings.Settings) { s.CurrencySymbol = "£" }, expected: "£1,234.50"},
		{name: "free text symbol", modify: func(s *settings.Settings) { s.CurrencySymbol = "руб." }, expected: "1,234.50 руб."},
		{
			name: "forced position",
			modify: func(s *settings.Settings) {
				s.CurrencyCode = "EUR"
				s.CurrencyPosition = settings.PositionBefore
			},
			expected: "€1,234.50",
		},
		{name: "hidden currency", modify: func(s *settings.Settings) { s.DisplayCurrency = false }, expected: "1,234.50"},
		{
			name:     "three digits",
			modify:   func(s *settings.Settings) { s.MoneyStyle = money.Style{MinFractionDigits: 2, MaxFractionDigits: 3} },
			expected: "$1,234.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := settings.Default()
			tt.modify(&s)
			assert.Equal(t, tt.expected, s.Formats(nil).Money(1234.5).Format())
		})
	}
}
