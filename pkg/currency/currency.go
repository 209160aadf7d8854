// Package currency resolves currency codes stored in settings to the symbol
// and symbol placement used when displaying money values.
package currency

import (
	"slices"
	"strings"
	"sync"

	"github.com/amirasaad/shoplist/pkg/money"
)

const (
	// DefaultCode is the fallback currency code.
	DefaultCode = "USD"
	// DefaultDecimals is the number of fraction digits for unknown currencies.
	DefaultDecimals = 2
)

// Meta holds display metadata of one currency.
type Meta struct {
	Code         string
	Name         string
	Symbol       string
	Decimals     int
	SymbolBefore bool
	Active       bool
}

// Sign returns the money sign used to decorate values in this currency.
func (m Meta) Sign() money.Sign {
	return money.Currency(m.Symbol, m.SymbolBefore)
}

// Registry is a thread-safe lookup of currency metadata by code.
type Registry struct {
	entries map[string]Meta
	mu      sync.RWMutex
}

// NewRegistry creates a registry with a small built-in set of currencies.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]Meta)}
	for _, meta := range []Meta{
		{Code: "USD", Name: "US Dollar", Symbol: "$", Decimals: 2, SymbolBefore: true, Active: true},
		{Code: "EUR", Name: "Euro", Symbol: "€", Decimals: 2, Active: true},
		{Code: "GBP", Name: "British Pound", Symbol: "£", Decimals: 2, SymbolBefore: true, Active: true},
		{Code: "RUB", Name: "Russian Ruble", Symbol: "₽", Decimals: 2, Active: true},
		{Code: "JPY", Name: "Japanese Yen", Symbol: "¥", Decimals: 0, SymbolBefore: true, Active: true},
	} {
		r.Register(meta)
	}
	return r
}

// Register adds or replaces a currency. Codes are case-insensitive.
func (r *Registry) Register(meta Meta) {
	meta.Code = strings.ToUpper(strings.TrimSpace(meta.Code))
	if meta.Code == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[meta.Code] = meta
}

// Get returns the metadata for code. Unknown codes resolve to a currency
// whose symbol is the code itself, placed after the number.
func (r *Registry) Get(code string) Meta {
	code = strings.ToUpper(strings.TrimSpace(code))
	r.mu.RLock()
	defer r.mu.RUnlock()
	if meta, ok := r.entries[code]; ok {
		return meta
	}
	return Meta{Code: code, Symbol: code, Decimals: DefaultDecimals}
}

// IsSupported checks if a currency code is registered.
func (r *Registry) IsSupported(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// BySymbol finds a registered currency by its display symbol.
func (r *Registry) BySymbol(symbol string) (Meta, bool) {
	symbol = strings.TrimSpace(symbol)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, code := range r.codes() {
		if meta := r.entries[code]; meta.Symbol == symbol && meta.Active {
			return meta, true
		}
	}
	return Meta{}, false
}

// List returns the registered codes in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.codes()
}

// Count returns the number of registered currencies.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Registry) codes() []string {
	codes := make([]string, 0, len(r.entries))
	for code := range r.entries {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}
