package config

import (
	"log/slog"

	"github.com/amirasaad/shoplist/pkg/cache"
	"github.com/amirasaad/shoplist/pkg/currency"
	"github.com/amirasaad/shoplist/pkg/domain/shopping"
	"github.com/amirasaad/shoplist/pkg/legacy"
	"github.com/amirasaad/shoplist/pkg/repository"
	"github.com/amirasaad/shoplist/pkg/settings"
)

// Deps holds all infrastructure dependencies for building the services.
type Deps struct {
	Uow              repository.UnitOfWork
	Preferences      settings.Store
	PreferenceCache  cache.PreferenceCache
	Settings         settings.Settings
	Formats          shopping.Formats
	CurrencyRegistry *currency.Registry
	Sources          []legacy.Source
	Logger           *slog.Logger
	Config           *App
	// Close releases the database and cache connections.
	Close func() error
}
