package infra

import (
	"errors"
	"strings"
	"time"

	"github.com/amirasaad/shoplist/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// IsPostgresDSN reports whether url selects the postgres driver. Anything
// else is a sqlite file path.
func IsPostgresDSN(url string) bool {
	return strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")
}

// NewDBConnection opens the canonical store.
func NewDBConnection(
	cnf *config.DB,
	appEnv string,
) (*gorm.DB, error) {
	if cnf == nil || cnf.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	databaseUrl := cnf.Url

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Warn
	} else {
		logMode = logger.Silent
	}

	dialector := sqlite.Open(databaseUrl)
	if IsPostgresDSN(databaseUrl) {
		dialector = postgres.Open(databaseUrl)
	}

	connection, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	if IsPostgresDSN(databaseUrl) {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(1 * time.Hour)
	} else {
		// A single writer avoids SQLITE_BUSY inside transactions.
		sqlDB.SetMaxOpenConns(1)
	}

	return connection, nil
}
