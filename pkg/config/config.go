package config

import (
	"time"
)

type DB struct {
	// Url is a postgres:// DSN or a sqlite file path.
	Url string `envconfig:"URL" default:"shoplist.db" validate:"required"`
}

// Legacy locates the on-device files of older generations. An empty path
// means the generation is absent.
type Legacy struct {
	Gen1Database    string `envconfig:"GEN1_DATABASE"`
	Gen1Preferences string `envconfig:"GEN1_PREFERENCES"`
	Gen2Database    string `envconfig:"GEN2_DATABASE"`
}

// Redis configures the preference cache. With no URL an in-memory cache is
// used.
type Redis struct {
	URL          string        `envconfig:"URL" validate:"omitempty,url"`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"shoplist:pref:"`
	TTL          time.Duration `envconfig:"TTL" default:"10m" validate:"gte=0"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10" validate:"gte=1"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text" validate:"oneof=json text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[shoplist]"`
}

type App struct {
	Env    string  `envconfig:"APP_ENV" default:"development" validate:"oneof=development test production"`
	Log    *Log    `envconfig:"LOG" validate:"required"`
	DB     *DB     `envconfig:"DATABASE" validate:"required"`
	Legacy *Legacy `envconfig:"LEGACY" validate:"required"`
	Redis  *Redis  `envconfig:"REDIS" validate:"required"`
}
