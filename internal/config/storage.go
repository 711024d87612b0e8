package config

import "time"

type Storage struct {
	// DSN selects the item store backend:
	// memory://, sqlite://<path> or dynamodb://<table>?index=&region=&endpoint=
	DSN   string `env:"DSN,expand" envDefault:"memory://"`
	Cache Cache  `envPrefix:"CACHE_"`
}

type Cache struct {
	Enabled bool          `env:"ENABLED" envDefault:"false"`
	Size    int           `env:"SIZE" envDefault:"1000"`
	TTL     time.Duration `env:"TTL" envDefault:"1m"`
}
