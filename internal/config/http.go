package config

import "time"

type HTTP struct {
	Address            string        `env:"ADDRESS,expand" envDefault:":8080"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	RateLimit          RateLimit     `envPrefix:"RATE_LIMIT_"`
}

type RateLimit struct {
	Enabled      bool          `env:"ENABLED" envDefault:"false"`
	Interval     time.Duration `env:"INTERVAL" envDefault:"100ms"`
	MaxBurst     int           `env:"MAX_BURST" envDefault:"20"`
	CacheSize    int           `env:"CACHE_SIZE" envDefault:"1024"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	TrustHeaders bool          `env:"TRUST_HEADERS" envDefault:"false"`
}
