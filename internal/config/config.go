package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Prefix of every environment variable read by Parse.
const Prefix = "TODOLIST_"

type Config struct {
	Logger  Logger  `envPrefix:"LOGGER_"`
	HTTP    HTTP    `envPrefix:"HTTP_"`
	Storage Storage `envPrefix:"STORAGE_"`
}

type Logger struct {
	Level int `env:"LEVEL" envDefault:"0"`
}

func Parse() (*Config, error) {
	return ParseEnvironment(nil)
}

// ParseEnvironment parses the given variables instead of the process
// environment when environment is not nil.
func ParseEnvironment(environment map[string]string) (*Config, error) {
	conf, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix:      Prefix,
		Environment: environment,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &conf, nil
}
