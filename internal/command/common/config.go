package common

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/jacentio/todolist/internal/config"
)

const configMetadataKey = "config"

// LoadConfig parses the environment configuration once per invocation.
func LoadConfig(ctx *cli.Context) (*config.Config, error) {
	app := ctx.App
	if app.Metadata == nil {
		app.Metadata = map[string]any{}
	}

	if conf, ok := app.Metadata[configMetadataKey].(*config.Config); ok {
		return conf, nil
	}

	conf, err := config.Parse()
	if err != nil {
		return nil, errors.Wrap(err, "could not parse config")
	}

	app.Metadata[configMetadataKey] = conf

	return conf, nil
}
