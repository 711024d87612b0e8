package common

import (
	"net/url"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/jacentio/todolist/client"
)

const (
	FlagServerURL = "server-url"
	FlagDSN       = "dsn"
)

func WithServerFlags(flags ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:    FlagServerURL,
			Aliases: []string{"u"},
			EnvVars: []string{"TODOLIST_SERVER_URL"},
			Value:   "http://localhost:8080",
			Usage:   "The todolist server base url",
		},
	}, flags...)
}

func GetClient(ctx *cli.Context) (*client.Client, error) {
	rawURL := ctx.String(FlagServerURL)

	baseURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse server url '%s'", rawURL)
	}

	return client.New(client.WithBaseURL(baseURL)), nil
}

// DSNFlag overrides the storage DSN of the configuration.
func DSNFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  FlagDSN,
		Usage: "Item store DSN (memory://, sqlite://<path>, dynamodb://<table>?region=&endpoint=); defaults to TODOLIST_STORAGE_DSN",
	}
}
