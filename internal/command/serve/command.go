package serve

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/jacentio/todolist/internal/command/common"
	"github.com/jacentio/todolist/internal/setup"
)

const flagAddress = "address"

func Command() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagAddress,
				Aliases: []string{"a"},
				Usage:   "Listen address; defaults to TODOLIST_HTTP_ADDRESS",
			},
			common.DSNFlag(),
		},
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			conf, err := common.LoadConfig(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			if address := cCtx.String(flagAddress); address != "" {
				conf.HTTP.Address = address
			}
			if dsn := cCtx.String(common.FlagDSN); dsn != "" {
				conf.Storage.DSN = dsn
			}

			slog.DebugContext(ctx, "using configuration", slog.Any("config", conf))

			server, err := setup.NewHTTPServerFromConfig(ctx, conf)
			if err != nil {
				return errors.Wrap(err, "could not setup http server")
			}

			slog.InfoContext(ctx, "starting server", slog.String("address", conf.HTTP.Address))

			if err := server.Run(ctx); err != nil {
				return errors.Wrap(err, "could not run server")
			}

			return nil
		},
	}
}
