package table

import (
	"log/slog"
	"net/url"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/jacentio/todolist/internal/command/common"
	"github.com/jacentio/todolist/internal/setup"
	"github.com/jacentio/todolist/store"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "create-table",
		Usage: "Create the DynamoDB items table and its id index",
		Flags: []cli.Flag{
			common.DSNFlag(),
		},
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			conf, err := common.LoadConfig(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			dsn := conf.Storage.DSN
			if flagDSN := cCtx.String(common.FlagDSN); flagDSN != "" {
				dsn = flagDSN
			}

			u, err := url.Parse(dsn)
			if err != nil {
				return errors.Wrap(err, "could not parse dsn")
			}

			if u.Scheme != "dynamodb" {
				return errors.Errorf("create-table needs a dynamodb:// dsn, got '%s'", u.Scheme)
			}

			client, err := setup.NewDynamoDBClient(ctx, u)
			if err != nil {
				return errors.WithStack(err)
			}

			storeConfig := setup.DynamoDBStoreConfig(u)

			if err := store.CreateTable(ctx, client, storeConfig); err != nil {
				return errors.WithStack(err)
			}

			slog.InfoContext(ctx, "table ready",
				slog.String("table", storeConfig.TableName),
				slog.String("index", storeConfig.IDIndexName),
			)

			return nil
		},
	}
}
