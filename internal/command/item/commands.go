package item

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/jacentio/todolist/internal/command/common"
	"github.com/jacentio/todolist/todo"
)

const (
	flagDescription = "description"
	flagOwner       = "owner"
	flagFinished    = "finished"
)

func itemFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     flagDescription,
			Aliases:  []string{"d"},
			Usage:    "Item description",
			Required: true,
		},
		&cli.StringFlag{
			Name:    flagOwner,
			Aliases: []string{"o"},
			Usage:   "Item owner",
		},
		&cli.BoolFlag{
			Name:  flagFinished,
			Usage: "Mark the item as finished",
		},
	}
}

func requireID(cCtx *cli.Context) (string, error) {
	id := cCtx.Args().First()
	if id == "" {
		return "", errors.New("missing item id argument")
	}
	return id, nil
}

func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Retrieve an item by id",
		ArgsUsage: "<id>",
		Flags:     common.WithServerFlags(),
		Action: func(cCtx *cli.Context) error {
			id, err := requireID(cCtx)
			if err != nil {
				return err
			}

			client, err := common.GetClient(cCtx)
			if err != nil {
				return err
			}

			item, err := client.Get(cCtx.Context, id)
			if err != nil {
				return errors.Wrapf(err, "could not get item '%s'", id)
			}

			return printJSON(cCtx.App.Writer, item)
		},
	}
}

func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List all items, most recently updated first",
		Flags: common.WithServerFlags(),
		Action: func(cCtx *cli.Context) error {
			client, err := common.GetClient(cCtx)
			if err != nil {
				return err
			}

			items, err := client.List(cCtx.Context)
			if err != nil {
				return errors.Wrap(err, "could not list items")
			}

			return printJSON(cCtx.App.Writer, items)
		},
	}
}

func CreateCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a new item",
		Flags: common.WithServerFlags(itemFlags()...),
		Action: func(cCtx *cli.Context) error {
			client, err := common.GetClient(cCtx)
			if err != nil {
				return err
			}

			item, err := client.Create(cCtx.Context, todo.Item{
				Description: cCtx.String(flagDescription),
				Owner:       cCtx.String(flagOwner),
				Finished:    cCtx.Bool(flagFinished),
			})
			if err != nil {
				return errors.Wrap(err, "could not create item")
			}

			return printJSON(cCtx.App.Writer, item)
		},
	}
}

func UpdateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Replace the fields of an existing item",
		ArgsUsage: "<id>",
		Flags:     common.WithServerFlags(itemFlags()...),
		Action: func(cCtx *cli.Context) error {
			id, err := requireID(cCtx)
			if err != nil {
				return err
			}

			client, err := common.GetClient(cCtx)
			if err != nil {
				return err
			}

			item, err := client.Update(cCtx.Context, todo.Item{
				ID:          id,
				Description: cCtx.String(flagDescription),
				Owner:       cCtx.String(flagOwner),
				Finished:    cCtx.Bool(flagFinished),
			})
			if err != nil {
				return errors.Wrapf(err, "could not update item '%s'", id)
			}

			return printJSON(cCtx.App.Writer, item)
		},
	}
}

func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete an item by id",
		ArgsUsage: "<id>",
		Flags:     common.WithServerFlags(),
		Action: func(cCtx *cli.Context) error {
			id, err := requireID(cCtx)
			if err != nil {
				return err
			}

			client, err := common.GetClient(cCtx)
			if err != nil {
				return err
			}

			if err := client.Delete(cCtx.Context, id); err != nil {
				return errors.Wrapf(err, "could not delete item '%s'", id)
			}

			return nil
		},
	}
}
