package item

import (
	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "item",
		Usage: "Manage to-do items on a remote server",
		Subcommands: []*cli.Command{
			GetCommand(),
			ListCommand(),
			CreateCommand(),
			UpdateCommand(),
			DeleteCommand(),
		},
	}
}
