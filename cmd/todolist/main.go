package main

import (
	"github.com/jacentio/todolist/internal/command"
	"github.com/jacentio/todolist/internal/command/item"
	"github.com/jacentio/todolist/internal/command/serve"
	"github.com/jacentio/todolist/internal/command/table"
)

func main() {
	command.Main(
		"todolist",
		"To-do list service and client",
		serve.Command(),
		table.Command(),
		item.Command(),
	)
}
