package item

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/jacentio/todolist/internal/api"
	"github.com/jacentio/todolist/internal/service"
	"github.com/jacentio/todolist/store/memory"
	"github.com/jacentio/todolist/todo"
)

type runFunc func(args ...string) error

func newTestApp(t *testing.T) (runFunc, *bytes.Buffer, string) {
	t.Helper()

	svc := service.NewTodoService(memory.New())
	server := httptest.NewServer(api.NewHandler(svc))
	t.Cleanup(server.Close)

	var out bytes.Buffer

	run := func(args ...string) error {
		app := &cli.App{
			Name:           "todolist",
			Writer:         &out,
			Commands:       []*cli.Command{Command()},
			ExitErrHandler: func(*cli.Context, error) {},
		}
		return app.Run(append([]string{"todolist", "item"}, args...))
	}

	return run, &out, server.URL
}

func TestItemCommands(t *testing.T) {
	t.Parallel()

	run, out, serverURL := newTestApp(t)

	err := run("create", "--server-url", serverURL, "--description", "Buy milk", "--owner", "alice")
	require.NoError(t, err)

	var created todo.Item
	require.NoError(t, json.Unmarshal(out.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Buy milk", created.Description)
	assert.Equal(t, "alice", created.Owner)

	out.Reset()
	err = run("update", "--server-url", serverURL, "--description", "Buy oat milk", "--finished", created.ID)
	require.NoError(t, err)

	var updated todo.Item
	require.NoError(t, json.Unmarshal(out.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Buy oat milk", updated.Description)
	assert.True(t, updated.Finished)

	out.Reset()
	err = run("list", "--server-url", serverURL)
	require.NoError(t, err)

	var items []todo.Item
	require.NoError(t, json.Unmarshal(out.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, created.ID, items[0].ID)

	err = run("delete", "--server-url", serverURL, created.ID)
	require.NoError(t, err)

	err = run("get", "--server-url", serverURL, created.ID)
	assert.Error(t, err)
}

func TestItemCommandsRequireID(t *testing.T) {
	t.Parallel()

	run, _, serverURL := newTestApp(t)

	for _, sub := range []string{"get", "delete"} {
		err := run(sub, "--server-url", serverURL)
		assert.EqualError(t, err, "missing item id argument", sub)
	}
}
