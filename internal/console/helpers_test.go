package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/todolist/internal/domain/activity"
	"github.com/rpggio/todolist/internal/domain/item"
	"github.com/rpggio/todolist/internal/memory"
)

func init() {
	color.NoColor = true
}

// runScript runs the menu over scripted input lines and returns its output.
func runScript(t *testing.T, store *item.Service, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := NewLineReader(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	require.NoError(t, NewMenu(store, in, &out, nil).Run(context.Background()))
	return out.String()
}

func newStore(t *testing.T) *item.Service {
	t.Helper()
	return item.NewService(memory.NewItemRepository(), activity.NewService(memory.NewActivityRepository(), nil), nil)
}

func seed(t *testing.T, store *item.Service, title, description string) {
	t.Helper()
	_, err := store.Create(context.Background(), item.CreateRequest{Title: title, Description: description})
	require.NoError(t, err)
}
