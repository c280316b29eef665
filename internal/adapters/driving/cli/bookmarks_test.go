package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

func TestBookmarksCmd_HasSubcommands(t *testing.T) {
	commandNames := make([]string, 0, len(bookmarksCmd.Commands()))
	for _, cmd := range bookmarksCmd.Commands() {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "delete")
}

func TestBookmarksListCmd_Text(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("bookmarks", "list")

	require.NoError(t, err)
	assert.Regexp(t, `done\s+exhausted\s+4 pages`, out)
	assert.Regexp(t, `home\s+resumable\s+2 pages`, out)
}

func TestBookmarksListCmd_Empty(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.bookmarks.bookmarks = nil

	out, err := executeCommand("bookmarks")

	require.NoError(t, err)
	assert.Contains(t, out, "No bookmarks.")
}

func TestBookmarksShowCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("bookmarks", "show", "home", "-o", "json")

	require.NoError(t, err)
	assert.Contains(t, out, `"name": "home"`)
	assert.Contains(t, out, `"token": "tok-3"`)
	assert.Contains(t, out, `"updated": "2026-03-01T12:00:00Z"`)
}

func TestBookmarksShowCmd_NotFound(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("bookmarks", "show", "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookmarksDeleteCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("bookmarks", "delete", "home")

	require.NoError(t, err)
	assert.Contains(t, out, `Deleted bookmark "home"`)
	assert.Equal(t, []string{"home"}, ts.bookmarks.deleted)
}
