package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "innergraph", rootCmd.Use)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	commandNames := make([]string, 0, len(rootCmd.Commands()))
	for _, cmd := range rootCmd.Commands() {
		commandNames = append(commandNames, cmd.Name())
	}

	for _, name := range []string{"browse", "search", "kids", "track", "formats", "manifest",
		"download", "bookmarks", "settings", "mcp", "version"} {
		assert.Contains(t, commandNames, name)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{name: "verbose", shorthand: "v", defValue: "false"},
		{name: "config", defValue: ""},
		{name: "fixtures", defValue: ""},
		{name: "client", defValue: ""},
		{name: "output", shorthand: "o", defValue: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestRootCmd_RejectsUnknownOutput(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("bookmarks", "-o", "xml")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRootCmd_ErrorsWithoutServices(t *testing.T) {
	defer resetFlags()

	_, err := executeCommand("bookmarks")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestRootCmd_BuildsServices(t *testing.T) {
	ts := &testServices{bookmarks: newMockBookmarkService()}
	var (
		got     Options
		cleaned bool
	)
	build = func(o Options) (*Services, func(), error) {
		got = o
		return &Services{Bookmarks: ts.bookmarks}, func() { cleaned = true }, nil
	}
	defer func() {
		build = nil
		bookmarkService = nil
		opts = Options{}
		resetFlags()
	}()

	out, err := executeCommand("--fixtures", "testdata", "--client", "YTMUSIC", "bookmarks")

	require.NoError(t, err)
	assert.Equal(t, "testdata", got.Fixtures)
	assert.Equal(t, "YTMUSIC", got.Client)
	assert.Contains(t, out, "home")
	assert.True(t, cleaned)
}
