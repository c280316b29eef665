package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

func TestBrowseCmd_Use(t *testing.T) {
	assert.Equal(t, "browse [browseId]", browseCmd.Use)
}

func TestBrowseCmd_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{name: "pages", shorthand: "n", defValue: "1"},
		{name: "depth", shorthand: "d", defValue: "3"},
		{name: "params", defValue: ""},
		{name: "save", defValue: ""},
		{name: "resume", defValue: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := browseCmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestBrowseCmd_AcceptsMaxOneArg(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("browse", "a", "b")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts at most 1 arg(s)")
}

func TestBrowseCmd_RequiresIDOrResume(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("browse")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--resume is required")
}

func TestBrowseCmd_FirstPage(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("browse", "FEmusic_home")

	require.NoError(t, err)
	assert.Contains(t, out, "Page 1 (browse)")
	assert.Contains(t, out, "First item")
	assert.NotContains(t, out, "Second item")
}

func TestBrowseCmd_FollowsContinuations(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("browse", "FEmusic_home", "--pages", "5")

	require.NoError(t, err)
	assert.Contains(t, out, "First item")
	assert.Contains(t, out, "Page 2 (browse)")
	assert.Contains(t, out, "Second item")
	assert.NotContains(t, out, "Page 3")
}

func TestBrowseCmd_SaveAndResume(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("browse", "FEmusic_home", "--save", "home")
	require.NoError(t, err)
	assert.Contains(t, out, `Saved bookmark "home" after 1 pages`)

	b := ts.browse.bookmarks["home"]
	require.NotNil(t, b)
	assert.Equal(t, "tok-2", b.Token)
	assert.Equal(t, "FEmusic_home", b.Request.Params["browseId"])
	assert.Empty(t, b.Request.Continuation)

	resetFlags()
	out, err = executeCommand("browse", "--resume", "home")
	require.NoError(t, err)
	assert.Contains(t, out, "Second item")
	assert.NotContains(t, out, "First item")
	assert.Contains(t, out, `Saved bookmark "home" (exhausted after 1 pages)`)

	resetFlags()
	_, err = executeCommand("browse", "--resume", "home")
	assert.ErrorIs(t, err, domain.ErrEndOfSequence)
}

func TestBrowseCmd_ResumeUnknown(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("browse", "--resume", "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBrowseCmd_JSONOutput(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("browse", "FEmusic_home", "-o", "json")

	require.NoError(t, err)
	assert.Contains(t, out, `"endpoint": "browse"`)
	assert.Contains(t, out, `"label": "First item"`)
	assert.Contains(t, out, `"continuation": "tok-2"`)
}

func TestBrowseCmd_YAMLOutput(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("browse", "FEmusic_home", "-o", "yaml")

	require.NoError(t, err)
	assert.Contains(t, out, "endpoint: browse")
	assert.Contains(t, out, "label: First item")
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("search")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_Executes(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("search", "lofi beats")

	require.NoError(t, err)
	assert.Contains(t, out, "First item")
}

func TestKidsCmd_Executes(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("kids", "UCkids")

	require.NoError(t, err)
	assert.Contains(t, out, "Kids video")
	assert.Contains(t, out, "(more items available)")
}

func TestKidsCmd_DepthDefault(t *testing.T) {
	flag := kidsCmd.Flags().Lookup("depth")
	require.NotNil(t, flag)
	assert.Equal(t, "1", flag.DefValue)
}
