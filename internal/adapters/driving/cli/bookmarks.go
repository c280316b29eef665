package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

var bookmarksCmd = &cobra.Command{
	Use:     "bookmarks",
	Aliases: []string{"bookmark"},
	Short:   "Manage saved result-set positions",
	Long: `Bookmarks record the request and continuation token of a result set so
'innergraph browse --resume NAME' can continue where a previous run stopped.`,
	RunE: runBookmarksList,
}

var bookmarksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarks",
	RunE:  runBookmarksList,
}

var bookmarksShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarksShow,
}

var bookmarksDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarksDelete,
}

func init() {
	bookmarksCmd.AddCommand(bookmarksListCmd)
	bookmarksCmd.AddCommand(bookmarksShowCmd)
	bookmarksCmd.AddCommand(bookmarksDeleteCmd)
	rootCmd.AddCommand(bookmarksCmd)
}

// bookmarkOutput is the printable form of a bookmark.
type bookmarkOutput struct {
	Name      string `json:"name" yaml:"name"`
	Request   string `json:"request" yaml:"request"`
	Pages     int    `json:"pages" yaml:"pages"`
	Exhausted bool   `json:"exhausted" yaml:"exhausted"`
	Token     string `json:"token,omitempty" yaml:"token,omitempty"`
	Updated   string `json:"updated" yaml:"updated"`
}

func toBookmarkOutput(b *domain.Bookmark) bookmarkOutput {
	return bookmarkOutput{
		Name:      b.Name,
		Request:   b.Request.String(),
		Pages:     b.Pages,
		Exhausted: b.Exhausted(),
		Token:     b.Token,
		Updated:   b.UpdatedAt.Format(time.RFC3339),
	}
}

func runBookmarksList(cmd *cobra.Command, _ []string) error {
	if bookmarkService == nil {
		return errors.New("bookmark service not configured")
	}
	list, err := bookmarkService.List(cmd.Context())
	if err != nil {
		return err
	}
	out := make([]bookmarkOutput, len(list))
	for i := range list {
		out[i] = toBookmarkOutput(&list[i])
	}
	return render(cmd, out, func() {
		if len(out) == 0 {
			cmd.Println("No bookmarks.")
			return
		}
		for _, b := range out {
			state := "resumable"
			if b.Exhausted {
				state = "exhausted"
			}
			cmd.Printf("  %-16s  %-9s  %3d pages  %s\n", b.Name, state, b.Pages, b.Request)
		}
	})
}

func runBookmarksShow(cmd *cobra.Command, args []string) error {
	if bookmarkService == nil {
		return errors.New("bookmark service not configured")
	}
	b, err := bookmarkService.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	out := toBookmarkOutput(b)
	return render(cmd, out, func() {
		cmd.Printf("Name:      %s\n", out.Name)
		cmd.Printf("Request:   %s\n", out.Request)
		cmd.Printf("Pages:     %d\n", out.Pages)
		cmd.Printf("Exhausted: %t\n", out.Exhausted)
		cmd.Printf("Updated:   %s\n", out.Updated)
	})
}

func runBookmarksDelete(cmd *cobra.Command, args []string) error {
	if bookmarkService == nil {
		return errors.New("bookmark service not configured")
	}
	if err := bookmarkService.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Deleted bookmark %q\n", args[0])
	return nil
}
