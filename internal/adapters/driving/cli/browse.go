package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/pagination"
	"github.com/custodia-labs/innergraph/internal/core/parser"
	"github.com/custodia-labs/innergraph/internal/core/parser/nodes"
)

var (
	browsePages  int
	browseDepth  int
	browseParams string
	browseSave   string
	browseResume string
	kidsDepth    int
)

var browseCmd = &cobra.Command{
	Use:   "browse [browseId]",
	Short: "Browse a page and follow its continuations",
	Long: `Fetches a browse page, parses it into a node graph and prints an outline.

With --pages greater than one the continuation token of each page is followed.
--save records where the result set stopped so that --resume can pick it up later.`,
	Example: `  innergraph browse FEmusic_home --pages 2 --save home
  innergraph browse --resume home`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search and print the result outline",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var kidsCmd = &cobra.Command{
	Use:   "kids [channelId]",
	Short: "Show a channel with the kids client",
	Args:  cobra.ExactArgs(1),
	RunE:  runKids,
}

func init() {
	for _, cmd := range []*cobra.Command{browseCmd, searchCmd} {
		cmd.Flags().IntVarP(&browsePages, "pages", "n", 1, "number of pages to fetch")
		cmd.Flags().IntVarP(&browseDepth, "depth", "d", 3, "outline depth (-1 for all)")
		cmd.Flags().StringVar(&browseParams, "params", "", "opaque params sent with the request")
		cmd.Flags().StringVar(&browseSave, "save", "", "save a bookmark with this name")
	}
	browseCmd.Flags().StringVar(&browseResume, "resume", "", "resume from the named bookmark")
	kidsCmd.Flags().IntVarP(&kidsDepth, "depth", "d", 1, "outline depth (-1 for all)")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(kidsCmd)
}

// pageOutput is the printable form of one fetched page.
type pageOutput struct {
	Page         int             `json:"page" yaml:"page"`
	Endpoint     string          `json:"endpoint" yaml:"endpoint"`
	Header       []nodes.Outline `json:"header,omitempty" yaml:"header,omitempty"`
	Contents     []nodes.Outline `json:"contents,omitempty" yaml:"contents,omitempty"`
	Continuation string          `json:"continuation,omitempty" yaml:"continuation,omitempty"`
}

func newPageOutput(n int, p *parser.Page) pageOutput {
	contents := p.Contents
	if contents.Empty() {
		contents = p.ContinuationContents
	}
	if contents.Empty() {
		contents = p.Actions
	}
	return pageOutput{
		Page:         n,
		Endpoint:     p.Endpoint,
		Header:       nodes.DescribeAll(p.Header, browseDepth),
		Contents:     nodes.DescribeAll(contents, browseDepth),
		Continuation: p.Continuation,
	}
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if browseService == nil {
		return errors.New("browse service not configured")
	}
	ctx := cmd.Context()

	var (
		req    domain.FetchRequest
		cursor *pagination.Cursor
	)
	switch {
	case browseResume != "":
		c, b, err := browseService.Resume(ctx, browseResume)
		if err != nil {
			return err
		}
		req, cursor = b.Request, c
		if len(args) == 1 {
			return errors.New("--resume cannot be combined with a browse id")
		}
		if browseSave == "" {
			browseSave = browseResume
		}
	case len(args) == 1:
		params := map[string]any{"browseId": args[0]}
		if browseParams != "" {
			params["params"] = browseParams
		}
		req = domain.FetchRequest{Endpoint: domain.EndpointBrowse, Client: opts.Client, Params: params}
		cursor = browseService.Cursor(req)
	default:
		return errors.New("a browse id or --resume is required")
	}

	return walk(cmd, req, cursor)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if browseService == nil {
		return errors.New("browse service not configured")
	}
	params := map[string]any{"query": args[0]}
	if browseParams != "" {
		params["params"] = browseParams
	}
	req := domain.FetchRequest{Endpoint: domain.EndpointSearch, Client: opts.Client, Params: params}
	return walk(cmd, req, browseService.Cursor(req))
}

// walk advances cursor up to browsePages times, printing each page, then
// saves a bookmark when --save is set.
func walk(cmd *cobra.Command, req domain.FetchRequest, cursor *pagination.Cursor) error {
	ctx := cmd.Context()
	var out []pageOutput
	for i := 0; i < browsePages; i++ {
		page, err := cursor.Advance(ctx)
		if domain.IsEndOfSequence(err) {
			break
		}
		if err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
		out = append(out, newPageOutput(cursor.Pages(), page))
	}

	err := render(cmd, out, func() {
		if len(out) == 0 {
			cmd.Println("No more pages.")
		}
		for _, p := range out {
			cmd.Printf("Page %d (%s)\n", p.Page, p.Endpoint)
			for _, o := range p.Header {
				printOutline(cmd, o, 1)
			}
			for _, o := range p.Contents {
				printOutline(cmd, o, 1)
			}
			cmd.Println()
		}
	})
	if err != nil {
		return err
	}

	if browseSave != "" {
		b, err := browseService.SaveBookmark(ctx, browseSave, req, cursor)
		if err != nil {
			return err
		}
		if outputFormat == "text" {
			if b.Exhausted() {
				cmd.Printf("Saved bookmark %q (exhausted after %d pages)\n", b.Name, b.Pages)
			} else {
				cmd.Printf("Saved bookmark %q after %d pages\n", b.Name, b.Pages)
			}
		}
	}
	return nil
}

// kidsOutput is the printable form of a kids channel.
type kidsOutput struct {
	Header       *nodes.Outline  `json:"header,omitempty" yaml:"header,omitempty"`
	Items        []nodes.Outline `json:"items" yaml:"items"`
	Continuation string          `json:"continuation,omitempty" yaml:"continuation,omitempty"`
}

func runKids(cmd *cobra.Command, args []string) error {
	if browseService == nil {
		return errors.New("browse service not configured")
	}
	ch, err := browseService.KidsChannel(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := kidsOutput{
		Items:        nodes.DescribeAll(ch.Items(), kidsDepth),
		Continuation: ch.ContinuationToken(),
	}
	if ch.Header != nil {
		h := nodes.Describe(ch.Header, 0)
		out.Header = &h
	}
	return render(cmd, out, func() {
		if out.Header != nil {
			printOutline(cmd, *out.Header, 0)
		}
		for _, o := range out.Items {
			printOutline(cmd, o, 1)
		}
		if out.Continuation != "" {
			cmd.Println("(more items available)")
		}
	})
}
