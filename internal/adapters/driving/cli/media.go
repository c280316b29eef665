package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/formats"
	"github.com/custodia-labs/innergraph/internal/core/parser/nodes"
)

// Format selection flags shared by formats, download.
var (
	formatKind      string
	formatQuality   string
	formatCodec     string
	formatContainer string
	formatLanguage  string
	formatFilter    string
	formatChoose    bool
	downloadOutput  string
	trackLyrics     bool
	trackUpNext     bool
	trackAutomix    bool
)

var trackCmd = &cobra.Command{
	Use:   "track [videoId]",
	Short: "Show a music track with its tabs",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrack,
}

var formatsCmd = &cobra.Command{
	Use:   "formats [videoId]",
	Short: "List or choose the media formats of a video",
	Long: `Lists every format of a video's player response.

With --choose the format selector picks one format for the given options.
--filter takes an expression over the format fields, for example
  height >= 720 && container == "mp4"`,
	Args: cobra.ExactArgs(1),
	RunE: runFormats,
}

var manifestCmd = &cobra.Command{
	Use:   "manifest [videoId]",
	Short: "Print a DASH manifest for the adaptive formats of a video",
	Args:  cobra.ExactArgs(1),
	RunE:  runManifest,
}

var downloadCmd = &cobra.Command{
	Use:   "download [videoId]",
	Short: "Download the chosen format of a video",
	Long: `Chooses a format with the same options as 'formats --choose' and streams it.

Output goes to --file, or to stdout when stdout is not a terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&formatKind, "kind", "", "media kind: audio, video or combined")
	cmd.Flags().StringVarP(&formatQuality, "quality", "q", "", "best, bestefficiency or a label such as 720p")
	cmd.Flags().StringVar(&formatCodec, "codec", "", "codec prefix such as avc1, vp9 or opus")
	cmd.Flags().StringVar(&formatContainer, "container", "", "container such as mp4 or webm")
	cmd.Flags().StringVar(&formatLanguage, "language", "", "audio track language")
	cmd.Flags().StringVar(&formatFilter, "filter", "", "filter expression over format fields")
}

func init() {
	trackCmd.Flags().BoolVar(&trackLyrics, "lyrics", false, "fetch the lyrics tab")
	trackCmd.Flags().BoolVar(&trackUpNext, "up-next", false, "fetch the up next queue")
	trackCmd.Flags().BoolVar(&trackAutomix, "automix", false, "replace an inline queue with the automix playlist")

	addFormatFlags(formatsCmd)
	formatsCmd.Flags().BoolVar(&formatChoose, "choose", false, "print only the chosen format")

	manifestCmd.Flags().StringVar(&formatFilter, "filter", "", "filter expression over format fields")

	addFormatFlags(downloadCmd)
	downloadCmd.Flags().StringVarP(&downloadOutput, "file", "O", "", "write to this file")

	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(manifestCmd)
	rootCmd.AddCommand(downloadCmd)
}

func formatOptions() (domain.FormatOptions, error) {
	o := domain.FormatOptions{
		Quality:   formatQuality,
		Codec:     formatCodec,
		Container: formatContainer,
		Language:  formatLanguage,
	}
	if formatKind != "" {
		kind, err := domain.ParseMediaKind(formatKind)
		if err != nil {
			return o, err
		}
		o.Kind = kind
	}
	if formatFilter != "" {
		return formats.WithFilter(o, formatFilter)
	}
	return o, nil
}

// trackOutput is the printable form of a track.
type trackOutput struct {
	ID       string          `json:"id" yaml:"id"`
	Title    string          `json:"title" yaml:"title"`
	Author   string          `json:"author" yaml:"author"`
	Length   int64           `json:"length_seconds" yaml:"length_seconds"`
	Category string          `json:"category,omitempty" yaml:"category,omitempty"`
	Tabs     []string        `json:"tabs,omitempty" yaml:"tabs,omitempty"`
	Formats  int             `json:"formats" yaml:"formats"`
	Lyrics   string          `json:"lyrics,omitempty" yaml:"lyrics,omitempty"`
	Source   string          `json:"lyrics_source,omitempty" yaml:"lyrics_source,omitempty"`
	UpNext   []nodes.Outline `json:"up_next,omitempty" yaml:"up_next,omitempty"`
	Automix  bool            `json:"automix,omitempty" yaml:"automix,omitempty"`
}

func runTrack(cmd *cobra.Command, args []string) error {
	if mediaService == nil {
		return errors.New("media service not configured")
	}
	ctx := cmd.Context()
	t, err := mediaService.Track(ctx, args[0])
	if err != nil {
		return err
	}

	out := trackOutput{
		ID:       t.Basic.ID,
		Title:    t.Basic.Title,
		Author:   t.Basic.Author,
		Length:   t.Basic.LengthSeconds,
		Category: t.Basic.Category,
		Tabs:     t.AvailableTabs(),
		Formats:  len(t.Streaming.All()),
	}
	if trackLyrics {
		shelf, err := t.Lyrics(ctx)
		if err != nil {
			return fmt.Errorf("lyrics: %w", err)
		}
		out.Lyrics = shelf.Description.String()
		out.Source = shelf.Footer.String()
	}
	if trackUpNext || trackAutomix {
		q, err := t.UpNext(ctx, trackAutomix)
		if err != nil {
			return fmt.Errorf("up next: %w", err)
		}
		out.UpNext = nodes.Describe(q.Panel, 1).Children
		out.Automix = q.Automix
	}

	return render(cmd, out, func() {
		cmd.Printf("%s - %s (%ds)\n", out.Title, out.Author, out.Length)
		cmd.Printf("  id: %s  formats: %d\n", out.ID, out.Formats)
		if len(out.Tabs) > 0 {
			cmd.Printf("  tabs: %v\n", out.Tabs)
		}
		if out.Lyrics != "" {
			cmd.Println()
			cmd.Println(out.Lyrics)
			if out.Source != "" {
				cmd.Printf("  (%s)\n", out.Source)
			}
		}
		if len(out.UpNext) > 0 {
			cmd.Println()
			cmd.Println("Up next:")
			for _, o := range out.UpNext {
				printOutline(cmd, o, 1)
			}
		}
	})
}

func runFormats(cmd *cobra.Command, args []string) error {
	if mediaService == nil {
		return errors.New("media service not configured")
	}
	ctx := cmd.Context()

	if formatChoose {
		o, err := formatOptions()
		if err != nil {
			return err
		}
		f, err := mediaService.Choose(ctx, args[0], o)
		if err != nil {
			return chooseError(cmd, err)
		}
		row := toRow(f)
		return render(cmd, row, func() { printRow(cmd, row) })
	}

	sd, err := mediaService.Formats(ctx, args[0])
	if err != nil {
		return err
	}
	all := sd.All()
	rows := make([]formatRow, len(all))
	for i := range all {
		rows[i] = toRow(all[i])
	}
	return render(cmd, rows, func() {
		for _, r := range rows {
			printRow(cmd, r)
		}
	})
}

// chooseError prints why each candidate was rejected before returning err.
func chooseError(cmd *cobra.Command, err error) error {
	var nm *domain.NoMatchingFormatError
	if errors.As(err, &nm) && outputFormat == "text" {
		for _, r := range nm.Rejected {
			cmd.PrintErrf("  itag %d: %v\n", r.Format.Itag, r.Reason)
		}
	}
	return err
}

func runManifest(cmd *cobra.Command, args []string) error {
	if mediaService == nil {
		return errors.New("media service not configured")
	}
	mpd, err := mediaService.Manifest(cmd.Context(), args[0], formatFilter)
	if err != nil {
		return err
	}
	cmd.Print(mpd)
	return nil
}

func runDownload(cmd *cobra.Command, args []string) error {
	if mediaService == nil {
		return errors.New("media service not configured")
	}
	o, err := formatOptions()
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if downloadOutput != "" {
		f, err := os.Create(downloadOutput)
		if err != nil {
			return fmt.Errorf("create %s: %w", downloadOutput, err)
		}
		defer f.Close()
		w = f
	} else if isTerminal(w) {
		return errors.New("refusing to write media to a terminal; use --file or redirect stdout")
	}

	progress := func(int64, int64) {}
	if isTerminal(cmd.ErrOrStderr()) {
		progress = func(written, total int64) {
			if total > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "\r%5.1f%% of %d bytes", float64(written)*100/float64(total), total)
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "\r%d bytes", written)
			}
		}
	}

	f, n, err := mediaService.Download(cmd.Context(), args[0], o, w, progress)
	if err != nil {
		return chooseError(cmd, err)
	}
	if downloadOutput != "" {
		cmd.PrintErrf("\nwrote %d bytes of itag %d to %s\n", n, f.Itag, downloadOutput)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
