// Package cli provides the cobra command tree of innergraph.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/innergraph/internal/core/ports/driving"
	"github.com/custodia-labs/innergraph/internal/logger"
)

// version is set by Execute.
var version = "dev"

// Options are the global flags handed to the service builder.
type Options struct {
	// ConfigDir overrides the config directory (~/.innergraph).
	ConfigDir string

	// Fixtures, when set, serves requests from a fixture directory instead of the network.
	Fixtures string

	// Client overrides the configured client profile.
	Client string
}

// Services are the driving ports the commands call.
type Services struct {
	Browse    driving.BrowseService
	Media     driving.MediaService
	Bookmarks driving.BookmarkService
	Settings  driving.SettingsService
}

// BuildFunc wires the services for the parsed global flags.
// The returned cleanup releases stores and connections.
type BuildFunc func(opts Options) (*Services, func(), error)

// Global flags.
var (
	verbose      bool
	opts         Options
	outputFormat string
)

// Driving ports, set by the builder before a command runs or injected by tests.
var (
	browseService   driving.BrowseService
	mediaService    driving.MediaService
	bookmarkService driving.BookmarkService
	settingsService driving.SettingsService
)

var (
	build   BuildFunc
	cleanup = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "innergraph",
	Short: "Browse innertube-style endpoints as a typed node graph",
	Long: `innergraph fetches pages from innertube-style endpoints, parses them into
a typed node graph, follows continuation tokens across pages and negotiates
among the media formats of a player response.

Use --fixtures to answer requests from recorded response files.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
		cleanup = func() {}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.ConfigDir, "config", "", "config directory (default ~/.innergraph)")
	rootCmd.PersistentFlags().StringVar(&opts.Fixtures, "fixtures", "", "serve requests from a fixture directory")
	rootCmd.PersistentFlags().StringVar(&opts.Client, "client", "", "client profile (WEB, YTMUSIC, YTKIDS, ANDROID)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, yaml or json")
}

// setup configures logging and builds the services unless they were injected.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())
	if err := validateOutput(outputFormat); err != nil {
		return err
	}
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}
	if browseService != nil || mediaService != nil || settingsService != nil || bookmarkService != nil {
		return nil
	}
	if build == nil {
		return errors.New("services not configured")
	}

	svc, done, err := build(opts)
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	browseService = svc.Browse
	mediaService = svc.Media
	bookmarkService = svc.Bookmarks
	settingsService = svc.Settings
	if done != nil {
		cleanup = done
	}
	return nil
}

// Execute runs the command tree with services from b.
func Execute(v string, b BuildFunc) error {
	if v != "" {
		version = v
	}
	build = b
	return rootCmd.Execute()
}
