// Package main is the innergraph command.
package main

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/innergraph/internal/adapters/driven/config/file"
	"github.com/custodia-labs/innergraph/internal/adapters/driven/fixture"
	"github.com/custodia-labs/innergraph/internal/adapters/driven/innertube"
	"github.com/custodia-labs/innergraph/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/innergraph/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/innergraph/internal/adapters/driving/cli"
	"github.com/custodia-labs/innergraph/internal/core/aggregates"
	"github.com/custodia-labs/innergraph/internal/core/parser/nodes"
	"github.com/custodia-labs/innergraph/internal/core/ports/driven"
	"github.com/custodia-labs/innergraph/internal/core/services"
	"github.com/custodia-labs/innergraph/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// accessTokenEnv names the variable holding an optional bearer token.
const accessTokenEnv = "INNERGRAPH_ACCESS_TOKEN"

func main() {
	if err := cli.Execute(version, build); err != nil {
		os.Exit(1)
	}
}

// build wires the driven adapters into the core services.
func build(opts cli.Options) (*cli.Services, func(), error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open config: %w", err)
	}
	settings := services.LoadSettings(configStore)
	if opts.Client != "" {
		settings.Client.Name = opts.Client
	}

	var (
		transport driven.Transport
		streamer  = innertube.NewDownloader(nil, 0)
	)
	if opts.Fixtures != "" {
		logger.Debug("serving requests from fixtures in %s", opts.Fixtures)
		transport = fixture.New(opts.Fixtures)
	} else {
		cfg := innertube.ConfigFromSettings(settings)
		if tok := os.Getenv(accessTokenEnv); tok != "" {
			cfg.TokenSource = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tok, TokenType: "Bearer"})
		}
		client, err := innertube.NewClient(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("create transport: %w", err)
		}
		streamer.WithRateLimiter(client.Limiter())
		transport = client
	}

	var (
		bookmarks driven.BookmarkStore
		closers   []func() error
	)
	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		logger.Warn("bookmark database unavailable, bookmarks will not persist: %v", err)
		bookmarks = memory.NewBookmarkStore()
	} else {
		bookmarks = store.BookmarkStore()
		closers = append(closers, store.Close)
	}

	loader := aggregates.NewLoader(transport, nodes.NewBuilder())

	media := services.NewMediaService(loader, innertube.PlainResolver{}, streamer)
	media.SetClient(settings.Client.Name)
	media.SetDefaults(settings.Formats)

	svc := &cli.Services{
		Browse:    services.NewBrowseService(loader, bookmarks),
		Media:     media,
		Bookmarks: services.NewBookmarkService(bookmarks),
		Settings:  services.NewSettingsService(configStore),
	}

	cleanup := func() {
		var err error
		for _, c := range closers {
			err = multierr.Append(err, c())
		}
		if err != nil {
			logger.Warn("cleanup: %v", err)
		}
	}
	return svc, cleanup, nil
}
