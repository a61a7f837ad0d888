// Command omnibar is the entry point. It wires the driven adapters to
// the core services and hands the result to the command tree.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/omnibar/internal/adapters/driven/config/file"
	"github.com/custodia-labs/omnibar/internal/adapters/driven/matcher/fuzzy"
	"github.com/custodia-labs/omnibar/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/omnibar/internal/adapters/driven/watch"
	"github.com/custodia-labs/omnibar/internal/adapters/driving/cli"
	"github.com/custodia-labs/omnibar/internal/connectors/chromium"
	"github.com/custodia-labs/omnibar/internal/connectors/firefox"
	"github.com/custodia-labs/omnibar/internal/connectors/tabexport"
	"github.com/custodia-labs/omnibar/internal/core/ports/driven"
	"github.com/custodia-labs/omnibar/internal/core/services"
	"github.com/custodia-labs/omnibar/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.OnInit(buildServices)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildServices assembles the service layer from the parsed root
// flags. It runs once, before the first command that needs it.
func buildServices(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("opening config store: %w", err)
	}
	cfg, err := configStore.Load()
	if err != nil {
		return nil, err
	}

	sources, err := resolveSources(opts)
	if err != nil {
		return nil, err
	}

	store := memory.NewItemStore()
	searchService, err := services.NewSearchService(store, fuzzy.New(), cfg)
	if err != nil {
		return nil, err
	}

	watcher, err := watch.NewWatcher(0)
	if err != nil {
		return nil, fmt.Errorf("creating profile watcher: %w", err)
	}

	ingestService := services.NewIngestService(store, searchService, watcher, sources, cfg)
	if err := ingestService.IngestAll(context.Background()); err != nil {
		return nil, fmt.Errorf("loading profile data: %w", err)
	}

	return &cli.Services{
		Search:       searchService,
		Ingest:       ingestService,
		ResultAction: services.NewResultActionService(),
	}, nil
}

// resolveSources builds the profile sources named by the flags. With
// no --browser flag the first browser with a readable profile wins.
func resolveSources(opts cli.Options) ([]driven.ProfileSource, error) {
	var sources []driven.ProfileSource

	switch opts.Browser {
	case "chromium", "chrome", "brave", "edge":
		dir, err := chromium.ResolveProfileDir(opts.Profile)
		if err != nil {
			return nil, err
		}
		sources = append(sources, chromium.New(dir))

	case "firefox":
		dir, err := firefox.ResolveProfileDir(opts.Profile)
		if err != nil {
			return nil, err
		}
		sources = append(sources, firefox.New(dir))

	case "":
		if dir, err := chromium.ResolveProfileDir(opts.Profile); err == nil {
			sources = append(sources, chromium.New(dir))
		} else if dir, err := firefox.ResolveProfileDir(opts.Profile); err == nil {
			sources = append(sources, firefox.New(dir))
		} else {
			logger.Debug("No browser profile detected")
		}

	default:
		return nil, fmt.Errorf("unknown browser %q (expected chromium, chrome, brave, edge or firefox)", opts.Browser)
	}

	if opts.TabExport != "" {
		sources = append(sources, tabexport.New(opts.TabExport))
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no browser profile found; use --browser and --profile, or --tabs with an export file")
	}

	return sources, nil
}
