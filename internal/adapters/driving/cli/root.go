// Package cli implements the cobra command tree. Commands talk to the
// core exclusively through the driving ports; the composition root in
// cmd/omnibar injects the services before Execute runs.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/omnibar/internal/core/ports/driving"
	"github.com/custodia-labs/omnibar/internal/logger"
)

// version is the build version, overridden at link time.
var version = "dev"

// SetVersion overrides the reported build version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Services bundles the driving ports the commands call.
type Services struct {
	Search       driving.SearchService
	Ingest       driving.IngestService
	ResultAction driving.ResultActionService
}

var (
	searchService driving.SearchService
	ingestService driving.IngestService
	actionService driving.ResultActionService
)

// SetServices injects the driving ports.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	searchService = s.Search
	ingestService = s.Ingest
	actionService = s.ResultAction
}

// Options carries the parsed root flags to the initialiser.
type Options struct {
	ConfigPath string
	Browser    string
	Profile    string
	TabExport  string
	Verbose    bool
}

// initFn builds the services once the root flags are parsed. Set by
// the composition root via OnInit.
var initFn func(opts Options) (*Services, error)

// OnInit registers the service initialiser. It runs once, before the
// first command that needs services.
func OnInit(fn func(opts Options) (*Services, error)) {
	initFn = fn
}

var (
	flagVerbose   bool
	flagConfig    string
	flagBrowser   string
	flagProfile   string
	flagTabExport string
)

var rootCmd = &cobra.Command{
	Use:   "omnibar",
	Short: "Search bookmarks, open tabs and history from the terminal",
	Long: `Omnibar indexes a browser profile's bookmarks, open tabs and browsing
history and searches them the way a browser address bar does: incremental
matching, typo tolerance, tag and folder filters, and web-search fallbacks
when nothing local matches.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		if !needsServices(cmd) || searchService != nil || initFn == nil {
			return nil
		}
		services, err := initFn(Options{
			ConfigPath: flagConfig,
			Browser:    flagBrowser,
			Profile:    flagProfile,
			TabExport:  flagTabExport,
			Verbose:    flagVerbose,
		})
		if err != nil {
			return err
		}
		SetServices(services)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to the config directory")
	rootCmd.PersistentFlags().StringVar(&flagBrowser, "browser", "", "browser to read (chromium, firefox; default: auto-detect)")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "browser profile name")
	rootCmd.PersistentFlags().StringVar(&flagTabExport, "tabs", "", "path to a tab export JSON file")
}

// needsServices reports whether a command talks to the core. Version
// and help work without a browser profile.
func needsServices(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return false
	default:
		return true
	}
}

// errNotConfigured is returned when a command runs without injected
// services, which only happens in tests or a broken composition root.
var errNotConfigured = errors.New("services not configured")

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}
