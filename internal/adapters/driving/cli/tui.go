package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/omnibar/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive search UI",
	Long: `Launch the interactive terminal user interface.

Results update as you type. Profile changes are picked up live while
the UI is running.

Controls:
  ↑/↓      - Navigate results
  Enter    - Open the selected result in the browser
  Ctrl+Y   - Copy the selected URL
  Tab      - Cycle search mode
  Esc      - Clear / Quit
  Ctrl+C   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Panic recovery keeps a stack trace visible after the alt screen
	// is torn down.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// The TUI is long-running, so profile changes reload live.
	if ingestService != nil {
		go func() {
			if err := ingestService.Watch(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "profile watcher stopped: %v\n", err)
			}
		}()
	}

	app, err := tui.NewApp(&tui.Ports{
		Search:       searchService,
		ResultAction: actionService,
	})
	if err != nil {
		return fmt.Errorf("creating TUI: %w", err)
	}
	app.WithContext(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
