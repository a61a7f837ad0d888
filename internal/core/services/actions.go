package services

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/custodia-labs/omnibar/internal/core/domain"
	"github.com/custodia-labs/omnibar/internal/core/ports/driving"
	"github.com/custodia-labs/omnibar/internal/logger"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure ResultActionService implements the interface.
var _ driving.ResultActionService = (*ResultActionService)(nil)

// ResultActionService provides actions on search results.
type ResultActionService struct {
	// run executes a prepared command. Tests replace it.
	run func(cmd *exec.Cmd) error
}

// NewResultActionService creates a new result action service.
func NewResultActionService() *ResultActionService {
	return &ResultActionService{
		run: func(cmd *exec.Cmd) error { return cmd.Run() },
	}
}

// Open opens the result's target in the default browser. Synthetic
// entries resolve to the URL they were built around.
func (s *ResultActionService) Open(ctx context.Context, result *domain.Result) error {
	if result == nil {
		return fmt.Errorf("%w: result is nil", domain.ErrInvalidInput)
	}

	target := result.Item.OriginalURL
	if target == "" {
		return fmt.Errorf("%w: result has no URL", domain.ErrInvalidInput)
	}

	logger.Debug("Opening %s", target)
	cmd, err := openCommand(ctx, target)
	if err != nil {
		return err
	}
	return s.run(cmd)
}

// CopyURL copies the result's original URL to the system clipboard.
func (s *ResultActionService) CopyURL(ctx context.Context, result *domain.Result) error {
	if result == nil {
		return fmt.Errorf("%w: result is nil", domain.ErrInvalidInput)
	}

	cmd, err := clipboardCommand(ctx)
	if err != nil {
		return err
	}
	cmd.Stdin = strings.NewReader(result.Item.OriginalURL)
	return s.run(cmd)
}

// openCommand builds the OS-specific command opening a URL in the
// default browser.
func openCommand(ctx context.Context, url string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case osDarwin:
		return exec.CommandContext(ctx, "open", url), nil
	case osLinux:
		return exec.CommandContext(ctx, "xdg-open", url), nil
	case osWindows:
		return exec.CommandContext(ctx, "cmd", "/c", "start", "", url), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// clipboardCommand builds the OS-specific clipboard writer command.
func clipboardCommand(ctx context.Context) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case osDarwin:
		return exec.CommandContext(ctx, "pbcopy"), nil
	case osLinux:
		// Try xclip first, fall back to xsel.
		if _, err := exec.LookPath("xclip"); err == nil {
			return exec.CommandContext(ctx, "xclip", "-selection", "clipboard"), nil
		}
		if _, err := exec.LookPath("xsel"); err == nil {
			return exec.CommandContext(ctx, "xsel", "--clipboard", "--input"), nil
		}
		return nil, fmt.Errorf("no clipboard utility found (install xclip or xsel)")
	case osWindows:
		return exec.CommandContext(ctx, "cmd", "/c", "clip"), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}
