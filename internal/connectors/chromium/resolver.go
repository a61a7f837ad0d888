package chromium

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/custodia-labs/omnibar/internal/core/domain"
)

// ResolveProfileDir locates a Chromium family profile directory. The
// profile name defaults to "Default". Chrome is preferred over
// Chromium and Brave when more than one browser is installed.
func ResolveProfileDir(profile string) (string, error) {
	if profile == "" {
		profile = "Default"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	for _, base := range browserDataDirs(home) {
		dir := filepath.Join(base, profile)
		if _, err := os.Stat(filepath.Join(dir, "Bookmarks")); err == nil {
			return dir, nil
		}
	}
	return "", fmt.Errorf("chromium profile %q: %w", profile, domain.ErrProfileNotFound)
}

// browserDataDirs returns the per-OS user data directories of the
// Chromium family browsers, in preference order.
func browserDataDirs(home string) []string {
	switch runtime.GOOS {
	case "darwin":
		support := filepath.Join(home, "Library", "Application Support")
		return []string{
			filepath.Join(support, "Google", "Chrome"),
			filepath.Join(support, "Chromium"),
			filepath.Join(support, "BraveSoftware", "Brave-Browser"),
			filepath.Join(support, "Microsoft Edge"),
		}
	case "windows":
		local := os.Getenv("LOCALAPPDATA")
		if local == "" {
			local = filepath.Join(home, "AppData", "Local")
		}
		return []string{
			filepath.Join(local, "Google", "Chrome", "User Data"),
			filepath.Join(local, "Chromium", "User Data"),
			filepath.Join(local, "BraveSoftware", "Brave-Browser", "User Data"),
			filepath.Join(local, "Microsoft", "Edge", "User Data"),
		}
	default:
		config := os.Getenv("XDG_CONFIG_HOME")
		if config == "" {
			config = filepath.Join(home, ".config")
		}
		return []string{
			filepath.Join(config, "google-chrome"),
			filepath.Join(config, "chromium"),
			filepath.Join(config, "BraveSoftware", "Brave-Browser"),
			filepath.Join(config, "microsoft-edge"),
		}
	}
}
