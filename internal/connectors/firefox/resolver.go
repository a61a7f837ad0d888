package firefox

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/custodia-labs/omnibar/internal/core/domain"
)

// ResolveProfileDir locates a Firefox profile directory. With an empty
// profile name the default release profile is preferred, then any
// profile holding a places database.
func ResolveProfileDir(profile string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	base := profilesDir(home)
	entries, err := os.ReadDir(base)
	if err != nil {
		return "", fmt.Errorf("firefox profiles: %w", domain.ErrProfileNotFound)
	}

	var fallback string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(base, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, "places.sqlite")); err != nil {
			continue
		}
		switch {
		case profile != "" && strings.HasSuffix(entry.Name(), "."+profile):
			return dir, nil
		case profile == "" && strings.HasSuffix(entry.Name(), ".default-release"):
			return dir, nil
		case profile == "" && fallback == "":
			fallback = dir
		}
	}

	if profile == "" && fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("firefox profile %q: %w", profile, domain.ErrProfileNotFound)
}

// profilesDir returns the per-OS directory holding Firefox profiles.
func profilesDir(home string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Firefox", "Profiles")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "Mozilla", "Firefox", "Profiles")
	default:
		return filepath.Join(home, ".mozilla", "firefox")
	}
}
