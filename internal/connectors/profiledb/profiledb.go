// Package profiledb opens browser profile SQLite databases for
// reading. Running browsers hold exclusive locks on their databases,
// so the file is copied to a temporary location first and the copy is
// opened read-only with the pure Go modernc.org/sqlite driver.
package profiledb

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/omnibar/internal/core/domain"
)

// Open copies the database at path to a temp file and opens the copy
// read-only. The returned cleanup closes the handle and removes the
// copy; it is safe to call even when Open failed partway.
func Open(path string) (*sql.DB, func(), error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%s: %w", path, domain.ErrProfileNotFound)
		}
		return nil, nil, fmt.Errorf("checking %s: %w", path, err)
	}

	tmp, err := copyToTemp(path)
	if err != nil {
		return nil, nil, err
	}

	db, err := sql.Open("sqlite", "file:"+tmp+"?mode=ro&_pragma=busy_timeout(5000)")
	if err != nil {
		os.Remove(tmp)
		return nil, nil, fmt.Errorf("opening database copy: %w", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(tmp)
	}
	return db, cleanup, nil
}

// copyToTemp snapshots the database file. Reading through a copy also
// means a mid-write browser cannot corrupt our view of the data.
func copyToTemp(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "omnibar-profile-*.sqlite")
	if err != nil {
		return "", fmt.Errorf("creating temp copy: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("copying %s: %w", path, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("flushing temp copy: %w", err)
	}
	return dst.Name(), nil
}
