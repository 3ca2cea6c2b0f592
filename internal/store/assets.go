package store

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Assets writes binary files (images) referenced by store documents. The
// write-asset-then-write-record ordering is the caller's responsibility;
// Remove exists so a failed record commit can clean up the asset it already
// wrote. A crash between the two steps can still orphan a file.
type Assets struct {
	root   string
	logger *zap.Logger
}

// NewAssets builds an asset writer rooted at dir.
func NewAssets(dir string, logger *zap.Logger) *Assets {
	return &Assets{root: dir, logger: logger}
}

// Root returns the directory asset paths are resolved against.
func (a *Assets) Root() string {
	return a.root
}

// Save writes data under dir/filename relative to the asset root, creating
// directories as needed, and returns the relative path for the record.
func (a *Assets) Save(dir, filename string, data []byte) (string, error) {
	rel := filepath.Join(dir, filename)
	full := filepath.Join(a.root, rel)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create asset dir %s: %w", dir, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write asset %s: %w", rel, err)
	}
	return rel, nil
}

// Remove deletes the asset at the relative path. Failures are logged and
// swallowed: cleanup is best-effort and never escalates.
func (a *Assets) Remove(rel string) {
	if rel == "" {
		return
	}
	full := filepath.Join(a.root, rel)
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		a.logger.Warn("asset cleanup failed", zap.String("path", rel), zap.Error(err))
	}
}
