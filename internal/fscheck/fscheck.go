// Package fscheck answers whether paths named in reviewed code exist
package fscheck

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// AferoChecker checks paths against an afero filesystem. Relative paths are
// resolved against BaseDir when it is set, otherwise against the process
// working directory.
type AferoChecker struct {
	Fs      afero.Fs
	BaseDir string
}

// NewOSChecker creates a checker over the real filesystem
func NewOSChecker(baseDir string) *AferoChecker {
	return &AferoChecker{Fs: afero.NewOsFs(), BaseDir: baseDir}
}

// Exists implements domain.FileChecker. Lookup errors count as missing.
func (c *AferoChecker) Exists(path string) bool {
	if path == "" {
		return false
	}
	if c.BaseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(c.BaseDir, path)
	}

	ok, err := afero.Exists(c.Fs, path)
	return err == nil && ok
}
