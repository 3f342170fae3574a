// Package fs discovers local video sources on disk.
package fs

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/yoga"
)

// DefaultPattern matches the video containers common players understand.
const DefaultPattern = "**/*.{mp4,m4v,mkv,mov,webm}"

// Sources returns the files under root matching the doublestar pattern, as
// absolute sources in lexical order. Directories never match. An empty
// pattern selects [DefaultPattern].
func Sources(root, pattern string) ([]yoga.Source, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("fs: invalid glob pattern %q: %w", pattern, yoga.ErrValidation)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("fs: resolve %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("fs: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fs: %s is not a directory: %w", root, yoga.ErrValidation)
	}

	var matches []string
	err = doublestar.GlobWalk(os.DirFS(abs), pattern, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fs: match %q: %w", pattern, err)
	}
	sort.Strings(matches)

	sources := make([]yoga.Source, len(matches))
	for i, m := range matches {
		sources[i] = yoga.Source(filepath.Join(abs, filepath.FromSlash(m)))
	}
	return sources, nil
}
