package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension is the file extension of policy modules.
const Extension = ".rego"

// Discover expands paths into the sorted list of .rego files they contain.
// Directories are walked recursively; a file or directory whose base name
// matches one of the exclude patterns is skipped, except for paths named
// explicitly. Explicitly named files are always included.
func Discover(paths []string, exclude []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && Excluded(d.Name(), exclude) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && IsPolicyFile(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %q: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// IsPolicyFile reports whether path has the .rego extension.
func IsPolicyFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}

// Excluded reports whether name matches any of the patterns. Patterns are
// validated when the configuration is loaded, so match errors count as no
// match.
func Excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
