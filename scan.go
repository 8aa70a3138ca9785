package mojinamer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrInvalidDirectory is returned when the target directory does not exist or
// cannot be read. It is fatal at startup.
var ErrInvalidDirectory = errors.New("not a readable directory")

// Supported image file extensions (lowercase, with leading dot).
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Scan lists the image files at the top level of dir, matched by extension
// case-insensitively. Subdirectories and other files are silently skipped.
// Results are sorted for a deterministic processing order.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDirectory, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	return files, nil
}
