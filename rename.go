package mojinamer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Renamer performs collision-safe renames within a single directory. The
// claimed set starts with every entry present when the Renamer is created and
// grows as names are planned, so no rename ever overwrites an existing file.
// Safe for the sequential use it gets; would need a lock under concurrency.
type Renamer struct {
	dir     string
	claimed map[string]bool
}

func NewRenamer(dir string) (*Renamer, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDirectory, err)
	}

	claimed := make(map[string]bool, len(entries))
	for _, e := range entries {
		claimed[e.Name()] = true
	}

	return &Renamer{dir: dir, claimed: claimed}, nil
}

// Plan resolves name against the claimed set and claims the result. If name
// is taken, numeric suffixes _2, _3, ... are tried until one is free. When
// the file already carries the requested name, Plan returns it unchanged so
// the caller can skip the rename.
func (r *Renamer) Plan(oldName, name string) string {
	if name == oldName {
		return name
	}
	if !r.claimed[name] {
		r.claimed[name] = true
		return name
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, n, ext)
		if !r.claimed[candidate] {
			r.claimed[candidate] = true
			return candidate
		}
	}
}

// Rename moves oldName to newName inside the directory. Both names are base
// names, newName must have come from Plan.
func (r *Renamer) Rename(oldName, newName string) error {
	oldPath := filepath.Join(r.dir, oldName)
	newPath := filepath.Join(r.dir, newName)
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}

	return nil
}
