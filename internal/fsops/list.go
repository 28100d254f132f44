package fsops

import (
	"os"

	"github.com/tidydesk/tidydesk/internal/safety"
)

// ListRegularFiles returns the names of regular files in a relative directory
// path under the sandbox, in directory-enumeration order. Subdirectories are
// excluded. A missing directory surfaces as os.ErrNotExist from os.ReadDir so
// the tool layer can turn it into a soft result.
func ListRegularFiles(relDir string) ([]string, error) {
	root, err := getRoot()
	if err != nil {
		return nil, err
	}

	if relDir == "" {
		relDir = "."
	}
	absDir, err := safety.ValidateRelPath(root, relDir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}
