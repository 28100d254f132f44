// Package workdir maps a user-supplied folder reference to the absolute
// directory the run will operate on.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// shortcuts are the recognised keywords for common user directories.
var shortcuts = map[string]string{
	"desktop":   "Desktop",
	"downloads": "Downloads",
	"documents": "Documents",
	"pictures":  "Pictures",
	"home":      "",
}

// Resolve maps a folder reference - a shortcut keyword ("desktop",
// "downloads", ...), a ~-prefixed path, or a literal path - to an absolute
// path of an existing directory. The result is resolved once, before the
// loop starts, and never re-resolved mid-run.
func Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty folder reference")
	}

	path := ref
	if sub, ok := shortcuts[strings.ToLower(ref)]; ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve %q: %w", ref, err)
		}
		path = filepath.Join(home, sub)
	} else if strings.HasPrefix(ref, "~"+string(filepath.Separator)) || ref == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve %q: %w", ref, err)
		}
		path = filepath.Join(home, strings.TrimPrefix(ref, "~"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", ref, err)
	}

	fi, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("folder %q does not exist", abs)
		}
		return "", fmt.Errorf("resolve %q: %w", ref, err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("%q is not a directory", abs)
	}
	return abs, nil
}
