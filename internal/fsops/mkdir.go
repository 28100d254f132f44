package fsops

import (
	"os"

	"github.com/tidydesk/tidydesk/internal/safety"
)

// Exists reports whether anything (file or directory) is present at a
// relative path under the sandbox.
func Exists(relPath string) (bool, error) {
	root, err := getRoot()
	if err != nil {
		return false, err
	}
	absPath, err := safety.ValidateRelPath(root, relPath)
	if err != nil {
		return false, err
	}
	_, statErr := os.Stat(absPath)
	if statErr == nil {
		return true, nil
	}
	if os.IsNotExist(statErr) {
		return false, nil
	}
	return false, statErr
}

// MakeDir creates a directory (and any missing parents) at a relative path
// under the sandbox write policy.
func MakeDir(relPath string) error {
	root, err := getRoot()
	if err != nil {
		return err
	}
	absPath, err := safety.ValidateWritePath(root, relPath)
	if err != nil {
		return err
	}
	return os.MkdirAll(absPath, 0o755)
}
