package fsops

import (
	"os"
	"path/filepath"

	"github.com/tidydesk/tidydesk/internal/safety"
)

// Rename moves a file from one relative path to another under the sandbox.
// The destination's parent directories are created as needed. Collision
// handling (never overwriting an existing destination) is the tool layer's
// job; this is the bare rename mechanic.
func Rename(relSrc, relDst string) error {
	root, err := getRoot()
	if err != nil {
		return err
	}

	absSrc, err := safety.ValidateRelPath(root, relSrc)
	if err != nil {
		return err
	}
	absDst, err := safety.ValidateWritePath(root, relDst)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(absDst), 0o755); err != nil {
		return err
	}
	return os.Rename(absSrc, absDst)
}
