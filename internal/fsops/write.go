package fsops

import (
	"os"
	"path/filepath"

	"github.com/tidydesk/tidydesk/internal/safety"
)

// WriteFile writes content to a file addressed by a relative path under the
// sandbox write policy, creating parent directories as needed. An existing
// file at the path is overwritten.
func WriteFile(relPath, content string) error {
	root, err := getRoot()
	if err != nil {
		return err
	}

	absPath, err := safety.ValidateWritePath(root, relPath)
	if err != nil {
		return err // propagate ToolError unchanged
	}

	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(absPath, []byte(content), 0o644)
}
