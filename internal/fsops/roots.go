// Package fsops implements filesystem mechanics for the organizer tools,
// sandboxed under the confirmed target directory.
package fsops

import (
	"os"
	"sync"

	"github.com/tidydesk/tidydesk/internal/safety"
)

var (
	rootOnce    sync.Once
	absRoot     string
	initRootErr error
)

func initRoot() {
	absRoot, initRootErr = safety.InitSandboxRoot(os.Getenv("TIDY_ROOT"))
}

// SetRoot pins the sandbox root to the given directory. The CLI calls this
// once after the user confirms the target; later calls are no-ops.
func SetRoot(dir string) error {
	var err error
	rootOnce.Do(func() {
		absRoot, err = safety.InitSandboxRoot(dir)
		initRootErr = err
	})
	return err
}

// getRoot returns the cached absolute sandbox root, initialising it from
// TIDY_ROOT (or the CWD) on first use when SetRoot was never called.
func getRoot() (string, error) {
	rootOnce.Do(initRoot)
	return absRoot, initRootErr
}
