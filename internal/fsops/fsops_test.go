package fsops_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tidydesk/tidydesk/internal/fsops"
	"github.com/tidydesk/tidydesk/internal/safety"
)

// Shared sandbox root for all fsops tests
var sharedDir string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "fsops-tests-")
	if err != nil {
		panic(err)
	}
	// Set env once so fsops caches the same root for all tests
	_ = os.Setenv("TIDY_ROOT", dir)
	sharedDir = dir

	code := m.Run()

	// Optional cleanup; comment out to inspect artifacts after failures
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func rel(t *testing.T, elems ...string) string {
	return filepath.Join(append([]string{t.Name()}, elems...)...)
}

func TestListRegularFiles_ExcludesDirectories(t *testing.T) {
	dir := filepath.Join(sharedDir, rel(t))
	if err := os.MkdirAll(filepath.Join(dir, "old"), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	for _, name := range []string{"a.png", "b.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("prepare: %v", err)
		}
	}

	names, err := fsops.ListRegularFiles(rel(t))
	if err != nil {
		t.Fatalf("ListRegularFiles: %v", err)
	}
	got := map[string]bool{}
	for _, n := range names {
		got[n] = true
	}
	if !got["a.png"] || !got["b.txt"] {
		t.Fatalf("missing regular files in %v", names)
	}
	if got["old"] || got["old/"] {
		t.Fatalf("directory leaked into listing: %v", names)
	}
}

func TestListRegularFiles_MissingDirIsNotExist(t *testing.T) {
	_, err := fsops.ListRegularFiles(rel(t, "nope"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %T: %v", err, err)
	}
}

func TestMakeDir_AndExists(t *testing.T) {
	if err := fsops.MakeDir(rel(t, "nested", "Images")); err != nil {
		t.Fatalf("MakeDir: %v", err)
	}
	fi, err := os.Stat(filepath.Join(sharedDir, rel(t, "nested", "Images")))
	if err != nil || !fi.IsDir() {
		t.Fatalf("expected directory, err=%v", err)
	}

	ok, err := fsops.Exists(rel(t, "nested", "Images"))
	if err != nil || !ok {
		t.Fatalf("Exists: ok=%v err=%v", ok, err)
	}
	ok, err = fsops.Exists(rel(t, "nested", "Other"))
	if err != nil || ok {
		t.Fatalf("Exists on missing path: ok=%v err=%v", ok, err)
	}
}

func TestRename_CreatesDestinationParents(t *testing.T) {
	dir := filepath.Join(sharedDir, rel(t))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.png"), []byte("img"), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	if err := fsops.Rename(rel(t, "a.png"), rel(t, "Images", "a.png")); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.png")); !os.IsNotExist(err) {
		t.Fatalf("source still present: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "Images", "a.png"))
	if err != nil || string(b) != "img" {
		t.Fatalf("destination content: %q err=%v", string(b), err)
	}
}

func TestWriteFile_Overwrites(t *testing.T) {
	if err := fsops.WriteFile(rel(t, "organization_report.txt"), "first"); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := fsops.WriteFile(rel(t, "organization_report.txt"), "second"); err != nil {
		t.Fatalf("WriteFile overwrite: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(sharedDir, rel(t, "organization_report.txt")))
	if err != nil || string(b) != "second" {
		t.Fatalf("content: %q err=%v", string(b), err)
	}
}

func TestErrorPropagation_WriteDenyList(t *testing.T) {
	if err := fsops.WriteFile(".tidy/events.jsonl", "{}"); err == nil {
		t.Fatal("expected deny for writes under .tidy/")
	} else {
		var te safety.ToolError
		if !errors.As(err, &te) {
			t.Fatalf("expected ToolError, got %T: %v", err, err)
		}
		if te.Code != "ERR_DENIED_WRITE" {
			t.Fatalf("unexpected code: %s", te.Code)
		}
	}
}

func TestErrorPropagation_Traversal(t *testing.T) {
	_, err := fsops.ListRegularFiles("../../x")
	if err == nil {
		t.Fatal("expected traversal to be denied")
	}
	var te safety.ToolError
	if !errors.As(err, &te) {
		t.Fatalf("expected ToolError, got %T: %v", err, err)
	}
	if te.Code != "ERR_PATH_OUTSIDE_SANDBOX" {
		t.Fatalf("unexpected code: %s", te.Code)
	}
}
