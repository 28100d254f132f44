package tools_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidydesk/tidydesk/tools"
)

func TestMoveFile_Relocates(t *testing.T) {
	dir := filepath.Join(sharedDir, rel(t))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.png"), []byte("img"), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	in := tools.MoveFileInput{Source: rel(t, "a.png"), Destination: rel(t, "Images", "a.png")}
	b, _ := json.Marshal(in)
	out, err := tools.MoveFileDefinition.Function(b)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(out, "a.png") {
		t.Fatalf("result should name the moved file, got %q", out)
	}

	if _, err := os.Stat(filepath.Join(dir, "a.png")); !os.IsNotExist(err) {
		t.Fatalf("source still exists: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "Images", "a.png"))
	if err != nil || string(got) != "img" {
		t.Fatalf("destination content: %q err=%v", string(got), err)
	}
}

func TestMoveFile_MissingSource_SoftResult(t *testing.T) {
	in := tools.MoveFileInput{Source: rel(t, "ghost.txt"), Destination: rel(t, "Docs", "ghost.txt")}
	b, _ := json.Marshal(in)
	out, err := tools.MoveFileDefinition.Function(b)
	if err != nil {
		t.Fatalf("missing source must be a soft result, got err: %v", err)
	}
	if !strings.Contains(out, "not found") {
		t.Fatalf("expected not-found indicator, got %q", out)
	}
	if _, err := os.Stat(filepath.Join(sharedDir, rel(t, "Docs"))); !os.IsNotExist(err) {
		t.Fatalf("destination dir must not be created for a missing source")
	}
}

func TestMoveFile_DestinationExists_NeverOverwrites(t *testing.T) {
	dir := filepath.Join(sharedDir, rel(t))
	if err := os.MkdirAll(filepath.Join(dir, "Images"), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.png"), []byte("new"), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Images", "a.png"), []byte("old"), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	given := rel(t, "Images", "a.png")
	in := tools.MoveFileInput{Source: rel(t, "a.png"), Destination: given}
	b, _ := json.Marshal(in)
	out, err := tools.MoveFileDefinition.Function(b)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Pre-existing destination untouched
	old, err := os.ReadFile(filepath.Join(dir, "Images", "a.png"))
	if err != nil || string(old) != "old" {
		t.Fatalf("pre-existing destination was touched: %q err=%v", string(old), err)
	}

	// The path actually used differs from the one given, keeps the stem
	// prefix and the extension: Images/a_<token>.png
	entries, err := os.ReadDir(filepath.Join(dir, "Images"))
	if err != nil {
		t.Fatalf("read Images: %v", err)
	}
	var alt string
	for _, e := range entries {
		if e.Name() != "a.png" {
			alt = e.Name()
		}
	}
	if alt == "" {
		t.Fatalf("no disambiguated file created; result=%q", out)
	}
	if !strings.HasPrefix(alt, "a_") || !strings.HasSuffix(alt, ".png") {
		t.Fatalf("token must sit before the extension: %q", alt)
	}
	got, err := os.ReadFile(filepath.Join(dir, "Images", alt))
	if err != nil || string(got) != "new" {
		t.Fatalf("moved content: %q err=%v", string(got), err)
	}

	// The result names the destination actually used, not the one given
	if !strings.Contains(out, alt) {
		t.Fatalf("result %q should name the final destination %q", out, alt)
	}
}
