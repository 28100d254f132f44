package tools_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidydesk/tidydesk/tools"
)

func TestWriteReport_WritesAndOverwrites(t *testing.T) {
	path := rel(t, "organization_report.txt")

	in := tools.WriteReportInput{ReportPath: path, Content: "moved 3 files"}
	b, _ := json.Marshal(in)
	out, err := tools.WriteReportDefinition.Function(b)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("success string should name the path, got %q", out)
	}

	in.Content = "moved 5 files"
	b, _ = json.Marshal(in)
	if _, err := tools.WriteReportDefinition.Function(b); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(sharedDir, path))
	if err != nil || string(got) != "moved 5 files" {
		t.Fatalf("content: %q err=%v", string(got), err)
	}
}

func TestWriteReport_DefaultPath(t *testing.T) {
	in := tools.WriteReportInput{Content: "summary"}
	b, _ := json.Marshal(in)
	out, err := tools.WriteReportDefinition.Function(b)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(out, tools.DefaultReportName) {
		t.Fatalf("expected default report name in %q", out)
	}
	if _, err := os.Stat(filepath.Join(sharedDir, tools.DefaultReportName)); err != nil {
		t.Fatalf("default report missing: %v", err)
	}
}

func TestWriteReport_MalformedInput_Error(t *testing.T) {
	if _, err := tools.WriteReportDefinition.Function(json.RawMessage(`{"content": 7`)); err == nil {
		t.Fatal("expected error for malformed JSON input")
	}
}
