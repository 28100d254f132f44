package tools

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidydesk/tidydesk/internal/fsops"
)

type MoveFileInput struct {
	Source      string `json:"source" jsonschema_description:"File to move, relative to the target directory."`
	Destination string `json:"destination" jsonschema_description:"Destination path, relative to the target directory."`
}

var MoveFileDefinition = ToolDefinition{
	Name:        "move_file",
	Description: "Move a file to a new path. If the destination already exists, a timestamp is inserted before the extension so nothing is ever overwritten.",
	InputSchema: MoveFileInputSchema,
	Function:    MoveFile,
}

var MoveFileInputSchema = GenerateSchema[MoveFileInput]()

// MoveFile relocates a file. A missing source is a soft result; an occupied
// destination is disambiguated with a timestamp token, preserving the
// extension and leaving the pre-existing file untouched. The result names the
// original basename and the destination actually used.
func MoveFile(input json.RawMessage) (string, error) {
	var in MoveFileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	if in.Source == "" || in.Destination == "" {
		return "", fmt.Errorf("source and destination must not be empty")
	}

	srcExists, err := fsops.Exists(in.Source)
	if err != nil {
		return "", err
	}
	if !srcExists {
		return fmt.Sprintf("File not found: %s", in.Source), nil
	}

	dst, err := disambiguate(in.Destination)
	if err != nil {
		return "", err
	}

	if err := fsops.Rename(in.Source, dst); err != nil {
		return "", err
	}
	return fmt.Sprintf("Moved %s to %s", filepath.Base(in.Source), dst), nil
}

// disambiguate returns dst unchanged when it is free, otherwise a variant
// with a UTC timestamp inserted before the extension. A same-second
// collision on the stamped path falls back to nanoseconds.
func disambiguate(dst string) (string, error) {
	exists, err := fsops.Exists(dst)
	if err != nil {
		return "", err
	}
	if !exists {
		return dst, nil
	}

	ext := filepath.Ext(dst)
	stem := strings.TrimSuffix(dst, ext)
	stamped := fmt.Sprintf("%s_%s%s", stem, time.Now().UTC().Format("20060102_150405"), ext)

	exists, err = fsops.Exists(stamped)
	if err != nil {
		return "", err
	}
	if !exists {
		return stamped, nil
	}
	return fmt.Sprintf("%s_%d%s", stem, time.Now().UnixNano(), ext), nil
}
