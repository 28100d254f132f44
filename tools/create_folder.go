package tools

import (
	"encoding/json"
	"fmt"

	"github.com/tidydesk/tidydesk/internal/fsops"
)

type CreateFolderInput struct {
	FolderPath string `json:"folder_path" jsonschema_description:"Folder to create, relative to the target directory. Missing parents are created too."`
}

var CreateFolderDefinition = ToolDefinition{
	Name:        "create_folder",
	Description: "Create a folder (and any missing parent folders). Reports if something already exists at the path.",
	InputSchema: CreateFolderInputSchema,
	Function:    CreateFolder,
}

var CreateFolderInputSchema = GenerateSchema[CreateFolderInput]()

// CreateFolder is idempotent: an existing file or directory at the path is a
// soft "already exists" result and nothing is touched.
func CreateFolder(input json.RawMessage) (string, error) {
	var in CreateFolderInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	if in.FolderPath == "" {
		return "", fmt.Errorf("folder_path must not be empty")
	}

	exists, err := fsops.Exists(in.FolderPath)
	if err != nil {
		return "", err
	}
	if exists {
		return fmt.Sprintf("Folder already exists: %s", in.FolderPath), nil
	}

	if err := fsops.MakeDir(in.FolderPath); err != nil {
		return "", err
	}
	return fmt.Sprintf("Created folder: %s", in.FolderPath), nil
}
