package tools

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidydesk/tidydesk/internal/fsops"
)

type ListFilesInput struct {
	Directory string `json:"directory" jsonschema_description:"Directory to list, relative to the target directory ('.' for the target itself)."`
}

var ListFilesDefinition = ToolDefinition{
	Name:        "list_files",
	Description: "List the names of regular files in a directory (subdirectories excluded), one per line.",
	InputSchema: ListFilesInputSchema,
	Function:    ListFiles,
}

var ListFilesInputSchema = GenerateSchema[ListFilesInput]()

// ListFiles returns the newline-joined regular-file names in the requested
// directory, in enumeration order. A missing directory and an empty listing
// are soft results so the model can adjust its plan.
func ListFiles(input json.RawMessage) (string, error) {
	var in ListFilesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}

	names, err := fsops.ListRegularFiles(in.Directory)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Sprintf("Directory not found: %s", in.Directory), nil
		}
		return "", err
	}
	if len(names) == 0 {
		return fmt.Sprintf("No files found in %s", in.Directory), nil
	}
	return strings.Join(names, "\n"), nil
}
