package tools

import (
	"encoding/json"
	"fmt"

	"github.com/tidydesk/tidydesk/internal/fsops"
)

// DefaultReportName is where the agent is asked to summarise its work unless
// the user directs it elsewhere.
const DefaultReportName = "organization_report.txt"

type WriteReportInput struct {
	ReportPath string `json:"report_path" jsonschema_description:"Report file path, relative to the target directory (typically organization_report.txt)."`
	Content    string `json:"content" jsonschema_description:"Full report contents; replaces any existing file at the path."`
}

var WriteReportDefinition = ToolDefinition{
	Name:        "write_report",
	Description: "Write the organization report, overwriting any existing file at the path.",
	InputSchema: WriteReportInputSchema,
	Function:    WriteReport,
}

var WriteReportInputSchema = GenerateSchema[WriteReportInput]()

func WriteReport(input json.RawMessage) (string, error) {
	var in WriteReportInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	if in.ReportPath == "" {
		in.ReportPath = DefaultReportName
	}

	if err := fsops.WriteFile(in.ReportPath, in.Content); err != nil {
		return "", err
	}
	return fmt.Sprintf("Report written to %s", in.ReportPath), nil
}
