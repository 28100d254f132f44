package tools

// Registry returns all tool definitions wired for the organizer agent.
// The orchestration loop treats this as the closed set of callable names:
// the model is offered exactly these, and a request for anything else is a
// configuration error, not a soft failure.
func Registry() []ToolDefinition {
	return []ToolDefinition{
		ListFilesDefinition,
		CreateFolderDefinition,
		MoveFileDefinition,
		WriteReportDefinition,
	}
}
