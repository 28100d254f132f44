// Package tools defines tool contracts and implementations.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - Organizer tools: list_files, create_folder, move_file, write_report.
//   - Expected filesystem conditions (missing source, existing destination)
//     are soft results: descriptive strings the model reads and reacts to,
//     never handler errors.
package tools
