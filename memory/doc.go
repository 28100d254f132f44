// Package memory holds the in-run conversation state.
//
// Lifecycle:
//   - A Conversation is created per run, grows monotonically by appends, and
//     is discarded when the run ends. Nothing persists across runs.
//   - Tool results for one assistant turn are appended as a single user
//     message so the tool_use/tool_result pairing stays adjacent.
package memory
