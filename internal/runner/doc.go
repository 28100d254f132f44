// Package runner drives the organize loop: it alternates between requesting
// model output and executing the tools that output asks for, until the model
// answers without tool calls.
//
// Invariants:
//   - Tool invocations within one assistant message run sequentially, in the
//     order the model listed them, and all their results are appended before
//     the next request is sent.
//   - An unknown tool name or an unparseable argument payload aborts the run;
//     expected filesystem conditions never do (the tools report those as
//     plain strings the model reads), and sandbox policy violations come back
//     as error tool_results so the model can correct its paths.
//
// Flow:
//
//	user(text) -> assistant(tool_use) -> user(tool_result) -> ... -> assistant(text)
package runner
