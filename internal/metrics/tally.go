package metrics

// Tally accumulates per-run organizer activity. The runner increments it as
// tool results come back; it feeds the run_summary telemetry event. Counters
// are attempts: a move whose source was missing still counts as a move call.
type Tally struct {
	ModelCalls     int
	ToolCalls      int
	FoldersCreated int
	FilesMoved     int
	ReportsWritten int
}

// RecordTool bumps the counter matching a completed tool invocation.
func (t *Tally) RecordTool(name string) {
	t.ToolCalls++
	switch name {
	case "create_folder":
		t.FoldersCreated++
	case "move_file":
		t.FilesMoved++
	case "write_report":
		t.ReportsWritten++
	}
}
