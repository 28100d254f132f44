package telemetry

import (
	"context"

	"github.com/tidydesk/tidydesk/internal/metrics"
)

// EmitRunSummary records the end-of-run tally and text features of the final
// assistant summary. Gated like every other event.
func EmitRunSummary(ctx context.Context, tally metrics.Tally, summary string) {
	if !ObserveEnabled() {
		return
	}
	runID, _ := RunIDFromContext(ctx)
	f := metrics.CountFeatures(summary)
	Emit("run_summary", map[string]any{
		"run_id":          runID,
		"model_calls":     tally.ModelCalls,
		"tool_calls":      tally.ToolCalls,
		"folders_created": tally.FoldersCreated,
		"files_moved":     tally.FilesMoved,
		"reports_written": tally.ReportsWritten,
		"summary": map[string]any{
			"bytes": f.Bytes,
			"runes": f.Runes,
			"words": f.Words,
			"lines": f.Lines,
		},
	})
}
