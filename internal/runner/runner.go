package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/go-logr/logr"

	"github.com/tidydesk/tidydesk/internal/metrics"
	"github.com/tidydesk/tidydesk/internal/safety"
	"github.com/tidydesk/tidydesk/internal/telemetry"
	"github.com/tidydesk/tidydesk/internal/windowing"
	"github.com/tidydesk/tidydesk/memory"
	"github.com/tidydesk/tidydesk/tools"
)

// systemPrompt frames every run. Paths in tool arguments are relative to the
// confirmed target directory, which the sandbox enforces.
const systemPrompt = `You are a file organizing assistant working inside one target directory.
All paths are relative to that directory. Use list_files to see what is there,
create folders by category (for example Images, Documents, Archives), move each
file into a fitting folder with move_file, and finish by writing
organization_report.txt with write_report. When everything is done, reply
without any tool calls and summarise what changed.`

const (
	maxOutputTokens    = 1024
	defaultTokenBudget = 50_000
	defaultMaxTurns    = 40
)

type Runner struct {
	Client *anthropic.Client
	Tools  []tools.ToolDefinition
	Log    logr.Logger

	// MaxTurns bounds the number of model requests per run; <= 0 removes the
	// cap and restores the original run-until-the-model-stops behaviour.
	MaxTurns int

	tally metrics.Tally
}

func New(client *anthropic.Client, toolDefs []tools.ToolDefinition) *Runner {
	return &Runner{
		Client:   client,
		Tools:    toolDefs,
		Log:      logr.Discard(),
		MaxTurns: maxTurnsFromEnv(),
	}
}

func maxTurnsFromEnv() int {
	v := os.Getenv("TIDY_MAX_TURNS")
	if v == "" {
		return defaultMaxTurns
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultMaxTurns
	}
	return n
}

func tokenBudget() (int, error) {
	v := os.Getenv("TIDY_TOKEN_BUDGET")
	if v == "" {
		return defaultTokenBudget, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid TIDY_TOKEN_BUDGET %q", v)
	}
	return n, nil
}

func (r *Runner) anthropicTools() []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(r.Tools))
	for _, t := range r.Tools {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.String(t.Description),
			InputSchema: t.InputSchema,
		}})
	}
	return out
}

// Run drives the conversation until the model responds without tool calls and
// returns that response's text as the run summary. The conversation must be
// seeded with the user request before the call.
func (r *Runner) Run(ctx context.Context, model anthropic.Model, conv *memory.Conversation) (string, error) {
	runID, ok := telemetry.RunIDFromContext(ctx)
	if !ok {
		runID = fmt.Sprintf("run-%d", time.Now().UnixNano())
		ctx = telemetry.WithRunID(ctx, runID)
	}

	for turn := 0; ; turn++ {
		if r.MaxTurns > 0 && turn >= r.MaxTurns {
			return "", fmt.Errorf("organize loop exceeded %d turns without finishing; raise TIDY_MAX_TURNS if the directory genuinely needs more", r.MaxTurns)
		}

		msg, toolResults, err := r.RunOneStep(ctx, model, conv.Messages())
		if err != nil {
			return "", err
		}
		conv.AppendAssistant(msg)

		text := assistantText(msg)

		// No tool calls: the turn's text is the final summary and the loop ends.
		if len(toolResults) == 0 {
			telemetry.EmitRunSummary(ctx, r.tally, text)
			return text, nil
		}

		// Intermediate commentary the model produced alongside its tool calls.
		if text != "" {
			fmt.Printf("\u001b[93mClaude\u001b[0m: %s\n", text)
		}
		conv.AppendToolResults(toolResults)
	}
}

// assistantText joins the text blocks of an assistant message.
func assistantText(msg *anthropic.Message) string {
	var parts []string
	for _, b := range msg.Content {
		if tb, ok := b.AsAny().(anthropic.TextBlock); ok && tb.Text != "" {
			parts = append(parts, tb.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// RunOneStep sends the conversation and returns the assistant message plus
// the tool results to be appended (empty when the model is done).
func (r *Runner) RunOneStep(ctx context.Context, model anthropic.Model, conv []anthropic.MessageParam) (*anthropic.Message, []anthropic.ContentBlockParamUnion, error) {
	budget, err := tokenBudget()
	if err != nil {
		return nil, nil, err
	}

	// Prepare pair-safe, budgeted window
	counter := windowing.HeuristicCounter{}
	window, stats := windowing.PrepareSendWindow(conv, budget, counter)

	runID, _ := telemetry.RunIDFromContext(ctx)

	telemetry.Emit("window_prepared", map[string]any{
		"run_id":             runID,
		"model":              string(model),
		"budget":             stats.Budget,
		"total_estimated":    stats.Total,
		"included_groups":    stats.IncludedGroups,
		"skipped_groups":     stats.SkippedGroups,
		"over_budget_newest": stats.OverBudgetNewest,
	})
	r.Log.V(1).Info("window prepared",
		"budget", stats.Budget, "estimated", stats.Total,
		"included", stats.IncludedGroups, "skipped", stats.SkippedGroups)

	// The newest group should always fit within the budget; if not, treat it
	// as a misconfiguration (too-low budget) and fail fast.
	if stats.OverBudgetNewest {
		return nil, nil, fmt.Errorf("windowing: newest group exceeds the token budget; increase TIDY_TOKEN_BUDGET")
	}

	params := anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: int64(maxOutputTokens),
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:  window,
		Tools:     r.anthropicTools(),
	}

	msg, err := r.Client.Messages.New(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	r.tally.ModelCalls++

	toolResults := []anthropic.ContentBlockParamUnion{}
	for _, block := range msg.Content {
		if v, ok := block.AsAny().(anthropic.ToolUseBlock); ok {
			// Pass raw JSON input through to the tool implementation
			input := json.RawMessage(v.JSON.Input.Raw())
			res, err := r.execTool(ctx, v.ID, v.Name, input)
			if err != nil {
				return nil, nil, err
			}
			toolResults = append(toolResults, res)
		}
	}
	return msg, toolResults, nil
}

// execTool dispatches one requested invocation. The registry is the closed
// set of names the model was offered, so a miss is a configuration error and
// aborts the run, as does a handler failure (bad arguments, unexpected I/O).
// Sandbox policy violations are the exception: their JSON body goes back to
// the model as an error tool_result so it can correct its paths and retry.
func (r *Runner) execTool(ctx context.Context, id, name string, input json.RawMessage) (anthropic.ContentBlockParamUnion, error) {
	var def *tools.ToolDefinition
	for i := range r.Tools {
		if r.Tools[i].Name == name {
			def = &r.Tools[i]
			break
		}
	}

	runID, _ := telemetry.RunIDFromContext(ctx)

	// Helper to emit a tool_exec event
	emit := func(durationMs int64, inputSize int, outputSize int, errStr string) {
		fields := map[string]any{
			"tool_name":   name,
			"duration_ms": durationMs,
			"input_size":  inputSize,
			"output_size": outputSize,
			"run_id":      runID,
		}
		if errStr != "" {
			fields["error"] = errStr
		} else {
			fields["error"] = nil
		}
		telemetry.Emit("tool_exec", fields)
	}

	start := time.Now()
	inSize := len(input)

	if def == nil {
		emit(time.Since(start).Milliseconds(), inSize, 0, "tool not found")
		return anthropic.ContentBlockParamUnion{}, fmt.Errorf("model requested tool %q which is not in the registry", name)
	}

	resp, err := def.Function(input)
	if err != nil {
		var policyErr safety.ToolError
		if errors.As(err, &policyErr) {
			body := policyErr.Error()
			fmt.Printf("\u001b[91m%s\u001b[0m %s -> %s\n", name, compactArgs(input), body)
			// Codes are fixed constants, safe to record as the error string.
			emit(time.Since(start).Milliseconds(), inSize, len(body), policyErr.Code)
			return anthropic.NewToolResultBlock(id, body, true), nil
		}
		// Emit a generic error string to avoid leaking raw payloads in telemetry
		emit(time.Since(start).Milliseconds(), inSize, 0, "tool error")
		return anthropic.ContentBlockParamUnion{}, fmt.Errorf("tool %s: %w", name, err)
	}
	r.tally.RecordTool(name)

	// Progress report: name, arguments, result, as it happens.
	fmt.Printf("\u001b[92m%s\u001b[0m %s -> %s\n", name, compactArgs(input), resp)
	r.Log.V(1).Info("tool executed", "tool", name, "duration_ms", time.Since(start).Milliseconds())

	emit(time.Since(start).Milliseconds(), inSize, len(resp), "")
	return anthropic.NewToolResultBlock(id, resp, false), nil
}

// compactArgs renders the raw argument JSON on one line for progress output.
// Whitespace inside string values is preserved.
func compactArgs(input json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, input); err != nil {
		s := strings.TrimSpace(string(input))
		if s == "" {
			return "{}"
		}
		return s
	}
	return buf.String()
}
