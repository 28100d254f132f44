package windowing

import (
	"unicode/utf8"

	"github.com/anthropics/anthropic-sdk-go"
)

// TokenCounter estimates input-token cost for messages or groups.
type TokenCounter interface {
	CountMessage(m anthropic.MessageParam) int
	CountGroup(g Group, all []anthropic.MessageParam) int
}

// HeuristicCounter is the default deterministic estimator.
// Rules:
//   - text blocks: rune count of TextBlockParam.Text
//   - tool_result blocks: nested text runes summed, or runes of a string
//     payload; plus a small per-block overhead for formatting.
type HeuristicCounter struct{}

// Fixed per-block overhead for deterministic counts; changing this requires updating the guard tests.
const blockOverhead = 4

func (HeuristicCounter) CountMessage(m anthropic.MessageParam) int {
	total := 0
	for _, blk := range m.Content {
		total += countBlock(blk)
	}
	return total
}

func (h HeuristicCounter) CountGroup(g Group, all []anthropic.MessageParam) int {
	total := 0
	for i := g.Start; i < g.End && i < len(all); i++ {
		total += h.CountMessage(all[i])
	}
	return total
}

func countBlock(blk anthropic.ContentBlockParamUnion) int {
	if tb := blk.OfText; tb != nil {
		return utf8.RuneCountInString(tb.Text) + blockOverhead
	}

	if tr := blk.OfToolResult; tr != nil {
		// Nested content: sum text runes, non-text nested blocks contribute
		// only via the parent overhead.
		if nested, ok := any(tr.Content).([]anthropic.ToolResultBlockParamContentUnion); ok {
			subtotal := 0
			for _, nb := range nested {
				if nt := nb.OfText; nt != nil {
					subtotal += utf8.RuneCountInString(nt.Text)
				}
			}
			return subtotal + blockOverhead
		}
		// Non-nested string payload
		if s, ok := any(tr.Content).(string); ok {
			return utf8.RuneCountInString(s) + blockOverhead
		}

		// Unsupported payload shape: overhead only (logs when verbose).
		vlogf("counter: unsupported_tool_result_payload type=%T using=overhead_only", tr.Content)
		return blockOverhead
	}

	// Other block kinds (tool_use, thinking, media) count overhead only in
	// this minimal heuristic.
	return blockOverhead
}
