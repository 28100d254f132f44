package memory

import (
	"github.com/anthropics/anthropic-sdk-go"
)

// Conversation is the ordered transcript exchanged with the model during one
// run. Appends only; no removal or reordering.
type Conversation struct {
	msgs []anthropic.MessageParam
}

func NewConversation() *Conversation {
	return &Conversation{}
}

// AppendUserText adds a plain user text message.
func (c *Conversation) AppendUserText(text string) {
	c.msgs = append(c.msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(text)))
}

// AppendAssistant adds the assistant message exactly as returned by the API,
// tool_use blocks included.
func (c *Conversation) AppendAssistant(msg *anthropic.Message) {
	c.msgs = append(c.msgs, msg.ToParam())
}

// AppendToolResults adds all tool results of one assistant turn as a single
// user message, preserving the order the results were produced in.
func (c *Conversation) AppendToolResults(results []anthropic.ContentBlockParamUnion) {
	if len(results) == 0 {
		return
	}
	c.msgs = append(c.msgs, anthropic.NewUserMessage(results...))
}

// Messages returns the transcript, oldest first. The returned slice is the
// live backing array; callers must not mutate it.
func (c *Conversation) Messages() []anthropic.MessageParam {
	return c.msgs
}

func (c *Conversation) Len() int {
	return len(c.msgs)
}
