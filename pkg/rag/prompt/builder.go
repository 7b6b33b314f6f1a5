package prompt

import (
	"fmt"
	"strings"

	"knowledgegpt-be/internal/entity"
)

// The three slots every question template must reference.
const (
	SlotChatHistory = "{chat_history}"
	SlotContext     = "{context}"
	SlotQuestion    = "{question}"
)

// Builder renders the question template. Construct once per process; the
// template is validated up front so a misconfigured deployment fails at
// startup instead of on the first query.
type Builder struct {
	template string
}

func NewBuilder(template string) (*Builder, error) {
	for _, slot := range []string{SlotChatHistory, SlotContext, SlotQuestion} {
		if !strings.Contains(template, slot) {
			return nil, fmt.Errorf("prompt template missing required slot %s", slot)
		}
	}
	return &Builder{template: template}, nil
}

// Render fills the three slots and returns the final prompt.
func (b *Builder) Render(history []*entity.ChatTurn, contextChunks []*entity.ScoredChunk, question string) string {
	replacer := strings.NewReplacer(
		SlotChatHistory, FormatHistory(history),
		SlotContext, FormatContext(contextChunks),
		SlotQuestion, question,
	)
	return replacer.Replace(b.template)
}

// FormatHistory renders prior turns one per line, oldest first.
func FormatHistory(turns []*entity.ChatTurn) string {
	if len(turns) == 0 {
		return ""
	}
	lines := make([]string, len(turns))
	for i, t := range turns {
		label := "Human"
		if t.Role == entity.ChatRoleAI {
			label = "AI"
		}
		lines[i] = label + ": " + t.Message
	}
	return strings.Join(lines, "\n")
}

// FormatContext joins retrieved chunk texts, best match first.
func FormatContext(chunks []*entity.ScoredChunk) string {
	if len(chunks) == 0 {
		return ""
	}
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Chunk.Text
	}
	return strings.Join(parts, "\n\n")
}
