package prompt

import (
	"fmt"
	"strings"

	"github.com/rootsource-ai/rootsource/internal/llm"
	"github.com/rootsource-ai/rootsource/internal/memory"
	"github.com/rootsource-ai/rootsource/internal/research"
)

// defaultCharBudget bounds the composed prompt. When exceeded, research
// snippets are dropped first (newest-listed last), then the oldest memory
// turns; the system instruction and the question itself are never trimmed.
const defaultCharBudget = 12000

// systemInstruction is the persona, domain restriction and formatting
// contract sent on every model call.
const systemInstruction = `You are RootSource AI, an expert AI assistant for farming and agriculture.
Your primary goal is to answer the user's question accurately and concisely.

IMPORTANT INSTRUCTIONS:
1. If the question is not related at all to the agriculture domain, strictly reply "` + RefusalMessage + `" and nothing else.
2. Start your first line by introducing yourself as 'RootSource AI', an expert AI assistant in the agriculture domain.
3. When research context is provided below, ground your answer in it and prefer it over general knowledge.
4. Provide specific, actionable recommendations for farmers.

FORMATTING REQUIREMENTS:
1. Always start with a bold heading: **Topic Name**
2. Use **bold text** for key terms and important points
3. Create bullet points with the • symbol
4. Use numbered lists (1. 2. 3.) for step-by-step instructions
5. Separate sections with blank lines`

// Composer assembles the model prompt in deterministic order: system
// instruction, memory turns, research context, question.
type Composer struct {
	// MemoryTurns caps how many history turns are replayed.
	MemoryTurns int
	// CharBudget caps the total prompt size; zero means the default.
	CharBudget int
}

// Compose builds the message sequence for one model call.
func (c *Composer) Compose(question string, history []memory.Turn, bundle *research.Bundle) []llm.Message {
	budget := c.CharBudget
	if budget <= 0 {
		budget = defaultCharBudget
	}

	if c.MemoryTurns > 0 && len(history) > c.MemoryTurns {
		history = history[len(history)-c.MemoryTurns:]
	}

	var snippets []research.Snippet
	if bundle != nil {
		snippets = bundle.Snippets
	}

	fixed := len(systemInstruction) + len(question)
	// Trim research context first.
	for len(snippets) > 0 && fixed+contextSize(snippets)+historySize(history) > budget {
		snippets = snippets[:len(snippets)-1]
	}
	// Then the oldest memory turns.
	for len(history) > 0 && fixed+contextSize(snippets)+historySize(history) > budget {
		history = history[1:]
	}

	messages := []llm.Message{{Role: llm.RoleSystem, Content: systemInstruction}}

	for _, turn := range history {
		role := llm.RoleUser
		if turn.Role == memory.RoleAssistant {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Text})
	}

	messages = append(messages, llm.Message{
		Role:    llm.RoleUser,
		Content: userContent(question, snippets),
	})

	return messages
}

// userContent prepends the source-tagged research context to the question.
func userContent(question string, snippets []research.Snippet) string {
	if len(snippets) == 0 {
		return question
	}

	var sb strings.Builder
	sb.WriteString("Research context gathered for this question:\n")
	for _, s := range snippets {
		fmt.Fprintf(&sb, "- [%s] %s\n", s.Source, s.Text)
	}
	sb.WriteString("\nQuestion: ")
	sb.WriteString(question)
	return sb.String()
}

func contextSize(snippets []research.Snippet) int {
	n := 0
	for _, s := range snippets {
		n += len(s.Source) + len(s.Text) + 8
	}
	return n
}

func historySize(history []memory.Turn) int {
	n := 0
	for _, t := range history {
		n += len(t.Text) + 4
	}
	return n
}
