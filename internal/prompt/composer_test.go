package prompt

import (
	"strings"
	"testing"

	"github.com/rootsource-ai/rootsource/internal/llm"
	"github.com/rootsource-ai/rootsource/internal/memory"
	"github.com/rootsource-ai/rootsource/internal/research"
)

func TestComposeOrdering(t *testing.T) {
	c := &Composer{MemoryTurns: 10}
	history := []memory.Turn{
		{Role: memory.RoleUser, Text: "What fertilizer for rice?"},
		{Role: memory.RoleAssistant, Text: "Use urea in split doses."},
	}
	bundle := &research.Bundle{
		Snippets: []research.Snippet{
			{Source: "Wikipedia", Text: "Rice is a staple cereal."},
		},
	}

	messages := c.Compose("When should I apply it?", history, bundle)

	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	if messages[0].Role != llm.RoleSystem {
		t.Errorf("first message role = %s, want system", messages[0].Role)
	}
	if messages[1].Role != llm.RoleUser || messages[1].Content != "What fertilizer for rice?" {
		t.Errorf("second message should be the first memory turn, got %+v", messages[1])
	}
	if messages[2].Role != llm.RoleAssistant {
		t.Errorf("third message role = %s, want assistant", messages[2].Role)
	}

	last := messages[len(messages)-1]
	if last.Role != llm.RoleUser {
		t.Errorf("last message role = %s, want user", last.Role)
	}
	if !strings.Contains(last.Content, "[Wikipedia] Rice is a staple cereal.") {
		t.Errorf("research context missing from user content:\n%s", last.Content)
	}
	if !strings.Contains(last.Content, "Question: When should I apply it?") {
		t.Errorf("question missing from user content:\n%s", last.Content)
	}
}

func TestComposeNoResearch(t *testing.T) {
	c := &Composer{MemoryTurns: 10}
	messages := c.Compose("How deep to sow wheat seeds?", nil, nil)

	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[1].Content != "How deep to sow wheat seeds?" {
		t.Errorf("question should pass through untouched, got %q", messages[1].Content)
	}
}

func TestComposeMemoryCap(t *testing.T) {
	c := &Composer{MemoryTurns: 4}

	var history []memory.Turn
	for i := 0; i < 10; i++ {
		role := memory.RoleUser
		if i%2 == 1 {
			role = memory.RoleAssistant
		}
		history = append(history, memory.Turn{Role: role, Text: turnText(i)})
	}

	messages := c.Compose("follow-up about my crop", history, nil)

	// system + 4 capped turns + question
	if len(messages) != 6 {
		t.Fatalf("expected 6 messages, got %d", len(messages))
	}
	if messages[1].Content != turnText(6) {
		t.Errorf("oldest replayed turn = %q, want %q", messages[1].Content, turnText(6))
	}
	for _, m := range messages {
		if m.Content == turnText(0) {
			t.Error("evicted turn leaked into the prompt")
		}
	}
}

func turnText(i int) string {
	return strings.Repeat("x", i+1)
}

func TestComposeBudgetDropsResearchFirst(t *testing.T) {
	c := &Composer{MemoryTurns: 10, CharBudget: len(systemInstruction) + 400}

	history := []memory.Turn{
		{Role: memory.RoleUser, Text: strings.Repeat("m", 100)},
	}
	bundle := &research.Bundle{
		Snippets: []research.Snippet{
			{Source: "Wikipedia", Text: strings.Repeat("a", 150)},
			{Source: "arXiv", Text: strings.Repeat("b", 150)},
		},
	}

	messages := c.Compose("short crop question", history, bundle)

	// The memory turn survives; the second snippet is trimmed to fit.
	foundMemory := false
	for _, m := range messages {
		if m.Content == history[0].Text {
			foundMemory = true
		}
	}
	if !foundMemory {
		t.Error("memory turn was trimmed before research snippets")
	}

	last := messages[len(messages)-1].Content
	if strings.Contains(last, "arXiv") {
		t.Error("expected the last-listed snippet to be dropped under budget pressure")
	}
	if !strings.Contains(last, "Wikipedia") {
		t.Error("expected the first snippet to survive under budget pressure")
	}
}

func TestSystemInstructionEmbedsRefusal(t *testing.T) {
	if !strings.Contains(systemInstruction, RefusalMessage) {
		t.Error("system instruction must carry the exact refusal sentence")
	}
}
