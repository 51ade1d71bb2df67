package llm

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/rootsource-ai/rootsource/internal/config"
)

func TestDemoProviderLabelsReply(t *testing.T) {
	p := NewDemoProvider("GROQ_API_KEY")
	resp, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "How do I grow rice?"}},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if !strings.Contains(resp.Content, DemoModeMarker) {
		t.Errorf("demo reply not labeled: %q", resp.Content)
	}
	if !strings.Contains(resp.Content, "GROQ_API_KEY") {
		t.Errorf("demo reply should name the missing credential: %q", resp.Content)
	}
	if !strings.Contains(resp.Content, "How do I grow rice?") {
		t.Errorf("demo reply should echo the question: %q", resp.Content)
	}
}

func TestDemoProviderTruncatesLongQuestion(t *testing.T) {
	p := NewDemoProvider("")
	long := strings.Repeat("a", 600)
	resp, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: long}},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if strings.Contains(resp.Content, long) {
		t.Error("question echoed without truncation")
	}
	if !strings.Contains(resp.Content, long[:500]) {
		t.Error("truncated question missing from reply")
	}
}

func TestDemoProviderDefaultEnvVar(t *testing.T) {
	p := NewDemoProvider("")
	if p.MissingEnvVar != "GROQ_API_KEY" {
		t.Errorf("default env var = %q, want GROQ_API_KEY", p.MissingEnvVar)
	}
}

func TestLastUserMessage(t *testing.T) {
	messages := []Message{
		{Role: RoleSystem, Content: "system"},
		{Role: RoleUser, Content: "first"},
		{Role: RoleAssistant, Content: "answer"},
		{Role: RoleUser, Content: "second"},
	}
	if got := lastUserMessage(messages); got != "second" {
		t.Errorf("lastUserMessage = %q, want second", got)
	}
	if got := lastUserMessage(nil); got != "" {
		t.Errorf("lastUserMessage(nil) = %q, want empty", got)
	}
}

func TestNewProviderFallsBackWithoutKey(t *testing.T) {
	os.Unsetenv("GROQ_API_KEY")

	p, err := NewProvider(config.ProviderGroq, "openai/gpt-oss-120b")
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if p.Name() != "demo" {
		t.Errorf("provider = %q, want demo fallback when key is missing", p.Name())
	}
}

func TestNewProviderGroqWithKey(t *testing.T) {
	os.Setenv("GROQ_API_KEY", "test-key")
	defer os.Unsetenv("GROQ_API_KEY")

	p, err := NewProvider(config.ProviderGroq, "openai/gpt-oss-120b")
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if p.Name() != "groq" {
		t.Errorf("provider = %q, want groq", p.Name())
	}
}

func TestNewProviderUnsupported(t *testing.T) {
	if _, err := NewProvider(config.ProviderType("nonsense"), "m"); err == nil {
		t.Error("expected error for unsupported provider type")
	}
}
