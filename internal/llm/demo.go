package llm

import (
	"context"
	"fmt"
)

// DemoModeMarker appears in every demo reply so that callers (and tests)
// can tell a fallback answer apart from a genuine model answer.
const DemoModeMarker = "Demo Mode"

// DemoProvider is the fallback used when no LLM credential is configured or
// the real provider is unreachable. It never fabricates an answer: the reply
// states the limitation and echoes the question back.
type DemoProvider struct {
	// MissingEnvVar names the credential the operator needs to set.
	MissingEnvVar string
}

// NewDemoProvider creates the demo fallback provider.
func NewDemoProvider(missingEnvVar string) *DemoProvider {
	if missingEnvVar == "" {
		missingEnvVar = "GROQ_API_KEY"
	}
	return &DemoProvider{MissingEnvVar: missingEnvVar}
}

func (p *DemoProvider) Name() string {
	return "demo"
}

func (p *DemoProvider) Complete(_ context.Context, req CompletionRequest) (*CompletionResponse, error) {
	question := lastUserMessage(req.Messages)
	if len(question) > 500 {
		question = question[:500]
	}

	content := fmt.Sprintf(`**RootSource AI (%s)**

• The intelligent LLM backend isn't configured.
• Set the environment variable **%s** to enable live answers.

**You asked:**
• %s

**What to do next:**
1. Create a .env file with %s=your_key
2. Restart the server
3. Ask again for a live answer`, DemoModeMarker, p.MissingEnvVar, question, p.MissingEnvVar)

	return &CompletionResponse{
		Content:      content,
		Model:        "demo",
		FinishReason: "stop",
	}, nil
}

func lastUserMessage(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content
		}
	}
	return ""
}
