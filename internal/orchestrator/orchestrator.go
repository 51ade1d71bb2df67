// Package orchestrator runs the per-request chat pipeline: language
// detection, translation to the pivot language, the domain gate, research
// fan-out, prompt composition, the model call, back-translation and final
// formatting. Every stage degrades rather than failing the request.
package orchestrator

import (
	"context"
	"log"
	"time"

	"github.com/rootsource-ai/rootsource/internal/format"
	"github.com/rootsource-ai/rootsource/internal/llm"
	"github.com/rootsource-ai/rootsource/internal/memory"
	"github.com/rootsource-ai/rootsource/internal/nasa"
	"github.com/rootsource-ai/rootsource/internal/prompt"
	"github.com/rootsource-ai/rootsource/internal/research"
	"github.com/rootsource-ai/rootsource/internal/translate"
)

// ChatResponse is the terminal artifact returned to the caller. Its JSON
// shape is the wire contract of POST /chat.
type ChatResponse struct {
	Reply           string   `json:"reply"`
	DetectedLang    string   `json:"detectedLang"`
	TranslatedQuery string   `json:"translatedQuery"`
	UserLocation    *string  `json:"userLocation"`
	NASADataUsed    []string `json:"nasaDataUsed"`
}

// Researcher runs the research fan-out for a query. Satisfied by
// *research.Aggregator.
type Researcher interface {
	Gather(ctx context.Context, query string, datasets []nasa.Dataset) *research.Bundle
}

// Options wires the orchestrator's collaborators.
type Options struct {
	Translator translate.Translator
	Researcher Researcher
	Provider   llm.Provider
	// Fallback answers when Provider fails mid-flight; defaults to the
	// demo provider so /chat always returns a labeled best-effort reply.
	Fallback    llm.Provider
	Store       memory.Store
	Catalog     []nasa.Dataset
	Model       string
	MemoryTurns int
	LLMTimeout  time.Duration
}

// Orchestrator coordinates one request through the pipeline stages.
type Orchestrator struct {
	translator translate.Translator
	researcher Researcher
	provider   llm.Provider
	fallback   llm.Provider
	store      memory.Store
	composer   *prompt.Composer
	catalog    []nasa.Dataset
	model      string
	llmTimeout time.Duration
}

// New creates an orchestrator from the given options.
func New(opts Options) *Orchestrator {
	fallback := opts.Fallback
	if fallback == nil {
		fallback = llm.NewDemoProvider("GROQ_API_KEY")
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = nasa.Catalog()
	}
	llmTimeout := opts.LLMTimeout
	if llmTimeout <= 0 {
		llmTimeout = 60 * time.Second
	}
	return &Orchestrator{
		translator: opts.Translator,
		researcher: opts.Researcher,
		provider:   opts.Provider,
		fallback:   fallback,
		store:      opts.Store,
		composer:   &prompt.Composer{MemoryTurns: opts.MemoryTurns},
		catalog:    catalog,
		model:      opts.Model,
		llmTimeout: llmTimeout,
	}
}

// Chat answers one user message within a session. It never returns an
// error for degraded dependencies; only the caller's own context
// cancellation surfaces as an error.
func (o *Orchestrator) Chat(ctx context.Context, sessionID, message string) (*ChatResponse, error) {
	query, lang := o.toPivot(ctx, message)

	// Triviality short-circuit: greetings skip research and the model.
	if prompt.IsGreeting(query) {
		return o.finishWithoutModel(ctx, sessionID, query, lang, prompt.GreetingReply)
	}

	// Domain gate, before any research fan-out.
	if !prompt.IsAgricultureRelated(query) {
		return o.finishWithoutModel(ctx, sessionID, query, lang, prompt.RefusalMessage)
	}

	datasets := nasa.Route(query, o.catalog)
	bundle := o.researcher.Gather(ctx, query, datasets)

	history, err := o.store.History(ctx, sessionID)
	if err != nil {
		log.Printf("orchestrator: loading history for %s: %v", sessionID, err)
		history = nil
	}

	messages := o.composer.Compose(query, history, bundle)
	reply := o.complete(ctx, messages)

	if err := o.store.Append(ctx, sessionID,
		memory.Turn{Role: memory.RoleUser, Text: query},
		memory.Turn{Role: memory.RoleAssistant, Text: reply},
	); err != nil {
		log.Printf("orchestrator: appending memory for %s: %v", sessionID, err)
	}

	localized := o.fromPivot(ctx, reply, lang)

	resp := &ChatResponse{
		Reply:           format.Render(localized, bundle.DatasetsUsed),
		DetectedLang:    lang,
		TranslatedQuery: query,
		NASADataUsed:    bundle.DatasetsUsed,
	}
	if bundle.Location != nil {
		label := bundle.Location.Label()
		resp.UserLocation = &label
	}
	return resp, nil
}

// finishWithoutModel terminates the pipeline for greeting and refusal
// branches: no research, no model call, but memory still records the
// exchange and the reply is still localized and formatted.
func (o *Orchestrator) finishWithoutModel(ctx context.Context, sessionID, query, lang, reply string) (*ChatResponse, error) {
	if err := o.store.Append(ctx, sessionID,
		memory.Turn{Role: memory.RoleUser, Text: query},
		memory.Turn{Role: memory.RoleAssistant, Text: reply},
	); err != nil {
		log.Printf("orchestrator: appending memory for %s: %v", sessionID, err)
	}

	localized := o.fromPivot(ctx, reply, lang)
	return &ChatResponse{
		Reply:           format.Render(localized, nil),
		DetectedLang:    lang,
		TranslatedQuery: query,
		NASADataUsed:    []string{},
	}, nil
}

// toPivot detects and translates the input. Detection failure fails open to
// the pivot language with the raw text; the returned query is always the
// text actually used downstream.
func (o *Orchestrator) toPivot(ctx context.Context, message string) (string, string) {
	translated, lang, err := o.translator.ToPivot(ctx, message)
	if err != nil {
		log.Printf("orchestrator: language detection failed, using pivot passthrough: %v", err)
		return message, translate.PivotLanguage
	}
	return translated, lang
}

// fromPivot back-translates the reply. On failure the pivot-language reply
// is returned unchanged.
func (o *Orchestrator) fromPivot(ctx context.Context, reply, lang string) string {
	if lang == translate.PivotLanguage {
		return reply
	}
	localized, err := o.translator.FromPivot(ctx, reply, lang)
	if err != nil {
		log.Printf("orchestrator: back-translation to %s failed, returning pivot reply: %v", lang, err)
		return reply
	}
	return localized
}

// complete calls the model with a bounded timeout, degrading to the
// fallback provider on any failure. The fallback's reply is textually
// labeled so it can never be mistaken for a genuine answer.
func (o *Orchestrator) complete(ctx context.Context, messages []llm.Message) string {
	req := llm.CompletionRequest{
		Model:       o.model,
		Messages:    messages,
		MaxTokens:   2048,
		Temperature: 0.9,
	}

	callCtx, cancel := context.WithTimeout(ctx, o.llmTimeout)
	defer cancel()

	resp, err := o.provider.Complete(callCtx, req)
	if err == nil && resp.Content != "" {
		return resp.Content
	}
	if err != nil {
		log.Printf("orchestrator: model call failed, using fallback: %v", err)
	}

	fallbackResp, err := o.fallback.Complete(ctx, req)
	if err != nil {
		// The demo provider cannot fail, but keep the request alive anyway.
		log.Printf("orchestrator: fallback provider failed: %v", err)
		return "I'm sorry, I'm having trouble processing your request right now. Please try rephrasing your question."
	}
	return fallbackResp.Content
}
