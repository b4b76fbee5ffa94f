package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	genai "google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// Gemini generates diagrams through the official genai client. The client
// reads GEMINI_API_KEY from the environment; NewGemini fails fast when
// neither the option nor the environment supplies one.
type Gemini struct {
	cli   *genai.Client
	model string
}

// GeminiOptions configures a Gemini generator. Zero values fall back to the
// environment and the default model.
type GeminiOptions struct {
	APIKey string
	Model  string
}

// NewGemini constructs a Gemini-backed generator.
func NewGemini(ctx context.Context, opts GeminiOptions) (*Gemini, error) {
	if opts.APIKey == "" {
		opts.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if opts.APIKey == "" {
		return nil, ErrAPIKeyNotConfigured
	}
	if opts.Model == "" {
		opts.Model = defaultModel
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{cli: cli, model: opts.Model}, nil
}

var _ Generator = (*Gemini)(nil)

// Generate asks the model for a JSON diagram and decodes it into an untyped
// map for the validation pipeline. The response is passed through ExtractJSON
// first since models occasionally wrap output in code fences despite the
// JSON response MIME type.
func (g *Gemini) Generate(ctx context.Context, req Request) (map[string]any, error) {
	prompt := BuildPrompt(req)

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, &Error{Kind: req.Kind, Prompt: req.Prompt, Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &Error{Kind: req.Kind, Prompt: req.Prompt, Err: fmt.Errorf("empty response")}
	}

	raw := ExtractJSON(resp.Candidates[0].Content.Parts[0].Text)
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &Error{Kind: req.Kind, Prompt: req.Prompt, Err: fmt.Errorf("decode response: %w", err)}
	}
	return payload, nil
}
