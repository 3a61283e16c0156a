package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/manjuraavi/linkedin-career-coach/internal/ai"
)

const (
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 45 * time.Second
)

// Generator wraps the Google GenAI client to provide simple prompt-based interactions.
type Generator struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
// timeout bounds every Complete call; zero selects the default.
func NewGenerator(ctx context.Context, apiKey, model string, timeout time.Duration) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Generator{client: client, modelName: model, timeout: timeout}, nil
}

// Complete sends the payload to Gemini and returns the assembled textual response.
// Deadline expiry is reported like any other collaborator failure.
func (g *Generator) Complete(ctx context.Context, systemInstruction, userPayload string) (string, error) {
	if g == nil || g.client == nil {
		return "", &ai.CompletionError{Provider: "gemini", Err: errors.New("generator is not initialized")}
	}

	userPayload = strings.TrimSpace(userPayload)
	if userPayload == "" {
		return "", &ai.CompletionError{Provider: "gemini", Err: errors.New("user payload must not be empty")}
	}

	var config *genai.GenerateContentConfig
	if instruction := strings.TrimSpace(systemInstruction); instruction != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: instruction}},
			},
		}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(userPayload), config)
	if err != nil {
		return "", &ai.CompletionError{Provider: "gemini", Err: err}
	}

	output := collectText(resp)
	if output == "" {
		return "", &ai.CompletionError{Provider: "gemini", Err: errors.New("api returned empty response")}
	}

	return output, nil
}

// collectText joins the non-empty text parts of every candidate.
func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
