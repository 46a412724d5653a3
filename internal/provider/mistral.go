package provider

import (
	"context"
	"net/http"

	"github.com/vitormoschetta/chatshift/internal/model"
)

const (
	MistralEnvVar     = "MISTRAL_API_KEY"
	DefaultMistralURL = "https://api.mistral.ai/v1/chat/completions"

	mistralModel = "mistral-medium"
)

type mistralMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type mistralRequest struct {
	Model     string           `json:"model"`
	Messages  []mistralMessage `json:"messages"`
	MaxTokens int              `json:"max_tokens"`
}

// Mistral chama o endpoint de chat completions da Mistral
type Mistral struct {
	endpoint
}

func NewMistral(cfg Config) *Mistral {
	return &Mistral{endpoint{
		name:   model.ModelMistral,
		envVar: MistralEnvVar,
		url:    urlOrDefault(cfg.URL, DefaultMistralURL),
		apiKey: cfg.APIKey,
		client: authenticatedClient(cfg.HTTPClient, func(rt http.RoundTripper) http.RoundTripper {
			return &BearerTransport{Base: rt, Token: cfg.APIKey}
		}),
		path:     "choices.0.message.content",
		fallback: "No response from Mistral",
	}}
}

func (p *Mistral) Call(ctx context.Context, prompt string) (string, error) {
	return p.call(ctx, mistralRequest{
		Model:     mistralModel,
		Messages:  []mistralMessage{{Role: "user", Content: prompt}},
		MaxTokens: 500,
	})
}
