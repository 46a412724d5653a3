package provider

import (
	"context"
	"net/http"

	"google.golang.org/genai"

	"github.com/vitormoschetta/chatshift/internal/model"
)

const (
	GeminiEnvVar     = "GEMINI_API_KEY"
	DefaultGeminiURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"
)

type geminiRequest struct {
	Contents []*genai.Content `json:"contents"`
}

// Gemini chama o generateContent do Gemini; a chave vai na query string
type Gemini struct {
	endpoint
}

func NewGemini(cfg Config) *Gemini {
	return &Gemini{endpoint{
		name:   model.ModelGemini,
		envVar: GeminiEnvVar,
		url:    urlOrDefault(cfg.URL, DefaultGeminiURL),
		apiKey: cfg.APIKey,
		client: authenticatedClient(cfg.HTTPClient, func(rt http.RoundTripper) http.RoundTripper {
			return &QueryKeyTransport{Base: rt, Key: cfg.APIKey}
		}),
		path:     "candidates.0.content.parts.0.text",
		fallback: "No response",
	}}
}

func (p *Gemini) Call(ctx context.Context, prompt string) (string, error) {
	return p.call(ctx, geminiRequest{
		Contents: []*genai.Content{
			{Parts: []*genai.Part{{Text: prompt}}},
		},
	})
}
