package provider

import (
	"context"
	"net/http"

	"github.com/vitormoschetta/chatshift/internal/model"
)

const (
	FalconEnvVar     = "HUGGINGFACE_API_KEY"
	DefaultFalconURL = "https://api-inference.huggingface.co/models/tiiuae/falcon-7b-instruct"
)

type falconParameters struct {
	MaxNewTokens int `json:"max_new_tokens"`
}

type falconRequest struct {
	Inputs     string           `json:"inputs"`
	Parameters falconParameters `json:"parameters"`
}

// Falcon chama o Falcon-7B-Instruct pela inference API do Hugging Face
type Falcon struct {
	endpoint
}

func NewFalcon(cfg Config) *Falcon {
	return &Falcon{endpoint{
		name:   model.ModelFalcon,
		envVar: FalconEnvVar,
		url:    urlOrDefault(cfg.URL, DefaultFalconURL),
		apiKey: cfg.APIKey,
		client: authenticatedClient(cfg.HTTPClient, func(rt http.RoundTripper) http.RoundTripper {
			return &BearerTransport{Base: rt, Token: cfg.APIKey}
		}),
		path:     "0.generated_text",
		fallback: "No response from Falcon",
	}}
}

func (p *Falcon) Call(ctx context.Context, prompt string) (string, error) {
	return p.call(ctx, falconRequest{
		Inputs:     prompt,
		Parameters: falconParameters{MaxNewTokens: 500},
	})
}
