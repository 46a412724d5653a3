// Package provider contém os adapters dos provedores de LLM suportados pelo relay.
//
// Cada adapter conhece a URL do provider, a variável de ambiente da credencial,
// o formato do payload e o caminho do texto na resposta. Todos satisfazem Provider.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/tidwall/gjson"
)

// Provider é a capacidade comum a todos os adapters
type Provider interface {
	// Name retorna a tag do modelo usada pelo cliente, ex. "Gemini"
	Name() string
	// Call envia o prompt ao provider e retorna o texto extraído da resposta
	Call(ctx context.Context, prompt string) (string, error)
}

// Config configura um adapter. URL vazia usa o endpoint padrão do provider.
type Config struct {
	APIKey     string
	URL        string
	HTTPClient *http.Client
}

// endpoint concentra o que é comum entre os adapters: checagem da credencial,
// POST JSON e extração do texto por caminho gjson.
type endpoint struct {
	name     string
	envVar   string
	url      string
	apiKey   string
	client   *http.Client
	path     string
	fallback string
}

func (e *endpoint) Name() string {
	return e.name
}

func (e *endpoint) call(ctx context.Context, payload any) (string, error) {
	if e.apiKey == "" {
		return "", &MissingCredentialError{EnvVar: e.envVar}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", newProviderError(e.name, 0, nil, fmt.Errorf("error marshaling body: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return "", newProviderError(e.name, 0, nil, fmt.Errorf("error creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := e.client.Do(req)
	if err != nil {
		return "", newProviderError(e.name, 0, nil, err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			log.Printf("Failed to close %s response body: %v", e.name, closeErr)
		}
	}()

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", newProviderError(e.name, res.StatusCode, nil, fmt.Errorf("error reading response body: %w", err))
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", newProviderError(e.name, res.StatusCode, respBody,
			fmt.Errorf("request failed with status code %d", res.StatusCode))
	}

	if !gjson.ValidBytes(respBody) {
		return "", newProviderError(e.name, res.StatusCode, nil,
			fmt.Errorf("invalid JSON in %s response", e.name))
	}

	text := gjson.GetBytes(respBody, e.path).String()
	if text == "" {
		return e.fallback, nil
	}
	return text, nil
}

func urlOrDefault(url, def string) string {
	if url == "" {
		return def
	}
	return url
}
