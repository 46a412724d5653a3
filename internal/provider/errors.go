package provider

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"
)

// Sentinels para comparação com errors.Is
var (
	ErrMissingCredential = errors.New("missing provider credential")
	ErrProvider          = errors.New("provider request failed")
)

const unknownServerError = "Unknown server error"

// MissingCredentialError indica que a variável de ambiente do provider não está definida
type MissingCredentialError struct {
	EnvVar string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("Missing %s", e.EnvVar)
}

func (e *MissingCredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// ProviderError representa uma falha na chamada ao provider externo.
// Message já segue a prioridade: objeto de erro do provider, campo message,
// mensagem do erro subjacente, "Unknown server error".
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

func newProviderError(name string, status int, body []byte, err error) *ProviderError {
	return &ProviderError{
		Provider:   name,
		StatusCode: status,
		Message:    errorMessage(body, err),
		Err:        err,
	}
}

// errorMessage extrai a mensagem mais útil de um corpo de erro do provider.
func errorMessage(body []byte, err error) string {
	if len(body) > 0 && gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		if e := parsed.Get("error"); truthy(e) {
			if e.IsObject() {
				if msg := e.Get("message"); truthy(msg) {
					return msg.String()
				}
				return e.Raw
			}
			return e.String()
		}
		if msg := parsed.Get("message"); truthy(msg) {
			return msg.String()
		}
	}
	if err != nil {
		// *url.Error carrega a URL completa, que no Gemini contém a chave
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Err != nil {
			err = urlErr.Err
		}
		if msg := err.Error(); msg != "" {
			return msg
		}
	}
	return unknownServerError
}

func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0
	}
	return r.Exists()
}
