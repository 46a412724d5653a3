package provider

import (
	"log"
	"net/http"
)

// BearerTransport adiciona o header Authorization às requisições do provider
type BearerTransport struct {
	Base  http.RoundTripper
	Token string
}

func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clonar a requisição para não modificar a original
	reqCopy := req.Clone(req.Context())
	if t.Token != "" {
		reqCopy.Header.Set("Authorization", "Bearer "+t.Token)
	}

	log.Printf("Provider request: %s %s%s (bearer)", reqCopy.Method, reqCopy.URL.Host, reqCopy.URL.Path)
	return base(t.Base).RoundTrip(reqCopy)
}

// QueryKeyTransport envia a chave da API como parâmetro "key" na URL
type QueryKeyTransport struct {
	Base http.RoundTripper
	Key  string
}

func (t *QueryKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())
	if t.Key != "" {
		q := reqCopy.URL.Query()
		q.Set("key", t.Key)
		reqCopy.URL.RawQuery = q.Encode()
	}

	// A query não é logada: contém a chave
	log.Printf("Provider request: %s %s%s (api key)", reqCopy.Method, reqCopy.URL.Host, reqCopy.URL.Path)
	return base(t.Base).RoundTrip(reqCopy)
}

func base(rt http.RoundTripper) http.RoundTripper {
	if rt == nil {
		return http.DefaultTransport
	}
	return rt
}

// authenticatedClient copia o client base trocando apenas o transport.
func authenticatedClient(c *http.Client, wrap func(http.RoundTripper) http.RoundTripper) *http.Client {
	if c == nil {
		c = &http.Client{}
	}
	cp := *c
	cp.Transport = wrap(c.Transport)
	return &cp
}
