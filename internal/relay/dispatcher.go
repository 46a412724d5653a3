// Package relay valida o pedido de chat, escolhe o provider pela tag do modelo
// e normaliza a resposta no envelope único devolvido ao cliente.
package relay

import (
	"context"
	"log"
	"time"

	"github.com/vitormoschetta/chatshift/internal/model"
	"github.com/vitormoschetta/chatshift/internal/provider"
)

// Recorder recebe o registro depois de uma chamada bem-sucedida, sem bloquear
type Recorder interface {
	Record(rec model.ChatRecord)
}

type Dispatcher struct {
	providers *provider.Registry
	recorder  Recorder
	now       func() time.Time
}

func NewDispatcher(providers *provider.Registry, recorder Recorder) *Dispatcher {
	return &Dispatcher{
		providers: providers,
		recorder:  recorder,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Models retorna as tags aceitas
func (d *Dispatcher) Models() []string {
	return d.providers.Names()
}

// Known informa se a tag tem adapter registrado
func (d *Dispatcher) Known(name string) bool {
	_, ok := d.providers.Lookup(name)
	return ok
}

// Handle executa um pedido: validação, despacho, normalização e persistência.
// Erros do provider voltam como *provider.MissingCredentialError ou *provider.ProviderError.
func (d *Dispatcher) Handle(ctx context.Context, req model.ChatRequest) (*model.ChatReply, error) {
	switch {
	case req.Prompt == "":
		return nil, &ValidationError{Field: "prompt"}
	case req.Model == "":
		return nil, &ValidationError{Field: "model"}
	}

	log.Printf("🔍 Received request for model: %s with prompt: %s", req.Model, req.Prompt)

	p, ok := d.providers.Lookup(req.Model)
	if !ok {
		return nil, &UnknownModelError{Model: req.Model}
	}

	text, err := p.Call(ctx, req.Prompt)
	if err != nil {
		log.Printf("❌ Error fetching AI response from %s: %v", req.Model, err)
		return nil, err
	}

	if d.recorder != nil {
		d.recorder.Record(model.ChatRecord{
			Prompt:    req.Prompt,
			Model:     req.Model,
			Response:  text,
			Timestamp: d.now(),
		})
	}

	return &model.ChatReply{
		Text:  text,
		Model: req.Model,
		Raw:   text,
	}, nil
}
