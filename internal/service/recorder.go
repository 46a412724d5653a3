package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/vitormoschetta/chatshift/internal/model"
	"github.com/vitormoschetta/chatshift/internal/store"
)

// DefaultPersistTimeout limita cada escrita disparada pelo Recorder
const DefaultPersistTimeout = 10 * time.Second

// Recorder grava os registros de chat em background.
// A resposta ao cliente não espera a escrita; falhas só aparecem no log.
type Recorder struct {
	sink    store.Sink
	timeout time.Duration
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
	onError func(model.ChatRecord, error)
}

func NewRecorder(sink store.Sink, timeout time.Duration) *Recorder {
	if timeout <= 0 {
		timeout = DefaultPersistTimeout
	}
	return &Recorder{
		sink:    sink,
		timeout: timeout,
		onError: func(rec model.ChatRecord, err error) {
			log.Printf("❌ Failed to persist chat for model %s: %v", rec.Model, err)
		},
	}
}

// Record dispara a escrita e retorna imediatamente.
// Depois de Flush os registros são descartados com um aviso no log.
func (r *Recorder) Record(rec model.ChatRecord) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		log.Printf("Warning: recorder closed, dropping chat for model %s", rec.Model)
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()

		// Contexto próprio: a requisição HTTP pode terminar antes da escrita
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := r.sink.Append(ctx, rec); err != nil {
			r.onError(rec, err)
		}
	}()
}

// Flush impede novas escritas e espera as pendentes até o ctx expirar
func (r *Recorder) Flush(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
