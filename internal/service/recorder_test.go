package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vitormoschetta/chatshift/internal/model"
	"github.com/vitormoschetta/chatshift/internal/store"
)

// fakeSink conta as chamadas e pode falhar ou bloquear
type fakeSink struct {
	calls   atomic.Int32
	err     error
	release chan struct{}
	mu      sync.Mutex
	records []model.ChatRecord
}

func (f *fakeSink) Append(ctx context.Context, rec model.ChatRecord) error {
	f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	f.records = append(f.records, rec)
	f.mu.Unlock()
	return nil
}

func TestRecorder_RecordAndFlush(t *testing.T) {
	sink := &fakeSink{}
	r := NewRecorder(sink, time.Second)

	for i := 0; i < 5; i++ {
		r.Record(model.ChatRecord{Prompt: "p", Model: model.ModelGemini})
	}
	if err := r.Flush(context.Background()); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	if n := sink.calls.Load(); n != 5 {
		t.Errorf("Append called %d times, want 5", n)
	}
	if len(sink.records) != 5 {
		t.Errorf("expected 5 stored records, got %d", len(sink.records))
	}
}

func TestRecorder_RecordDoesNotBlock(t *testing.T) {
	sink := &fakeSink{release: make(chan struct{})}
	r := NewRecorder(sink, time.Second)

	start := time.Now()
	r.Record(model.ChatRecord{Prompt: "p"})
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Record blocked for %v", elapsed)
	}

	close(sink.release)
	if err := r.Flush(context.Background()); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
}

func TestRecorder_SinkErrorIsReported(t *testing.T) {
	sink := &fakeSink{err: &store.PersistenceError{Op: "append", Err: errors.New("disk full")}}
	r := NewRecorder(sink, time.Second)

	var mu sync.Mutex
	var got []error
	r.onError = func(_ model.ChatRecord, err error) {
		mu.Lock()
		got = append(got, err)
		mu.Unlock()
	}

	r.Record(model.ChatRecord{Prompt: "p"})
	_ = r.Flush(context.Background())

	if len(got) != 1 || !errors.Is(got[0], store.ErrPersistence) {
		t.Errorf("expected one persistence error, got %v", got)
	}
}

func TestRecorder_FlushTimeout(t *testing.T) {
	sink := &fakeSink{release: make(chan struct{})}
	defer close(sink.release)
	r := NewRecorder(sink, time.Minute)

	r.Record(model.ChatRecord{Prompt: "p"})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := r.Flush(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}

func TestRecorder_DropsAfterFlush(t *testing.T) {
	sink := &fakeSink{}
	r := NewRecorder(sink, time.Second)
	_ = r.Flush(context.Background())

	r.Record(model.ChatRecord{Prompt: "late"})
	time.Sleep(10 * time.Millisecond)

	if n := sink.calls.Load(); n != 0 {
		t.Errorf("Append called %d times after Flush, want 0", n)
	}
}
