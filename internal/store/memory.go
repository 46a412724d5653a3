package store

import (
	"context"
	"sync"

	"github.com/vitormoschetta/chatshift/internal/model"
)

// Memory mantém tudo em memória do processo
type Memory struct {
	chats   []model.ChatRecord
	history map[string][]model.HistoryEntry
	mu      sync.RWMutex
}

func NewMemory() *Memory {
	return &Memory{
		history: make(map[string][]model.HistoryEntry),
	}
}

func (m *Memory) Append(ctx context.Context, rec model.ChatRecord) error {
	if err := ctx.Err(); err != nil {
		return &PersistenceError{Op: "append", Err: err}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.chats = append(m.chats, prepare(rec))
	return nil
}

func (m *Memory) Chats(ctx context.Context, limit int) ([]model.ChatRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.ChatRecord, 0, len(m.chats))
	for i := len(m.chats) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, m.chats[i])
	}
	return out, nil
}

func (m *Memory) AddEntry(ctx context.Context, modelName string, entry model.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history[modelName] = append(m.history[modelName], entry)
	return nil
}

func (m *Memory) Entries(ctx context.Context, modelName string) ([]model.HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.HistoryEntry, len(m.history[modelName]))
	copy(out, m.history[modelName])
	return out, nil
}

func (m *Memory) Close() error {
	return nil
}
