// Package store persiste as trocas de chat e o histórico por modelo.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vitormoschetta/chatshift/internal/model"
)

// Drivers suportados
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

var ErrPersistence = errors.New("persistence failed")

// PersistenceError envolve qualquer falha de escrita ou leitura no store
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// Sink recebe os registros de chat. Append-only.
type Sink interface {
	Append(ctx context.Context, rec model.ChatRecord) error
}

// Store é o sink mais as leituras usadas pela API e o histórico do cliente
type Store interface {
	Sink
	// Chats retorna os registros mais recentes primeiro; limit <= 0 retorna todos
	Chats(ctx context.Context, limit int) ([]model.ChatRecord, error)
	// AddEntry grava uma entrada de histórico na partição do modelo
	AddEntry(ctx context.Context, modelName string, entry model.HistoryEntry) error
	// Entries retorna o histórico do modelo na ordem de gravação
	Entries(ctx context.Context, modelName string) ([]model.HistoryEntry, error)
	Close() error
}

// Open abre o store do driver informado
func Open(driver, path string) (Store, error) {
	switch driver {
	case DriverBolt, "":
		return OpenBolt(path)
	case DriverSQLite:
		return OpenSQLite(path)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

// prepare atribui ID e timestamp do servidor quando ausentes
func prepare(rec model.ChatRecord) model.ChatRecord {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	return rec
}
