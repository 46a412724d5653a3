package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/vitormoschetta/chatshift/internal/model"
)

// DefaultBoltPath é usado quando STORE_PATH não é informado
const DefaultBoltPath = "chatshift.db"

var (
	chatsBucket   = []byte("chats")
	historyBucket = []byte("history")
)

// Bolt guarda cada registro como JSON em buckets do BoltDB.
// Chaves são a sequência do bucket em big-endian, então a ordem do cursor é a ordem de escrita.
// O histórico usa um bucket aninhado por modelo dentro de "history".
type Bolt struct {
	db *bolt.DB
}

func OpenBolt(path string) (*Bolt, error) {
	if path == "" {
		path = DefaultBoltPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &PersistenceError{Op: "open", Err: err}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, &PersistenceError{Op: "open", Err: err}
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{chatsBucket, historyBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, &PersistenceError{Op: "open", Err: err}
	}
	return &Bolt{db: db}, nil
}

func (s *Bolt) Append(ctx context.Context, rec model.ChatRecord) error {
	if err := ctx.Err(); err != nil {
		return &PersistenceError{Op: "append", Err: err}
	}
	data, err := json.Marshal(prepare(rec))
	if err != nil {
		return &PersistenceError{Op: "append", Err: err}
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return putNext(tx.Bucket(chatsBucket), data)
	})
	if err != nil {
		return &PersistenceError{Op: "append", Err: err}
	}
	return nil
}

func (s *Bolt) Chats(ctx context.Context, limit int) ([]model.ChatRecord, error) {
	out := []model.ChatRecord{}
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(chatsBucket).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(out) == limit {
				break
			}
			var rec model.ChatRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				// Ignorar entradas corrompidas em vez de falhar a listagem
				continue
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, &PersistenceError{Op: "chats", Err: err}
	}
	return out, nil
}

func (s *Bolt) AddEntry(ctx context.Context, modelName string, entry model.HistoryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return &PersistenceError{Op: "add entry", Err: err}
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket(historyBucket).CreateBucketIfNotExists([]byte(modelName))
		if err != nil {
			return err
		}
		return putNext(b, data)
	})
	if err != nil {
		return &PersistenceError{Op: "add entry", Err: err}
	}
	return nil
}

func (s *Bolt) Entries(ctx context.Context, modelName string) ([]model.HistoryEntry, error) {
	out := []model.HistoryEntry{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(historyBucket).Bucket([]byte(modelName))
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var entry model.HistoryEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return nil
			}
			out = append(out, entry)
			return nil
		})
	})
	if err != nil {
		return nil, &PersistenceError{Op: "entries", Err: err}
	}
	return out, nil
}

func (s *Bolt) Close() error {
	return s.db.Close()
}

func putNext(b *bolt.Bucket, value []byte) error {
	seq, err := b.NextSequence()
	if err != nil {
		return err
	}
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return b.Put(key, value)
}
