package store

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vitormoschetta/chatshift/internal/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS chats (
	id        TEXT PRIMARY KEY,
	prompt    TEXT NOT NULL,
	model     TEXT NOT NULL,
	response  TEXT NOT NULL,
	timestamp INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS history (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	model  TEXT NOT NULL,
	input  TEXT NOT NULL,
	output TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS history_model ON history (model, id);
`

// SQLite guarda os registros em tabelas; timestamps em nanossegundos unix
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(dsn string) (*SQLite, error) {
	if dsn == "" {
		dsn = "chatshift.sqlite"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &PersistenceError{Op: "open", Err: err}
	}
	// Uma conexão: serializa escritas e mantém ":memory:" num único banco
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, &PersistenceError{Op: "open", Err: err}
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Append(ctx context.Context, rec model.ChatRecord) error {
	rec = prepare(rec)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chats (id, prompt, model, response, timestamp) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Prompt, rec.Model, rec.Response, rec.Timestamp.UnixNano())
	if err != nil {
		return &PersistenceError{Op: "append", Err: err}
	}
	return nil
}

func (s *SQLite) Chats(ctx context.Context, limit int) ([]model.ChatRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, prompt, model, response, timestamp FROM chats ORDER BY timestamp DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, &PersistenceError{Op: "chats", Err: err}
	}
	defer rows.Close()

	out := []model.ChatRecord{}
	for rows.Next() {
		var rec model.ChatRecord
		var ts int64
		if err := rows.Scan(&rec.ID, &rec.Prompt, &rec.Model, &rec.Response, &ts); err != nil {
			return nil, &PersistenceError{Op: "chats", Err: err}
		}
		rec.Timestamp = time.Unix(0, ts).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "chats", Err: err}
	}
	return out, nil
}

func (s *SQLite) AddEntry(ctx context.Context, modelName string, entry model.HistoryEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO history (model, input, output) VALUES (?, ?, ?)`,
		modelName, entry.Input, entry.Output)
	if err != nil {
		return &PersistenceError{Op: "add entry", Err: err}
	}
	return nil
}

func (s *SQLite) Entries(ctx context.Context, modelName string) ([]model.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT input, output FROM history WHERE model = ? ORDER BY id`, modelName)
	if err != nil {
		return nil, &PersistenceError{Op: "entries", Err: err}
	}
	defer rows.Close()

	out := []model.HistoryEntry{}
	for rows.Next() {
		var entry model.HistoryEntry
		if err := rows.Scan(&entry.Input, &entry.Output); err != nil {
			return nil, &PersistenceError{Op: "entries", Err: err}
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "entries", Err: err}
	}
	return out, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
