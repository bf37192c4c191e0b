package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"trivia-board-service/internal/domain"
)

// BoardStore keeps the board in a local SQLite file, one row per slot. This
// is the default backend: a single-user party game wants durable local state
// without any external service.
type BoardStore struct {
	db   *sql.DB
	slot string
}

// NewBoardStore opens (and if needed creates) the database file and its
// schema.
func NewBoardStore(path, slot string) (*BoardStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS board_states (
			slot TEXT PRIMARY KEY,
			data TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init board_states table: %w", err)
	}

	return &BoardStore{db: db, slot: slot}, nil
}

func (s *BoardStore) Load(ctx context.Context) (domain.GameState, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM board_states WHERE slot = ?`, s.slot).Scan(&raw)
	if err == sql.ErrNoRows {
		return domain.GameState{}, domain.ErrStateNotFound
	}
	if err != nil {
		return domain.GameState{}, fmt.Errorf("load board state: %w", err)
	}

	var state domain.GameState
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.GameState{}, fmt.Errorf("unmarshal board state: %w", err)
	}
	return state, nil
}

func (s *BoardStore) Save(ctx context.Context, state domain.GameState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal board state: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO board_states (slot, data) VALUES (?, ?)`, s.slot, raw)
	if err != nil {
		return fmt.Errorf("save board state: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *BoardStore) Close() error {
	return s.db.Close()
}
