package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"trivia-board-service/internal/domain"
)

// BoardStore persists the board as JSONB, one row per slot. Schema lives in
// the migrations package.
type BoardStore struct {
	pool *pgxpool.Pool
	slot string
}

func NewBoardStore(pool *pgxpool.Pool, slot string) *BoardStore {
	return &BoardStore{pool: pool, slot: slot}
}

func (s *BoardStore) Load(ctx context.Context) (domain.GameState, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM board_states WHERE slot=$1`, s.slot).Scan(&raw)
	if err == pgx.ErrNoRows {
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
	_, err = s.pool.Exec(ctx, `
		INSERT INTO board_states (slot, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (slot) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		s.slot, raw)
	if err != nil {
		return fmt.Errorf("save board state: %w", err)
	}
	return nil
}
