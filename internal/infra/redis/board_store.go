package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"trivia-board-service/internal/domain"
)

// BoardStore persists the whole board as one JSON blob under a single key.
// Unlike the usual Redis cache the key carries no TTL: the board is the
// system of record, not a derived copy.
type BoardStore struct {
	client *redis.Client
	slot   string
}

func NewBoardStore(client *redis.Client, slot string) *BoardStore {
	return &BoardStore{client: client, slot: slot}
}

func (s *BoardStore) Load(ctx context.Context) (domain.GameState, error) {
	raw, err := s.client.Get(ctx, s.slot).Bytes()
	if err == redis.Nil {
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
	if err := s.client.Set(ctx, s.slot, raw, 0).Err(); err != nil {
		return fmt.Errorf("save board state: %w", err)
	}
	return nil
}
