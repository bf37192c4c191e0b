package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"trivia-board-service/internal/domain"
)

// BoardStore keeps the serialized board in memory. Used in tests and as the
// degraded fallback when no durable backend is configured; it goes through
// the same JSON round-trip as the real stores.
type BoardStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
	slot  string
}

func NewBoardStore(slot string) *BoardStore {
	return &BoardStore{
		slots: make(map[string][]byte),
		slot:  slot,
	}
}

func (s *BoardStore) Load(_ context.Context) (domain.GameState, error) {
	s.mu.RLock()
	raw, ok := s.slots[s.slot]
	s.mu.RUnlock()
	if !ok {
		return domain.GameState{}, domain.ErrStateNotFound
	}

	var state domain.GameState
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.GameState{}, fmt.Errorf("unmarshal board state: %w", err)
	}
	return state, nil
}

func (s *BoardStore) Save(_ context.Context, state domain.GameState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal board state: %w", err)
	}

	s.mu.Lock()
	s.slots[s.slot] = raw
	s.mu.Unlock()
	return nil
}

// Corrupt overwrites the slot with an unparsable blob. Test hook for the
// fail-open load path.
func (s *BoardStore) Corrupt() {
	s.mu.Lock()
	s.slots[s.slot] = []byte("{not json")
	s.mu.Unlock()
}
