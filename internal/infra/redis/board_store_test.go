package redis

import (
	"context"
	"reflect"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"trivia-board-service/internal/domain"
)

func TestBoardStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewBoardStore(newClient(mr), "trivia_game_data")

	if _, err := store.Load(ctx); err != domain.ErrStateNotFound {
		t.Fatalf("expected ErrStateNotFound on empty slot, got %v", err)
	}

	state := domain.DefaultState().
		EditQuestion(2, 1, "prompt", "answer").
		CloseQuestion(2, 1).
		AdjustScore("t-2", 500)
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}

	if !mr.Exists("trivia_game_data") {
		t.Fatalf("expected board blob under the slot key")
	}
	if ttl := mr.TTL("trivia_game_data"); ttl != 0 {
		t.Fatalf("board must not expire, got ttl %v", ttl)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(loaded, state) {
		t.Fatalf("round trip lost data:\nsaved  %+v\nloaded %+v", state, loaded)
	}
}

func TestBoardStoreMalformedBlob(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	if err := mr.Set("trivia_game_data", "{not json"); err != nil {
		t.Fatalf("seed malformed blob: %v", err)
	}

	store := NewBoardStore(newClient(mr), "trivia_game_data")
	if _, err := store.Load(context.Background()); err == nil || err == domain.ErrStateNotFound {
		t.Fatalf("expected unmarshal error, got %v", err)
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
