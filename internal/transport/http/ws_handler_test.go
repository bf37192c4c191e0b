package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"trivia-board-service/internal/app"
	"trivia-board-service/internal/infra/memory"
)

func TestWebSocketGameFlow(t *testing.T) {
	conn := dialTestServer(t)
	defer conn.Close()

	// Initial snapshot: the default template.
	view := readState(t, conn)
	if len(view.Categories) != 5 || len(view.Teams) != 3 {
		t.Fatalf("expected default template, got %d categories and %d teams", len(view.Categories), len(view.Teams))
	}

	// Author a cell, play it, score the winning team.
	writeCommand(t, conn, "editQuestion", map[string]any{
		"categoryIndex": 0, "questionIndex": 0,
		"question": "What is 2 + 2?", "answer": "4",
	})
	view = readState(t, conn)
	if view.Categories[0].Questions[0].Question != "What is 2 + 2?" {
		t.Fatalf("edit not reflected in snapshot: %+v", view.Categories[0].Questions[0])
	}

	writeCommand(t, conn, "openQuestion", map[string]any{"categoryIndex": 0, "questionIndex": 0})
	view = readState(t, conn)
	if view.Focus == nil || view.Focus.CategoryIndex != 0 || view.Focus.QuestionIndex != 0 {
		t.Fatalf("expected focus on (0,0), got %+v", view.Focus)
	}

	writeCommand(t, conn, "revealAnswer", nil)
	view = readState(t, conn)
	if view.Focus == nil || !view.Focus.AnswerShown {
		t.Fatalf("expected answer shown, got %+v", view.Focus)
	}

	writeCommand(t, conn, "closeQuestion", nil)
	view = readState(t, conn)
	if view.Focus != nil {
		t.Fatalf("expected focus cleared after close, got %+v", view.Focus)
	}
	if !view.Categories[0].Questions[0].IsOpened {
		t.Fatalf("expected cell opened after close")
	}

	writeCommand(t, conn, "adjustScore", map[string]any{"teamId": view.Teams[0].ID, "delta": 100})
	view = readState(t, conn)
	if view.Teams[0].Score != 100 {
		t.Fatalf("expected score 100, got %d", view.Teams[0].Score)
	}
}

func TestWebSocketCapacityRejection(t *testing.T) {
	conn := dialTestServer(t)
	defer conn.Close()

	readState(t, conn) // initial snapshot

	// Fill the board to the category cap, then expect a rejection notice.
	for i := 0; i < 3; i++ {
		writeCommand(t, conn, "addCategory", nil)
		view := readState(t, conn)
		if len(view.Categories) != 6+i {
			t.Fatalf("expected %d categories, got %d", 6+i, len(view.Categories))
		}
	}

	writeCommand(t, conn, "addCategory", nil)
	typ, _ := readNext(t, conn)
	if typ != "rejected" {
		t.Fatalf("expected rejected notice at cap, got %s", typ)
	}
}

func TestWebSocketRejectsBadIndices(t *testing.T) {
	conn := dialTestServer(t)
	defer conn.Close()

	readState(t, conn)

	writeCommand(t, conn, "editQuestion", map[string]any{
		"categoryIndex": 42, "questionIndex": 0, "question": "x", "answer": "y",
	})
	typ, _ := readNext(t, conn)
	if typ != "error" {
		t.Fatalf("expected error for out-of-range index, got %s", typ)
	}
}

func dialTestServer(t *testing.T) *websocket.Conn {
	t.Helper()
	store := memory.NewBoardStore("trivia_game_data")
	service := app.NewGameService(context.Background(), store, zerolog.Nop())
	handler := NewWSHandler(service, zerolog.Nop())

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handler.ServeWS)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func writeCommand(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	msg := map[string]any{"type": typ}
	if payload != nil {
		msg["payload"] = payload
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func readNext(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg.Type, msg.Payload
}

func readState(t *testing.T, conn *websocket.Conn) boardView {
	t.Helper()
	typ, payload := readNext(t, conn)
	if typ != "state" {
		t.Fatalf("expected state snapshot, got %s", typ)
	}
	var view boardView
	if err := json.Unmarshal(payload, &view); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	return view
}
