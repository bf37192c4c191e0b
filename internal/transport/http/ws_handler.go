package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"trivia-board-service/internal/app"
	"trivia-board-service/internal/domain"
)

// WSHandler exposes the game session to an external UI over one websocket.
// It translates {type, payload} commands into engine operations and answers
// with full state snapshots; it holds no game rules of its own. Remote
// indices are validated here because the engine treats bad indices as a
// caller bug, and a remote client is not a trusted caller.
type WSHandler struct {
	service  *app.GameService
	logger   zerolog.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService, logger zerolog.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// boardView is the snapshot sent after every command: the durable state plus
// the volatile focus, composed here and never serialized together anywhere
// else.
type boardView struct {
	Categories []domain.Category `json:"categories"`
	Teams      []domain.Team     `json:"teams"`
	Focus      *app.Focus        `json:"focus,omitempty"`
}

type cellPayload struct {
	CategoryIndex int    `json:"categoryIndex"`
	QuestionIndex int    `json:"questionIndex"`
	Question      string `json:"question"`
	Answer        string `json:"answer"`
}

type categoryPayload struct {
	CategoryIndex int    `json:"categoryIndex"`
	Name          string `json:"name"`
}

type teamPayload struct {
	TeamID string `json:"teamId"`
	Name   string `json:"name"`
	Delta  int    `json:"delta"`
}

type noticePayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the connection and runs the command loop. The board is
// driven by one UI at a time, so commands are handled synchronously in
// arrival order.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	ctx := r.Context()
	h.send(conn, outboundMessage{Type: "state", Payload: h.view()})

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "state":
			h.send(conn, outboundMessage{Type: "state", Payload: h.view()})

		case "addCategory":
			if _, err := h.service.AddCategory(ctx); err != nil {
				h.reject(conn, err)
				continue
			}
			h.send(conn, outboundMessage{Type: "state", Payload: h.view()})

		case "addRow":
			h.service.AddRow(ctx)
			h.send(conn, outboundMessage{Type: "state", Payload: h.view()})

		case "renameCategory":
			var p categoryPayload
			if err := json.Unmarshal(inbound.Payload, &p); err != nil {
				h.sendError(conn, "invalid renameCategory payload")
				continue
			}
			if !h.validCategory(p.CategoryIndex) {
				h.sendError(conn, "category index out of range")
				continue
			}
			h.service.RenameCategory(ctx, p.CategoryIndex, p.Name)
			h.send(conn, outboundMessage{Type: "state", Payload: h.view()})

		case "editQuestion":
			var p cellPayload
			if err := json.Unmarshal(inbound.Payload, &p); err != nil {
				h.sendError(conn, "invalid editQuestion payload")
				continue
			}
			if !h.validCell(p.CategoryIndex, p.QuestionIndex) {
				h.sendError(conn, "cell out of range")
				continue
			}
			h.service.EditQuestion(ctx, p.CategoryIndex, p.QuestionIndex, p.Question, p.Answer)
			h.send(conn, outboundMessage{Type: "state", Payload: h.view()})

		case "clearContent":
			h.service.ClearAllContent(ctx)
			h.send(conn, outboundMessage{Type: "state", Payload: h.view()})

		case "openQuestion":
			var p cellPayload
			if err := json.Unmarshal(inbound.Payload, &p); err != nil {
				h.sendError(conn, "invalid openQuestion payload")
				continue
			}
			if !h.validCell(p.CategoryIndex, p.QuestionIndex) {
				h.sendError(conn, "cell out of range")
				continue
			}
			// Refused opens are silent no-ops; the snapshot simply carries no focus.
			h.service.OpenQuestion(p.CategoryIndex, p.QuestionIndex)
			h.send(conn, outboundMessage{Type: "state", Payload: h.view()})

		case "revealAnswer":
			h.service.RevealAnswer()
			h.send(conn, outboundMessage{Type: "state", Payload: h.view()})

		case "closeQuestion":
			h.service.CloseQuestion(ctx)
			h.send(conn, outboundMessage{Type: "state", Payload: h.view()})

		case "resetProgress":
			h.service.ResetProgress(ctx)
			h.send(conn, outboundMessage{Type: "state", Payload: h.view()})

		case "adjustScore":
			var p teamPayload
			if err := json.Unmarshal(inbound.Payload, &p); err != nil {
				h.sendError(conn, "invalid adjustScore payload")
				continue
			}
			h.service.AdjustScore(ctx, p.TeamID, p.Delta)
			h.send(conn, outboundMessage{Type: "state", Payload: h.view()})

		case "renameTeam":
			var p teamPayload
			if err := json.Unmarshal(inbound.Payload, &p); err != nil {
				h.sendError(conn, "invalid renameTeam payload")
				continue
			}
			h.service.RenameTeam(ctx, p.TeamID, p.Name)
			h.send(conn, outboundMessage{Type: "state", Payload: h.view()})

		case "addTeam":
			if _, err := h.service.AddTeam(ctx); err != nil {
				h.reject(conn, err)
				continue
			}
			h.send(conn, outboundMessage{Type: "state", Payload: h.view()})

		case "removeTeam":
			var p teamPayload
			if err := json.Unmarshal(inbound.Payload, &p); err != nil {
				h.sendError(conn, "invalid removeTeam payload")
				continue
			}
			if _, err := h.service.RemoveTeam(ctx, p.TeamID); err != nil {
				h.reject(conn, err)
				continue
			}
			h.send(conn, outboundMessage{Type: "state", Payload: h.view()})

		default:
			h.sendError(conn, "unsupported message type")
		}
	}
}

func (h *WSHandler) view() boardView {
	state := h.service.State()
	view := boardView{Categories: state.Categories, Teams: state.Teams}
	if focus, ok := h.service.ActiveFocus(); ok {
		view.Focus = &focus
	}
	return view
}

func (h *WSHandler) validCategory(categoryIndex int) bool {
	return categoryIndex >= 0 && categoryIndex < len(h.service.State().Categories)
}

func (h *WSHandler) validCell(categoryIndex, questionIndex int) bool {
	state := h.service.State()
	return categoryIndex >= 0 && categoryIndex < len(state.Categories) &&
		questionIndex >= 0 && questionIndex < len(state.Categories[categoryIndex].Questions)
}

func (h *WSHandler) reject(conn *websocket.Conn, err error) {
	h.send(conn, outboundMessage{Type: "rejected", Payload: noticePayload{Message: err.Error()}})
}

func (h *WSHandler) sendError(conn *websocket.Conn, message string) {
	h.send(conn, outboundMessage{Type: "error", Payload: noticePayload{Message: message}})
}

func (h *WSHandler) send(conn *websocket.Conn, msg outboundMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		h.logger.Warn().Err(err).Msg("ws write failed")
	}
}
