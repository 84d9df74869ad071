package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/presenter"
)

const (
	actionState = "game:state"
	actionStart = "game:start"
	actionTurn  = "game:turn"
	actionReset = "game:reset"
	actionError = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type StartPayload struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

type TurnPayload struct {
	Cell *int `json:"cell"`
}

// ResponsePayload - every reply carries the full state so the page can re-render.
type ResponsePayload struct {
	State  *presenter.State `json:"state,omitempty"`
	Placed *bool            `json:"placed,omitempty"`
	Reason string           `json:"reason,omitempty"`
	Error  string           `json:"error,omitempty"`
}
