package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

func (that *Server) handleState(ctx context.Context, sessionID string, _ *Message) (ResponsePayload, error) {
	game, err := that.games.GetGame(ctx, sessionID)
	if err != nil {
		return ResponsePayload{Error: "failed to get the game"}, fmt.Errorf("failed to get game: %w", err)
	}

	return stateResponse(game), nil
}

func (that *Server) handleStart(ctx context.Context, sessionID string, msg *Message) (ResponsePayload, error) {
	var payloadReq StartPayload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return ResponsePayload{Error: "player names are required"}, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	game, err := that.games.StartGame(ctx, sessionID, payloadReq.Player1, payloadReq.Player2)
	if err != nil {
		return ResponsePayload{Error: "failed to start the game"}, fmt.Errorf("failed to start game: %w", err)
	}

	return stateResponse(game), nil
}

func (that *Server) handleTurn(ctx context.Context, sessionID string, msg *Message) (ResponsePayload, error) {
	var payloadReq TurnPayload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil || payloadReq.Cell == nil {
		return ResponsePayload{Error: "cell is required"}, fmt.Errorf("invalid turn payload: %s", string(msg.Payload))
	}

	game, err := that.games.PlayRound(ctx, sessionID, *payloadReq.Cell)
	switch {
	case err == nil:
		response := stateResponse(game)
		response.Placed = boolPtr(true)
		return response, nil
	case apperror.IsRejectedMove(err):
		response := stateResponse(game)
		response.Placed = boolPtr(false)
		response.Reason = apperror.Reason(err)
		return response, nil
	default:
		return ResponsePayload{Error: "failed to make turn"}, fmt.Errorf("failed to make turn: %w", err)
	}
}

func (that *Server) handleReset(ctx context.Context, sessionID string, _ *Message) (ResponsePayload, error) {
	game, err := that.games.ResetGame(ctx, sessionID)
	if err != nil {
		return ResponsePayload{Error: "failed to reset the game"}, fmt.Errorf("failed to reset game: %w", err)
	}

	return stateResponse(game), nil
}

func stateResponse(game *tictactoe.Game) ResponsePayload {
	state := presenter.NewState(game)
	return ResponsePayload{State: &state}
}

func boolPtr(v bool) *bool {
	return &v
}
