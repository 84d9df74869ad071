package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

const (
	maxMessageBytes = 1 << 12
	writeTimeout    = 10 * time.Second
	cleanupTimeout  = 5 * time.Second
)

var ErrUnknownAction = errors.New("unknown action")

type gameManager interface {
	NewSession(ctx context.Context) (*tictactoe.Game, error)
	GetGame(ctx context.Context, id string) (*tictactoe.Game, error)
	StartGame(ctx context.Context, id, firstName, secondName string) (*tictactoe.Game, error)
	PlayRound(ctx context.Context, id string, cell int) (*tictactoe.Game, error)
	ResetGame(ctx context.Context, id string) (*tictactoe.Game, error)
	EndSession(ctx context.Context, id string) error
}

type handlerFunc func(ctx context.Context, sessionID string, msg *Message) (ResponsePayload, error)

// Server - one game session per connection, living as long as the page that opened it.
type Server struct {
	logger   *slog.Logger
	games    gameManager
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, games gameManager) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionState] = server.handleState
	server.handlers[actionStart] = server.handleStart
	server.handlers[actionTurn] = server.handleTurn
	server.handlers[actionReset] = server.handleReset

	return server
}

// ServeHTTP - upgrades the connection and serves messages until the client leaves.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageBytes)

	ctx := r.Context()

	game, err := that.games.NewSession(ctx)
	if err != nil {
		log.Error("failed to create session", "error", err)
		_ = that.sendMessage(conn, actionError, ResponsePayload{Error: "failed to create a new session"})
		return
	}

	sessionID := game.ID()
	log = log.With("gameID", sessionID)
	log.Info("WebSocket connection established")

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
		defer cancel()

		if err = that.games.EndSession(cleanupCtx, sessionID); err != nil {
			log.Error("failed to end session", "error", err)
		}

		log.Info("WebSocket connection closed")
	}()

	if err = that.sendState(conn, actionState, game); err != nil {
		log.Error("failed to send initial state", "error", err)
		return
	}

	if err = that.handleMessages(ctx, conn, sessionID); err != nil {
		log.Debug("stopped handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client one at a time.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, sessionID string) error {
	log := that.logger.With("method", "handleMessages", "gameID", sessionID)

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			var (
				syntaxErr *json.SyntaxError
				typeErr   *json.UnmarshalTypeError
			)
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				log.Warn("failed to unmarshal message", "error", err)
				if err = that.sendMessage(conn, actionError, ResponsePayload{Error: "invalid message"}); err != nil {
					return err
				}
				continue
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		response, err := that.dispatch(ctx, sessionID, &message)
		if err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}

		action := message.Action
		if errors.Is(err, ErrUnknownAction) {
			action = actionError
		}

		if err = that.sendMessage(conn, action, response); err != nil {
			return err
		}
	}
}

func (that *Server) dispatch(ctx context.Context, sessionID string, msg *Message) (ResponsePayload, error) {
	handler, ok := that.handlers[msg.Action]
	if !ok {
		return ResponsePayload{Error: "unknown action " + msg.Action}, fmt.Errorf("%w: %q", ErrUnknownAction, msg.Action)
	}

	return handler(ctx, sessionID, msg)
}

func (that *Server) sendState(conn *websocket.Conn, action string, game *tictactoe.Game) error {
	return that.sendMessage(conn, action, stateResponse(game))
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
