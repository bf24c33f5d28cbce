package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")

	// Register this connection with the game
	connID, err := wsc.gameService.RegisterConnection(gameID, c)
	if err != nil {
		log.Warnw("failed to register connection", "game", gameID, "error", err)
		_ = c.WriteJSON(ws.NewErrorMessage(err.Error()))
		_ = c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, connID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugw("read error", "game", gameID, "conn", connID, "error", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.gameService.SendError(gameID, connID, fmt.Errorf("%w: %v", service.ErrInvalidRequest, err))
			continue
		}
		if err := wsc.handleMessage(gameID, msg); err != nil {
			wsc.gameService.SendError(gameID, connID, err)
		}
	}
}

// handleMessage applies one inbound message. Successful changes reach every
// watcher through the game's broadcast, so nothing is written back here.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move service.MoveRequest
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return fmt.Errorf("%w: %v", service.ErrInvalidRequest, err)
		}
		_, err := wsc.gameService.HandleMove(gameID, move)
		return err

	case ws.MessageTypePromote:
		var req service.PromoteRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return fmt.Errorf("%w: %v", service.ErrInvalidRequest, err)
		}
		_, err := wsc.gameService.Promote(gameID, req)
		return err

	case ws.MessageTypeReset:
		_, err := wsc.gameService.Reset(gameID)
		return err

	default:
		return fmt.Errorf("%w: unknown message type %q", service.ErrInvalidRequest, msg.Type)
	}
}
