package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
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
	clientID, _ := c.Locals("clientID").(string)
	logger := log.WithFields(log.Fields{"game": gameID, "client": clientID})

	if err := wsc.gameService.RegisterConnection(gameID, clientID, c); err != nil {
		logger.WithError(err).Warn("rejecting websocket")
		closeCode := websocket.CloseNormalClosure
		if !errors.Is(err, service.ErrDuplicateConn) {
			closeCode = websocket.ClosePolicyViolation
		}
		if err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(closeCode, err.Error())); err != nil {
			logger.WithError(err).Debug("websocket close frame")
		}
		if err := c.Close(); err != nil {
			logger.WithError(err).Debug("websocket close")
		}
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, clientID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.WithError(err).Debug("websocket closed")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(logger, gameID, clientID, fmt.Sprintf("malformed message: %v", err))
			continue
		}
		if err := wsc.handleMessage(gameID, msg); err != nil {
			logger.WithError(err).WithField("type", msg.Type).Info("message rejected")
			wsc.sendError(logger, gameID, clientID, err.Error())
		}
	}
}

// handleMessage applies one client message. Successful changes reach the
// client through the game's state broadcast.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, move.From, move.To, move.Promotion)
		return err
	case ws.MessageTypePromotion:
		var promo ws.PromotionPayload
		if err := json.Unmarshal(msg.Payload, &promo); err != nil {
			return err
		}
		_, err := wsc.gameService.SetPromotion(gameID, promo.Piece)
		return err
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// sendError replies to one client. It goes through the service so it never
// races a state broadcast on the same connection.
func (wsc *WebSocketController) sendError(logger *log.Entry, gameID, clientID, errorMsg string) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		logger.WithError(err).Error("marshal error message")
		return
	}
	if err := wsc.gameService.SendTo(gameID, clientID, msg); err != nil {
		logger.WithError(err).Debug("send error message")
	}
}
