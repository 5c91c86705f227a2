package service

import (
	"fmt"

	"github.com/apex/log"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame starts a game under a fresh id. An empty fen means the standard
// starting position.
func (gs *GameService) CreateGame(fen string) (model.GameState, error) {
	gameID := uuid.New().String()

	state, err := gs.gameManager.CreateGame(gameID, fen)
	if err != nil {
		return model.GameState{}, fmt.Errorf("failed to create game: %w", err)
	}

	log.WithFields(log.Fields{"game": gameID, "fen": state.FEN, "status": state.Status}).Info("game created")
	return state, nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) LegalMoves(gameID string) ([]model.Move, error) {
	return gs.gameManager.LegalMoves(gameID)
}

func (gs *GameService) HandleMove(gameID string, from, to, promotion string) (model.GameState, error) {
	return gs.gameManager.MakeMove(gameID, from, to, promotion)
}

func (gs *GameService) SetPromotion(gameID string, piece string) (model.GameState, error) {
	return gs.gameManager.SetPromotion(gameID, piece)
}

func (gs *GameService) RegisterConnection(gameID string, clientID string, conn Subscriber) error {
	return gs.gameManager.RegisterConnection(gameID, clientID, conn)
}

func (gs *GameService) SendTo(gameID string, clientID string, msg ws.Message) error {
	return gs.gameManager.SendTo(gameID, clientID, msg)
}

func (gs *GameService) UnregisterConnection(gameID string, clientID string) {
	gs.gameManager.UnregisterConnection(gameID, clientID)
}
