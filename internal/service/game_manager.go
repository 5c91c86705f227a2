// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/apex/log"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrGameExists    = errors.New("game already exists")
	ErrIllegalMove   = errors.New("illegal move")
	ErrGameOver      = errors.New("game is over")
	ErrDuplicateConn = errors.New("connection already exists")
)

// Subscriber receives game state broadcasts. *websocket.Conn satisfies it.
type Subscriber interface {
	WriteJSON(v interface{}) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Subscriber // clientID -> connection
	mu          sync.RWMutex
}

// session pairs a game with its subscribers. The engine is single-threaded,
// so every access to game goes through mu.
type session struct {
	id          string
	mu          sync.Mutex
	game        *model.Game
	connections *GameConnections
}

type GameManager struct {
	games map[string]*session
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*session),
	}
}

// CreateGame registers a new game under gameID, from fen or, when fen is
// empty, from the standard starting position.
func (gm *GameManager) CreateGame(gameID string, fen string) (model.GameState, error) {
	game := model.NewGame()
	if fen != "" {
		var err error
		game, err = model.NewGameFromFEN(fen)
		if err != nil {
			return model.GameState{}, err
		}
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return model.GameState{}, ErrGameExists
	}
	gm.games[gameID] = &session{
		id:   gameID,
		game: game,
		connections: &GameConnections{
			connections: make(map[string]Subscriber),
		},
	}
	return game.State(gameID), nil
}

func (gm *GameManager) getSession(gameID string) (*session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	s, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return s, nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	s, err := gm.getSession(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State(gameID), nil
}

func (gm *GameManager) LegalMoves(gameID string) ([]model.Move, error) {
	s, err := gm.getSession(gameID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.SortedMoves(s.game.LegalMoves()), nil
}

// MakeMove plays from -> to (algebraic names). promotion may be empty to use
// the game's configured piece. The new state is broadcast to subscribers.
func (gm *GameManager) MakeMove(gameID string, from, to, promotion string) (model.GameState, error) {
	src, err := model.ParseSquare(from)
	if err != nil {
		return model.GameState{}, err
	}
	dst, err := model.ParseSquare(to)
	if err != nil {
		return model.GameState{}, err
	}
	var promo model.PieceType
	if promotion != "" {
		if promo, err = model.ParsePromotion(promotion); err != nil {
			return model.GameState{}, err
		}
	}

	s, err := gm.getSession(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game.Status().IsOver() {
		return model.GameState{}, fmt.Errorf("%w: %s", ErrGameOver, s.game.Status())
	}
	ok := false
	if promo != "" {
		ok, err = s.game.MakeMoveWithPromotion(src, dst, promo)
	} else {
		ok = s.game.MakeMove(src, dst)
	}
	if err != nil {
		return model.GameState{}, err
	}
	if !ok {
		return model.GameState{}, fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
	}
	state := s.game.State(gameID)

	log.WithFields(log.Fields{
		"game":   gameID,
		"move":   state.LastMove.String(),
		"status": state.Status,
		"fen":    state.FEN,
	}).Info("move applied")

	// still under s.mu so subscribers see states in move order
	s.broadcast(state)
	return state, nil
}

func (gm *GameManager) SetPromotion(gameID string, piece string) (model.GameState, error) {
	promo, err := model.ParsePromotion(piece)
	if err != nil {
		return model.GameState{}, err
	}
	s, err := gm.getSession(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.SetPromotion(promo)
	state := s.game.State(gameID)
	s.broadcast(state)
	return state, nil
}

func (gm *GameManager) RegisterConnection(gameID string, clientID string, conn Subscriber) error {
	s, err := gm.getSession(gameID)
	if err != nil {
		return err
	}

	s.connections.mu.Lock()
	if _, exists := s.connections.connections[clientID]; exists {
		s.connections.mu.Unlock()
		return ErrDuplicateConn
	}
	s.connections.connections[clientID] = conn
	s.connections.mu.Unlock()

	log.WithFields(log.Fields{"game": gameID, "client": clientID}).Info("subscriber registered")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcast(s.game.State(gameID))
	return nil
}

func (gm *GameManager) UnregisterConnection(gameID string, clientID string) {
	s, err := gm.getSession(gameID)
	if err != nil {
		return
	}
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	if _, exists := s.connections.connections[clientID]; exists {
		delete(s.connections.connections, clientID)
		log.WithFields(log.Fields{"game": gameID, "client": clientID}).Info("subscriber unregistered")
	}
}

// SendTo writes msg to one subscriber of the game. Writes share the lock
// broadcast holds, so a connection never has two writers.
func (gm *GameManager) SendTo(gameID string, clientID string, msg ws.Message) error {
	s, err := gm.getSession(gameID)
	if err != nil {
		return err
	}
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	conn, exists := s.connections.connections[clientID]
	if !exists {
		return fmt.Errorf("no subscriber %s in game %s", clientID, gameID)
	}
	return conn.WriteJSON(msg)
}

// broadcast sends state to every subscriber, dropping the ones that fail.
// Callers hold s.mu.
func (s *session) broadcast(state model.GameState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.WithError(err).WithField("game", s.id).Error("marshal game state")
		return
	}

	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	for clientID, conn := range s.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.WithError(err).WithFields(log.Fields{"game": s.id, "client": clientID}).Warn("dropping subscriber")
			conn.Close()
			delete(s.connections.connections, clientID)
		}
	}
}
