package websocket

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

const internalErrorText = "internal error"

// clientErrors are safe to echo back; anything else is reported as internalErrorText.
var clientErrors = []error{
	apperror.ErrIllegalMove,
	apperror.ErrInvalidBoard,
	apperror.ErrInvalidMark,
	apperror.ErrGameFinished,
	apperror.ErrNotYourTurn,
	repository.ErrGameNotFound,
}

const (
	actionGameNew    = "game:new"
	actionGameTurn   = "game:turn"
	actionGameState  = "game:state"
	actionBoardSolve = "board:solve"
	actionError      = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	GameID   string        `json:"game_id,omitempty"`
	Mark     entity.Mark   `json:"mark,omitempty"`
	Move     *entity.Move  `json:"move,omitempty"`
	Board    *entity.Board `json:"board,omitempty"`
	Game     *entity.Game  `json:"game,omitempty"`
	Solution *Solution     `json:"solution,omitempty"`
	Error    string        `json:"error,omitempty"`
}

type Solution struct {
	Turn    entity.Mark           `json:"turn"`
	Outcome entity.Outcome        `json:"outcome"`
	Move    *entity.Move          `json:"move"`
	Value   int                   `json:"value"`
	Moves   []tictactoe.MoveValue `json:"moves,omitempty"`
}

func newSolution(analysis tictactoe.Analysis) *Solution {
	solution := &Solution{
		Turn:    analysis.Turn,
		Outcome: analysis.Outcome,
		Value:   analysis.Value,
		Moves:   analysis.Moves,
	}

	if analysis.HasMove {
		move := analysis.Move
		solution.Move = &move
	}

	return solution
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload Payload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response := Message{
		Action:  action,
		Payload: payloadJSON,
	}

	if err = conn.WriteJSON(response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *websocket.Conn, action, errMsg string) error {
	return that.sendMessage(conn, action, Payload{Error: errMsg})
}

func isClientError(err error) bool {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func errorText(err error) string {
	if isClientError(err) {
		return err.Error()
	}
	return internalErrorText
}
