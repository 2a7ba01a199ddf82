package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerTie = "-"
)

// Game is a session between a client and the bot.
type Game struct {
	ID         string `json:"id"`
	Board      Board  `json:"board"`
	Turn       Mark   `json:"player_turn"`
	Winner     string `json:"winner"`
	Status     string `json:"status"`
	PlayerMark Mark   `json:"player_mark"`
	BotMark    Mark   `json:"bot_mark"`
}

func NewGame(id string, playerMark Mark) (*Game, error) {
	if !playerMark.IsPlayer() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, playerMark)
	}

	board := NewBoard()

	return &Game{
		ID:         id,
		Board:      board,
		Turn:       board.Turn(),
		Status:     StatusOngoing,
		PlayerMark: playerMark,
		BotMark:    playerMark.Opponent(),
	}, nil
}

func (that *Game) UpdateGameState() {
	that.Turn = that.Board.Turn()

	switch that.Board.Outcome() {
	case OutcomeXWins:
		that.Winner = string(PlayerX)
		that.Status = StatusFinished
	case OutcomeOWins:
		that.Winner = string(PlayerO)
		that.Status = StatusFinished
	case OutcomeDraw:
		that.Winner = PlayerTie
		that.Status = StatusFinished
	default:
		that.Winner = ""
		that.Status = StatusOngoing
	}
}

// MakeTurn - places mark at move; the game is left unchanged on error.
func (that *Game) MakeTurn(mark Mark, move Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	next, err := that.Board.Apply(move)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.Board = next
	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsBotTurn() bool {
	return that.IsOngoing() && that.Turn == that.BotMark
}
