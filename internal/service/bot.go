package service

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

var (
	ErrNotBotTurn       = errors.New("it's not the bot's turn")
	ErrNoAvailableMoves = errors.New("no available moves")
)

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type moveSearcher interface {
	BestMove(board entity.Board) (entity.Move, bool)
}

type botService struct {
	searcher moveSearcher
}

func NewBotService(searcher moveSearcher) BotService {
	return &botService{
		searcher: searcher,
	}
}

// MakeTurn - plays the optimal move for the bot's mark.
func (that *botService) MakeTurn(game *entity.Game) error {
	if !game.IsBotTurn() {
		return ErrNotBotTurn
	}

	move, ok := that.searcher.BestMove(game.Board)
	if !ok {
		return ErrNoAvailableMoves
	}

	if err := game.MakeTurn(game.BotMark, move); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
