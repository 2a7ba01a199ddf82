package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

func TestNewGame(t *testing.T) {
	t.Run("Player takes X", func(t *testing.T) {
		// When: creating a game where the player is X
		game, err := NewGame("123", PlayerX)
		require.NoError(t, err)

		// Then: the game starts empty with X to move and the bot holding O
		expectedGame := &Game{
			ID:         "123",
			Board:      NewBoard(),
			Turn:       PlayerX,
			Status:     StatusOngoing,
			PlayerMark: PlayerX,
			BotMark:    PlayerO,
		}
		require.Equal(t, expectedGame, game)
		assert.False(t, game.IsBotTurn())
	})

	t.Run("Player takes O", func(t *testing.T) {
		game, err := NewGame("123", PlayerO)
		require.NoError(t, err)

		assert.Equal(t, PlayerX, game.BotMark)
		assert.True(t, game.IsBotTurn())
	})

	t.Run("Error on invalid mark", func(t *testing.T) {
		_, err := NewGame("123", "Z")
		require.ErrorIs(t, err, apperror.ErrInvalidMark)

		_, err = NewGame("123", EmptyCell)
		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("Successful Turn", func(t *testing.T) {
		// Given: A new game
		game, err := NewGame("123", PlayerX)
		require.NoError(t, err)

		// When: Player X makes a valid turn
		err = game.MakeTurn(PlayerX, Move{Row: 0, Col: 0})
		require.NoError(t, err)

		// Then: The board reflects the turn and the turn passes to O
		assert.Equal(t, Board{{x, e, e}, {e, e, e}, {e, e, e}}, game.Board)
		assert.Equal(t, PlayerO, game.Turn)
		assert.Equal(t, StatusOngoing, game.Status)
		assert.True(t, game.IsBotTurn())
	})

	t.Run("Error on Cell Already Occupied", func(t *testing.T) {
		// Given: A game where cell (0,0) is occupied by Player X
		game, err := NewGame("123", PlayerX)
		require.NoError(t, err)
		require.NoError(t, game.MakeTurn(PlayerX, Move{Row: 0, Col: 0}))

		before := *game

		// When: Player O tries to move to the same cell
		err = game.MakeTurn(PlayerO, Move{Row: 0, Col: 0})

		// Then: ErrIllegalMove is returned and the game is unchanged
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		require.Equal(t, before, *game)
	})

	t.Run("Error on Playing Out of Turn", func(t *testing.T) {
		game, err := NewGame("123", PlayerX)
		require.NoError(t, err)

		err = game.MakeTurn(PlayerO, Move{Row: 1, Col: 1})

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, NewBoard(), game.Board)
	})

	t.Run("Error on Invalid Cell", func(t *testing.T) {
		game, err := NewGame("123", PlayerX)
		require.NoError(t, err)

		err = game.MakeTurn(PlayerX, Move{Row: 5, Col: 0})

		assert.ErrorIs(t, err, apperror.ErrIllegalMove)
	})

	t.Run("Winning turn finishes the game", func(t *testing.T) {
		// Given: X is one move from completing the top row
		game := &Game{
			Board:  Board{{x, x, e}, {o, o, e}, {e, e, e}},
			Turn:   PlayerX,
			Status: StatusOngoing,
		}

		// When: X completes the row
		err := game.MakeTurn(PlayerX, Move{Row: 0, Col: 2})
		require.NoError(t, err)

		// Then: the game is finished with X as the winner
		assert.True(t, game.IsFinished())
		assert.Equal(t, string(PlayerX), game.Winner)
		assert.Equal(t, EmptyCell, game.Turn)
	})

	t.Run("Last turn draws the game", func(t *testing.T) {
		game := &Game{
			Board:  Board{{x, o, x}, {x, o, o}, {o, x, e}},
			Turn:   PlayerX,
			Status: StatusOngoing,
		}

		err := game.MakeTurn(PlayerX, Move{Row: 2, Col: 2})
		require.NoError(t, err)

		assert.True(t, game.IsFinished())
		assert.Equal(t, PlayerTie, game.Winner)
	})

	t.Run("Move After Game Finished", func(t *testing.T) {
		game := &Game{
			Board:  Board{{x, x, x}, {o, o, e}, {e, e, e}},
			Status: StatusFinished,
			Winner: string(PlayerX),
		}

		err := game.MakeTurn(PlayerO, Move{Row: 1, Col: 2})

		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}
