package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

type GameService interface {
	CreateGame(ctx context.Context, playerMark entity.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, move entity.Move) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	logger *slog.Logger

	gameRepo   gameRepo
	botService BotService
}

func NewGameService(logger *slog.Logger, gameRepo gameRepo, botService BotService) GameService {
	return &gameService{
		logger:     logger.With("component", "gameService"),
		gameRepo:   gameRepo,
		botService: botService,
	}
}

// CreateGame - starts a game against the bot. When the bot holds X it opens the game.
func (that *gameService) CreateGame(ctx context.Context, playerMark entity.Mark) (*entity.Game, error) {
	game, err := entity.NewGame(uuid.NewString(), playerMark)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "playerMark", game.PlayerMark)

	return game, nil
}

func (that *gameService) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

// MakeTurn - plays the player's move and, unless the game ended, the bot's reply.
func (that *gameService) MakeTurn(ctx context.Context, id string, move entity.Move) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", id)

	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.MakeTurn(game.PlayerMark, move); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner)
	}

	return game, nil
}

func (that *gameService) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}
