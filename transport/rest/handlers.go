package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

type gameService interface {
	CreateGame(ctx context.Context, playerMark entity.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, move entity.Move) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error
}

type solverService interface {
	Solve(board entity.Board) (tictactoe.Analysis, error)
}

type createGameRequest struct {
	Mark entity.Mark `json:"mark"`
}

type solveRequest struct {
	Board *entity.Board `json:"board"`
}

type solveResponse struct {
	Turn    entity.Mark           `json:"turn"`
	Outcome entity.Outcome        `json:"outcome"`
	Move    *entity.Move          `json:"move"`
	Value   int                   `json:"value"`
	Moves   []tictactoe.MoveValue `json:"moves,omitempty"`
	Nodes   int64                 `json:"nodes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handlers struct {
	logger *slog.Logger

	gameService   gameService
	solverService solverService
}

func NewHandlers(logger *slog.Logger, gameService gameService, solverService solverService) *Handlers {
	return &Handlers{
		logger:        logger.With("component", "rest"),
		gameService:   gameService,
		solverService: solverService,
	}
}

func (that *Handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, "CreateGame", http.StatusBadRequest, err)
		return
	}

	game, err := that.gameService.CreateGame(r.Context(), req.Mark)
	if err != nil {
		that.writeError(w, "CreateGame", statusFor(err), err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameService.GetGame(r.Context(), mux.Vars(r)["gameID"])
	if err != nil {
		that.writeError(w, "GetGame", statusFor(err), err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var move entity.Move
	if err := json.NewDecoder(r.Body).Decode(&move); err != nil {
		that.writeError(w, "MakeTurn", http.StatusBadRequest, err)
		return
	}

	game, err := that.gameService.MakeTurn(r.Context(), mux.Vars(r)["gameID"], move)
	if err != nil {
		that.writeError(w, "MakeTurn", statusFor(err), err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameService.DeleteGame(r.Context(), mux.Vars(r)["gameID"]); err != nil {
		that.writeError(w, "DeleteGame", statusFor(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Handlers) Solve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, "Solve", http.StatusBadRequest, err)
		return
	}

	if req.Board == nil {
		that.writeError(w, "Solve", http.StatusBadRequest, fmt.Errorf("%w: board is required", apperror.ErrInvalidBoard))
		return
	}

	analysis, err := that.solverService.Solve(*req.Board)
	if err != nil {
		that.writeError(w, "Solve", statusFor(err), err)
		return
	}

	that.writeJSON(w, http.StatusOK, newSolveResponse(analysis))
}

func newSolveResponse(analysis tictactoe.Analysis) solveResponse {
	resp := solveResponse{
		Turn:    analysis.Turn,
		Outcome: analysis.Outcome,
		Value:   analysis.Value,
		Moves:   analysis.Moves,
		Nodes:   analysis.Nodes,
	}

	if analysis.HasMove {
		move := analysis.Move
		resp.Move = &move
	}

	return resp
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrIllegalMove),
		errors.Is(err, apperror.ErrInvalidBoard),
		errors.Is(err, apperror.ErrInvalidMark):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (that *Handlers) writeError(w http.ResponseWriter, method string, status int, err error) {
	message := err.Error()
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		message = http.StatusText(status)
	}

	that.writeJSON(w, status, errorResponse{Error: message})
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
