package service

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

type SolverService interface {
	Solve(board entity.Board) (tictactoe.Analysis, error)
}

type boardAnalyzer interface {
	Analyze(board entity.Board) tictactoe.Analysis
}

type solverService struct {
	analyzer boardAnalyzer
}

func NewSolverService(analyzer boardAnalyzer) SolverService {
	return &solverService{
		analyzer: analyzer,
	}
}

// Solve - analyzes a board supplied by a client; boards that alternating play cannot reach are rejected.
func (that *solverService) Solve(board entity.Board) (tictactoe.Analysis, error) {
	if err := board.Validate(); err != nil {
		return tictactoe.Analysis{}, fmt.Errorf("failed to solve board: %w", err)
	}

	return that.analyzer.Analyze(board), nil
}
