package tictactoe

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

type Option func(searcher *Searcher)

// WithWorkers - evaluates the root moves on up to n goroutines. 1 keeps the search sequential.
func WithWorkers(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Searcher runs an exhaustive minimax search. X maximizes, O minimizes.
type Searcher struct {
	workers int
	logger  *slog.Logger
}

func New(opts ...Option) *Searcher {
	searcher := &Searcher{
		workers: 1,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(searcher)
	}

	return searcher
}

type MoveValue struct {
	Move  entity.Move `json:"move"`
	Value int         `json:"value"`
}

// Analysis is the full search result for one board.
type Analysis struct {
	Turn    entity.Mark
	Outcome entity.Outcome
	Move    entity.Move
	HasMove bool
	Value   int
	Moves   []MoveValue
	Nodes   int64
}

var defaultSearcher = New()

// BestMove - searches board with a sequential Searcher.
func BestMove(board entity.Board) (entity.Move, bool) {
	return defaultSearcher.BestMove(board)
}

// BestMove - returns the optimal move for the player to move, false if board is terminal.
// A move that wins on the spot is returned without searching its siblings. Otherwise the
// first move in row-major order among those with the optimal value is returned.
func (that *Searcher) BestMove(board entity.Board) (entity.Move, bool) {
	log := that.logger.With("method", "BestMove")

	turn := board.Turn()
	if turn == entity.EmptyCell {
		return entity.Move{}, false
	}

	moves := board.LegalMoves()
	children := expand(board, moves)

	for i, child := range children {
		if child.IsTerminal() && child.Utility() == target(turn) {
			log.Debug("winning move", "turn", turn, "move", moves[i])
			return moves[i], true
		}
	}

	var nodes atomic.Int64
	values := that.evaluate(children, &nodes)
	best := choose(turn, children, values)

	log.Debug("best move", "turn", turn, "move", moves[best], "value", values[best], "nodes", nodes.Load())

	return moves[best], true
}

// Value - returns the game-theoretic value of board: 1 X wins, -1 O wins, 0 draw.
func (that *Searcher) Value(board entity.Board) int {
	var nodes atomic.Int64
	return that.value(board, &nodes)
}

// Analyze - like BestMove, but scores every legal move before choosing.
func (that *Searcher) Analyze(board entity.Board) Analysis {
	result := Analysis{
		Turn:    board.Turn(),
		Outcome: board.Outcome(),
		Value:   board.Utility(),
		Nodes:   1,
	}

	if result.Turn == entity.EmptyCell {
		return result
	}

	moves := board.LegalMoves()
	children := expand(board, moves)

	var nodes atomic.Int64
	values := that.evaluate(children, &nodes)
	best := choose(result.Turn, children, values)

	result.Moves = make([]MoveValue, len(moves))
	for i, move := range moves {
		result.Moves[i] = MoveValue{Move: move, Value: values[i]}
	}

	result.Move = moves[best]
	result.HasMove = true
	result.Value = values[best]
	result.Nodes += nodes.Load()

	that.logger.Debug("board analyzed", "method", "Analyze", "turn", result.Turn, "move", result.Move, "value", result.Value, "nodes", result.Nodes)

	return result
}

func (that *Searcher) evaluate(children []entity.Board, nodes *atomic.Int64) []int {
	values := make([]int, len(children))

	if that.workers <= 1 || len(children) < 2 {
		for i, child := range children {
			values[i] = that.value(child, nodes)
		}
		return values
	}

	var group errgroup.Group
	group.SetLimit(that.workers)

	for i, child := range children {
		i, child := i, child // per-iteration copies: go directive is 1.21 (pre-1.22 loopvar semantics)
		group.Go(func() error {
			values[i] = that.value(child, nodes)
			return nil
		})
	}

	// branches never fail
	_ = group.Wait()

	return values
}

func (that *Searcher) value(board entity.Board, nodes *atomic.Int64) int {
	nodes.Add(1)

	if board.IsTerminal() {
		return board.Utility()
	}

	turn := board.Turn()
	goal := target(turn)
	best := -goal

	for _, move := range board.LegalMoves() {
		v := that.value(mustApply(board, move), nodes)
		if v == goal {
			return v
		}

		if better(turn, v, best) {
			best = v
		}
	}

	return best
}

// choose - index of the move to play: an immediate win if there is one, otherwise the
// first child holding the optimal value.
func choose(turn entity.Mark, children []entity.Board, values []int) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if better(turn, values[i], values[best]) {
			best = i
		}
	}

	for i, child := range children {
		if values[i] == values[best] && child.IsTerminal() {
			return i
		}
	}

	return best
}

func expand(board entity.Board, moves []entity.Move) []entity.Board {
	children := make([]entity.Board, len(moves))
	for i, move := range moves {
		children[i] = mustApply(board, move)
	}
	return children
}

func mustApply(board entity.Board, move entity.Move) entity.Board {
	next, err := board.Apply(move)
	if err != nil {
		panic(fmt.Errorf("legal move %s rejected: %w", move, err))
	}
	return next
}

// target - the best value the mover can reach.
func target(turn entity.Mark) int {
	if turn == entity.PlayerO {
		return -1
	}
	return 1
}

func better(turn entity.Mark, a, b int) bool {
	if turn == entity.PlayerO {
		return a < b
	}
	return a > b
}
