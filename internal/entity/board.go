package entity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const BoardSize = 3

type Outcome string

const (
	OutcomeXWins      Outcome = "x_wins"
	OutcomeOWins      Outcome = "o_wins"
	OutcomeDraw       Outcome = "draw"
	OutcomeInProgress Outcome = "in_progress"
)

// WinLines lists rows, then columns, then the two diagonals.
var WinLines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Opponent returns the other player, or EmptyCell for EmptyCell.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Move) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// UnmarshalJSON - requires both coordinates; a missing one would otherwise decode as 0.
func (that *Move) UnmarshalJSON(data []byte) error {
	var raw struct {
		Row *int `json:"row"`
		Col *int `json:"col"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrIllegalMove, err)
	}

	if raw.Row == nil || raw.Col == nil {
		return fmt.Errorf("%w: row and col are required", apperror.ErrIllegalMove)
	}

	that.Row, that.Col = *raw.Row, *raw.Col

	return nil
}

func (that Move) inRange() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

// Board is a value: transitions return a new Board and never touch the receiver.
type Board [BoardSize][BoardSize]Mark

// NewBoard - returns the empty starting board.
func NewBoard() Board {
	return Board{}
}

func (that Board) Cell(move Move) Mark {
	if !move.inRange() {
		return EmptyCell
	}
	return that[move.Row][move.Col]
}

func (that Board) Count(mark Mark) int {
	n := 0
	for _, row := range that {
		for _, cell := range row {
			if cell == mark {
				n++
			}
		}
	}
	return n
}

// Turn - returns the player to move, or EmptyCell when the board is terminal.
func (that Board) Turn() Mark {
	x, o := that.Count(PlayerX), that.Count(PlayerO)
	if x == 0 && o == 0 {
		return PlayerX
	}

	if that.IsTerminal() {
		return EmptyCell
	}

	if x > o {
		return PlayerO
	}
	return PlayerX
}

// LegalMoves - returns the empty cells in row-major order, none for a terminal board.
func (that Board) LegalMoves() []Move {
	if that.IsTerminal() {
		return nil
	}

	moves := make([]Move, 0, BoardSize*BoardSize)
	for i, row := range that {
		for j, cell := range row {
			if cell == EmptyCell {
				moves = append(moves, Move{Row: i, Col: j})
			}
		}
	}
	return moves
}

// Apply - returns the board with move marked by the player to move.
func (that Board) Apply(move Move) (Board, error) {
	if !move.inRange() {
		return that, fmt.Errorf("%w: cell %s is out of range", apperror.ErrIllegalMove, move)
	}

	if that[move.Row][move.Col] != EmptyCell {
		return that, fmt.Errorf("%w: cell %s is already occupied", apperror.ErrIllegalMove, move)
	}

	mark := that.Turn()
	if mark == EmptyCell {
		return that, fmt.Errorf("%w: board is terminal", apperror.ErrIllegalMove)
	}

	next := that
	next[move.Row][move.Col] = mark

	return next, nil
}

// Winner - returns the mark of the first completed line, or EmptyCell if there is none.
func (that Board) Winner() Mark {
	for _, line := range WinLines {
		a, b, c := that.Cell(line[0]), that.Cell(line[1]), that.Cell(line[2])
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}
	return EmptyCell
}

func (that Board) IsFull() bool {
	return that.Count(EmptyCell) == 0
}

func (that Board) IsTerminal() bool {
	return that.Winner() != EmptyCell || that.IsFull()
}

// Utility - 1 if X holds a line, -1 if O does, 0 otherwise.
func (that Board) Utility() int {
	switch that.Winner() {
	case PlayerX:
		return 1
	case PlayerO:
		return -1
	default:
		return 0
	}
}

func (that Board) Outcome() Outcome {
	switch winner := that.Winner(); {
	case winner == PlayerX:
		return OutcomeXWins
	case winner == PlayerO:
		return OutcomeOWins
	case that.IsFull():
		return OutcomeDraw
	default:
		return OutcomeInProgress
	}
}

// Validate - checks that the board could have been reached by alternating play from NewBoard.
func (that Board) Validate() error {
	for i, row := range that {
		for j, cell := range row {
			if cell != EmptyCell && !cell.IsPlayer() {
				return fmt.Errorf("%w: unknown mark %q at (%d,%d)", apperror.ErrInvalidBoard, cell, i, j)
			}
		}
	}

	x, o := that.Count(PlayerX), that.Count(PlayerO)
	if diff := x - o; diff < 0 || diff > 1 {
		return fmt.Errorf("%w: %d X marks against %d O marks", apperror.ErrInvalidBoard, x, o)
	}

	xLine, oLine := false, false
	for _, line := range WinLines {
		a, b, c := that.Cell(line[0]), that.Cell(line[1]), that.Cell(line[2])
		if a == b && b == c {
			xLine = xLine || a == PlayerX
			oLine = oLine || a == PlayerO
		}
	}

	switch {
	case xLine && oLine:
		return fmt.Errorf("%w: both players hold a line", apperror.ErrInvalidBoard)
	case xLine && x != o+1:
		return fmt.Errorf("%w: O moved after X won", apperror.ErrInvalidBoard)
	case oLine && x != o:
		return fmt.Errorf("%w: X moved after O won", apperror.ErrInvalidBoard)
	}

	return nil
}

// UnmarshalJSON - accepts exactly BoardSize rows of BoardSize cells. Extra or missing
// cells are an error rather than being dropped or zero-filled.
func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Mark
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidBoard, err)
	}

	if len(rows) != BoardSize {
		return fmt.Errorf("%w: expected %d rows, got %d", apperror.ErrInvalidBoard, BoardSize, len(rows))
	}

	var board Board
	for i, row := range rows {
		if len(row) != BoardSize {
			return fmt.Errorf("%w: expected %d cells in row %d, got %d", apperror.ErrInvalidBoard, BoardSize, i, len(row))
		}
		copy(board[i][:], row)
	}

	*that = board

	return nil
}

func (that Board) String() string {
	var sb strings.Builder
	for i, row := range that {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				sb.WriteByte(' ')
			}
			if cell == EmptyCell {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(string(cell))
		}
	}
	return sb.String()
}
