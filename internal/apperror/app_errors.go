package apperror

import "errors"

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrInvalidBoard = errors.New("invalid board")
	ErrInvalidMark  = errors.New("invalid mark")
	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
)
