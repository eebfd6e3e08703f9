package apperror

import "errors"

// Programming-error class. Values wrapping these are panicked, never returned.
var (
	ErrOutOfBounds  = errors.New("index out of bounds")
	ErrNoLegalMove  = errors.New("no possible move, even though the game shouldn't be finished")
	ErrMoveRejected = errors.New("chosen cell is already occupied")
)

var (
	ErrInvalidDimensions = errors.New("board dimensions must be positive")
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameNotFinished   = errors.New("game is not finished")
	ErrIllegalTurn       = errors.New("mover did not apply exactly one move")
	ErrInputClosed       = errors.New("input closed")
	ErrInvalidConfig     = errors.New("invalid config")
)
