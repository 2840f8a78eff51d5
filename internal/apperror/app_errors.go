package apperror

import "errors"

var (
	ErrOutOfRange    = errors.New("cell is out of range")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrEmptyHistory  = errors.New("no moves to undo")
	ErrGameFinished  = errors.New("game is already finished")
	ErrInvalidBoard  = errors.New("invalid board dimensions")
	ErrNoActiveGame  = errors.New("no active game")
	ErrResultMissing = errors.New("game has no result yet")
)

// IsInvalidMove reports whether err rejects a play target (out of range or occupied).
func IsInvalidMove(err error) bool {
	return errors.Is(err, ErrOutOfRange) || errors.Is(err, ErrCellOccupied)
}
