package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameIsNotStarted  = errors.New("game is not started")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrGameNotFound      = errors.New("game not found")
	ErrCorruptedSnapshot = errors.New("corrupted game snapshot")
)

// IsRejectedMove - reports whether err is a move the rules refused, as
// opposed to an infrastructure failure.
func IsRejectedMove(err error) bool {
	return errors.Is(err, ErrGameFinished) ||
		errors.Is(err, ErrGameIsNotStarted) ||
		errors.Is(err, ErrCellOccupied) ||
		errors.Is(err, ErrInvalidCell)
}

// Reason - a stable code for a rejected move, empty for any other error.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrGameIsNotStarted):
		return "not_started"
	case errors.Is(err, ErrGameFinished):
		return "game_over"
	case errors.Is(err, ErrInvalidCell):
		return "invalid_cell"
	case errors.Is(err, ErrCellOccupied):
		return "cell_occupied"
	default:
		return ""
	}
}
