package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds = errors.New("cell is out of bounds")
	ErrInvalidMove = errors.New("invalid move")

	ErrCellOccupied    = fmt.Errorf("%w: cell is already occupied", ErrInvalidMove)
	ErrGameAlreadyOver = fmt.Errorf("%w: game is already over", ErrInvalidMove)

	ErrGameNotFound   = errors.New("game not found")
	ErrInvalidRequest = errors.New("invalid request")
)
