package service

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-server/internal/tictactoe"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	MakeTurn(state *tictactoe.State) (tictactoe.Coord, error)
}

type botService struct {
	pick func(n int) int
}

// NewBotService - a bot that plays a random empty cell. pick may be nil.
func NewBotService(pick func(n int) int) BotService {
	if pick == nil {
		pick = rand.IntN //nolint: gosec // it's ok
	}

	return &botService{pick: pick}
}

func (that *botService) MakeTurn(state *tictactoe.State) (tictactoe.Coord, error) {
	availableCells := make([]tictactoe.Coord, 0, tictactoe.Size*tictactoe.Size)
	for row := range tictactoe.Size {
		for col := range tictactoe.Size {
			if state.Board[row][col] == tictactoe.Empty {
				availableCells = append(availableCells, tictactoe.Coord{Row: row, Col: col})
			}
		}
	}

	if len(availableCells) == 0 {
		return tictactoe.Coord{}, ErrNoAvailableMoves
	}

	chosenCell := availableCells[that.pick(len(availableCells))]

	if _, err := state.AttemptMove(chosenCell.Row, chosenCell.Col); err != nil {
		return chosenCell, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return chosenCell, nil
}
