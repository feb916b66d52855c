package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-server/internal/tictactoe"
)

func first(int) int { return 0 }

func TestBotService_MakeTurn(t *testing.T) {
	t.Run("Plays an empty cell", func(t *testing.T) {
		// Given: a game where PlayerA took the first cell
		state := tictactoe.New()
		_, err := state.AttemptMove(0, 0)
		require.NoError(t, err)

		// When: the bot plays
		cell, err := NewBotService(first).MakeTurn(state)

		// Then: it picks the first free cell for PlayerB
		require.NoError(t, err)
		assert.Equal(t, tictactoe.Coord{Row: 0, Col: 1}, cell)
		assert.Equal(t, tictactoe.PlayerB, state.Board[0][1])
		assert.Equal(t, tictactoe.PlayerA, state.Current)
	})

	t.Run("Random pick stays on free cells", func(t *testing.T) {
		state := tictactoe.New()
		bot := NewBotService(nil)

		for !state.IsFinished() {
			_, err := bot.MakeTurn(state)
			require.NoError(t, err)
		}

		assert.NotEqual(t, tictactoe.StatusInProgress, state.Outcome.Status)
	})

	t.Run("Error on finished game", func(t *testing.T) {
		// Given: a game PlayerA already won with free cells left
		state := tictactoe.New()
		for _, move := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}} {
			_, err := state.AttemptMove(move[0], move[1])
			require.NoError(t, err)
		}

		// When: the bot tries to play
		_, err := NewBotService(first).MakeTurn(state)

		// Then: the engine refuses
		require.ErrorIs(t, err, apperror.ErrGameAlreadyOver)
	})

	t.Run("Error on full board", func(t *testing.T) {
		state := tictactoe.New()
		for row := range tictactoe.Size {
			for col := range tictactoe.Size {
				state.Board[row][col] = tictactoe.PlayerA
			}
		}

		_, err := NewBotService(first).MakeTurn(state)

		require.ErrorIs(t, err, ErrNoAvailableMoves)
	})
}
