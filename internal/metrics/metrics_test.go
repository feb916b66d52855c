package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-server/internal/tictactoe"
)

func TestMoveResult(t *testing.T) {
	cases := map[string]error{
		MoveAccepted:     nil,
		MoveOutOfBounds:  fmt.Errorf("invalid turn: %w", apperror.ErrOutOfBounds),
		MoveCellOccupied: fmt.Errorf("invalid turn: %w", apperror.ErrCellOccupied),
		MoveGameOver:     fmt.Errorf("invalid turn: %w", apperror.ErrGameAlreadyOver),
		MoveFailed:       errors.New("redis down"),
	}

	for expected, err := range cases {
		assert.Equal(t, expected, MoveResult(err))
	}
}

func TestObserveMove(t *testing.T) {
	// Given: the current counter values
	accepted := testutil.ToFloat64(Moves.WithLabelValues(MoveAccepted))
	wins := testutil.ToFloat64(Outcomes.WithLabelValues(string(tictactoe.StatusWin)))

	// When: a winning move and a running move are observed
	ObserveMove(tictactoe.Outcome{Status: tictactoe.StatusWin, Winner: tictactoe.PlayerA}, nil)
	ObserveMove(tictactoe.Outcome{Status: tictactoe.StatusInProgress}, nil)

	// Then: both moves count, only one outcome does
	assert.InDelta(t, accepted+2, testutil.ToFloat64(Moves.WithLabelValues(MoveAccepted)), 0)
	assert.InDelta(t, wins+1, testutil.ToFloat64(Outcomes.WithLabelValues(string(tictactoe.StatusWin))), 0)
}
