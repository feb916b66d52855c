package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-server/internal/tictactoe"
)

const (
	MoveAccepted     = "accepted"
	MoveOutOfBounds  = "out_of_bounds"
	MoveCellOccupied = "cell_occupied"
	MoveGameOver     = "game_over"
	MoveFailed       = "failed"

	GameCreated   = "created"
	GameRestarted = "restarted"
)

var (
	Moves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tictactoe_moves_total",
			Help: "Moves attempted, by result",
		},
		[]string{"result"},
	)
	Games = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tictactoe_games_total",
			Help: "Game lifecycle events",
		},
		[]string{"event"},
	)
	Outcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tictactoe_outcomes_total",
			Help: "Finished games, by outcome",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(Moves)
	prometheus.MustRegister(Games)
	prometheus.MustRegister(Outcomes)
}

// ObserveMove counts a move attempt and, when it ended the game, its outcome.
func ObserveMove(outcome tictactoe.Outcome, err error) {
	Moves.WithLabelValues(MoveResult(err)).Inc()

	if err == nil && outcome.Status != tictactoe.StatusInProgress {
		Outcomes.WithLabelValues(string(outcome.Status)).Inc()
	}
}

// MoveResult maps a move error to its metric label.
func MoveResult(err error) string {
	switch {
	case err == nil:
		return MoveAccepted
	case errors.Is(err, apperror.ErrOutOfBounds):
		return MoveOutOfBounds
	case errors.Is(err, apperror.ErrCellOccupied):
		return MoveCellOccupied
	case errors.Is(err, apperror.ErrGameAlreadyOver):
		return MoveGameOver
	default:
		return MoveFailed
	}
}
