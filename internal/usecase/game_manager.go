package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
	"github.com/rocketscienceinc/tictactoe-server/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-server/internal/tictactoe"
)

const (
	DefaultResultsLimit = 20
	MaxResultsLimit     = 100
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.Result) error
	List(ctx context.Context, limit int) ([]*entity.Result, error)
	Stats(ctx context.Context) (*entity.Stats, error)
}

// GameManager hosts engine states for the network transports.
type GameManager struct {
	logger     *slog.Logger
	gameRepo   gameRepo
	resultRepo resultRepo

	locks *sessionLocks
	now   func() time.Time
	newID func() string
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, resultRepo resultRepo) *GameManager {
	return &GameManager{
		logger:     logger.With("component", "game_manager"),
		gameRepo:   gameRepo,
		resultRepo: resultRepo,

		locks: newSessionLocks(),
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
}

func (that *GameManager) NewGame(ctx context.Context) (*entity.Game, error) {
	game := entity.NewGame(that.newID(), that.now())

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	metrics.Games.WithLabelValues(metrics.GameCreated).Inc()
	that.logger.Info("game created", "gameID", game.ID)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeMove - plays the current player's mark at (row, col).
// A rejected move returns the unchanged game together with the engine error.
func (that *GameManager) MakeMove(ctx context.Context, id string, row, col int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeMove", "gameID", id)

	unlock := that.locks.lock(id)
	defer unlock()

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	outcome, err := game.State.AttemptMove(row, col)
	metrics.ObserveMove(outcome, err)
	if err != nil {
		return game, fmt.Errorf("failed make turn: %w", err)
	}

	game.Touch(that.now())
	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	if game.IsFinished() {
		log.Info("game finished", "status", outcome.Status, "winner", outcome.Winner)
		that.saveResult(ctx, game)
	}

	return game, nil
}

// Restart - resets the board of an existing game.
func (that *GameManager) Restart(ctx context.Context, id string) (*entity.Game, error) {
	unlock := that.locks.lock(id)
	defer unlock()

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	game.State.Reset()
	game.Touch(that.now())

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	metrics.Games.WithLabelValues(metrics.GameRestarted).Inc()

	return game, nil
}

func (that *GameManager) QueryCell(ctx context.Context, id string, row, col int) (tictactoe.Mark, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return tictactoe.Empty, err
	}

	mark, err := game.State.QueryCell(row, col)
	if err != nil {
		return tictactoe.Empty, fmt.Errorf("failed query cell: %w", err)
	}

	return mark, nil
}

func (that *GameManager) EndGame(ctx context.Context, id string) error {
	unlock := that.locks.lock(id)
	defer unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

// Results - returns the latest finished games, limit is clamped to [1, MaxResultsLimit].
func (that *GameManager) Results(ctx context.Context, limit int) ([]*entity.Result, error) {
	switch {
	case limit <= 0:
		limit = DefaultResultsLimit
	case limit > MaxResultsLimit:
		limit = MaxResultsLimit
	}

	results, err := that.resultRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return results, nil
}

func (that *GameManager) Stats(ctx context.Context) (*entity.Stats, error) {
	stats, err := that.resultRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}

// saveResult - errors are only logged.
func (that *GameManager) saveResult(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "saveResult", "gameID", game.ID)

	if err := that.resultRepo.Save(ctx, entity.NewResult(game, game.UpdatedAt)); err != nil {
		log.Error("failed to save result", "error", err)
	}
}
