package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
	"github.com/rocketscienceinc/tictactoe-server/internal/tictactoe"
)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
	List(ctx context.Context, limit int) ([]*entity.Result, error)
	Stats(ctx context.Context) (*entity.Stats, error)
}

type resultRepository struct {
	conn *sql.DB
}

func NewResultRepository(conn *sql.DB) ResultRepository {
	return &resultRepository{
		conn: conn,
	}
}

func (that *resultRepository) Save(ctx context.Context, result *entity.Result) error {
	query := `INSERT INTO results (game_id, status, winner, line, moves, finished_at) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		result.GameID,
		string(result.Status),
		string(result.Winner),
		string(result.Line),
		result.Moves,
		result.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("can't save result: %w", err)
	}

	return nil
}

// List - returns the latest results first.
func (that *resultRepository) List(ctx context.Context, limit int) ([]*entity.Result, error) {
	query := `SELECT game_id, status, winner, line, moves, finished_at FROM results ORDER BY finished_at DESC, id DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("can't list results: %w", err)
	}
	defer rows.Close()

	results := make([]*entity.Result, 0, limit)
	for rows.Next() {
		var (
			result     entity.Result
			status     string
			winner     string
			line       string
			finishedAt int64
		)

		if err = rows.Scan(&result.GameID, &status, &winner, &line, &result.Moves, &finishedAt); err != nil {
			return nil, fmt.Errorf("can't scan result: %w", err)
		}

		result.Status = tictactoe.Status(status)
		result.Winner = tictactoe.Mark(winner)
		result.Line = tictactoe.LineID(line)
		result.FinishedAt = time.UnixMilli(finishedAt).UTC()

		results = append(results, &result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate results: %w", err)
	}

	return results, nil
}

func (that *resultRepository) Stats(ctx context.Context) (*entity.Stats, error) {
	query := `SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN status = ? AND winner = ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = ? AND winner = ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0)
	FROM results`

	var stats entity.Stats

	err := that.conn.QueryRowContext(ctx, query,
		string(tictactoe.StatusWin), string(tictactoe.PlayerA),
		string(tictactoe.StatusWin), string(tictactoe.PlayerB),
		string(tictactoe.StatusDraw),
	).Scan(&stats.Games, &stats.PlayerA, &stats.PlayerB, &stats.Draws)
	if err != nil {
		return nil, fmt.Errorf("can't count results: %w", err)
	}

	return &stats, nil
}
