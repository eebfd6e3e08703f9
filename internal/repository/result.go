package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rocketscienceinc/inarow/internal/entity"
)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Result, error)
}

// resultRow mirrors the results table.
type resultRow struct {
	GameID     string        `db:"game_id"`
	Outcome    string        `db:"outcome"`
	Winner     sql.NullInt64 `db:"winner"`
	Moves      int           `db:"moves"`
	Rows       int           `db:"board_rows"`
	Columns    int           `db:"board_cols"`
	WinLength  int           `db:"win_length"`
	FinishedAt time.Time     `db:"finished_at"`
}

func newResultRow(result *entity.Result) resultRow {
	row := resultRow{
		GameID:     result.GameID,
		Outcome:    result.Outcome,
		Moves:      result.Moves,
		Rows:       result.Rows,
		Columns:    result.Columns,
		WinLength:  result.WinLength,
		FinishedAt: result.FinishedAt.UTC(),
	}

	if result.Winner != nil {
		row.Winner = sql.NullInt64{Int64: int64(*result.Winner), Valid: true}
	}

	return row
}

func (that resultRow) toEntity() *entity.Result {
	result := &entity.Result{
		GameID:     that.GameID,
		Outcome:    that.Outcome,
		Moves:      that.Moves,
		Rows:       that.Rows,
		Columns:    that.Columns,
		WinLength:  that.WinLength,
		FinishedAt: that.FinishedAt,
	}

	if that.Winner.Valid {
		winner := entity.ParticipantID(that.Winner.Int64)
		result.Winner = &winner
	}

	return result
}

type resultRepository struct {
	conn *sqlx.DB
}

func NewResultRepository(conn *sqlx.DB) ResultRepository {
	return &resultRepository{
		conn: conn,
	}
}

func (that *resultRepository) Save(ctx context.Context, result *entity.Result) error {
	query := `INSERT INTO results (game_id, outcome, winner, moves, board_rows, board_cols, win_length, finished_at)
		VALUES (:game_id, :outcome, :winner, :moves, :board_rows, :board_cols, :win_length, :finished_at)`

	if _, err := that.conn.NamedExecContext(ctx, query, newResultRow(result)); err != nil {
		return fmt.Errorf("can't save result: %w", err)
	}

	return nil
}

// ListRecent returns up to limit results, newest first.
func (that *resultRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Result, error) {
	query := `SELECT game_id, outcome, winner, moves, board_rows, board_cols, win_length, finished_at
		FROM results ORDER BY finished_at DESC LIMIT ?`

	var rows []resultRow
	if err := that.conn.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("can't list results: %w", err)
	}

	results := make([]*entity.Result, 0, len(rows))
	for _, row := range rows {
		results = append(results, row.toEntity())
	}

	return results, nil
}

type discardResult struct{}

// NewDiscardResultRepository drops every result; used when no history database is configured.
func NewDiscardResultRepository() ResultRepository {
	return discardResult{}
}

func (discardResult) Save(context.Context, *entity.Result) error {
	return nil
}

func (discardResult) ListRecent(context.Context, int) ([]*entity.Result, error) {
	return nil, nil
}
