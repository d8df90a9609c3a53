package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhisek/mathblitz/internal/leaderboard"
)

const (
	colName      = "name"
	colScore     = "score"
	colLevel     = "level"
	colCreatedAt = "created_at"
)

const pgSchema = `CREATE TABLE IF NOT EXISTS leaderboard_entries (
	name       TEXT PRIMARY KEY,
	score      INTEGER NOT NULL,
	level      INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

// upsertSuffix only replaces an existing name when the new score is higher.
const upsertSuffix = "ON CONFLICT (" + colName + ") DO UPDATE SET " +
	colScore + " = EXCLUDED." + colScore + ", " +
	colLevel + " = EXCLUDED." + colLevel + ", " +
	colCreatedAt + " = EXCLUDED." + colCreatedAt +
	" WHERE " + entriesTable + "." + colScore + " < EXCLUDED." + colScore

type pgQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Postgres is a Board in a PostgreSQL table.
type Postgres struct {
	dbc      *pgxpool.Pool
	sb       sq.StatementBuilderType
	capacity int
}

// OpenPostgres connects to dsn and creates the table if needed.
func OpenPostgres(ctx context.Context, dsn string, capacity int) (*Postgres, error) {
	dbc, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := dbc.Ping(ctx); err != nil {
		dbc.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := dbc.Exec(ctx, pgSchema); err != nil {
		dbc.Close()
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	return NewPostgres(dbc, capacity), nil
}

// NewPostgres wraps an existing pool. The table must exist.
func NewPostgres(dbc *pgxpool.Pool, capacity int) *Postgres {
	return &Postgres{
		dbc:      dbc,
		sb:       sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		capacity: capacity,
	}
}

func (p *Postgres) ranked() sq.SelectBuilder {
	return p.sb.Select(colName, colScore, colLevel, colCreatedAt).
		From(entriesTable).
		OrderBy(colScore+" DESC", colCreatedAt+" ASC", colName+" ASC")
}

func (p *Postgres) Top(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	return p.top(ctx, p.dbc, limitOr(limit, p.capacity))
}

func (p *Postgres) top(ctx context.Context, q pgQuerier, limit int) ([]leaderboard.Entry, error) {
	sqlStr, args, err := p.ranked().Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (leaderboard.Entry, error) {
		var e leaderboard.Entry
		err := row.Scan(&e.Name, &e.Score, &e.Level, &e.Date)
		e.Date = e.Date.UTC()
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan leaderboard: %w", err)
	}
	return entries, nil
}

func (p *Postgres) Submit(ctx context.Context, e leaderboard.Entry) ([]leaderboard.Entry, bool, error) {
	tx, err := p.dbc.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sqlStr, args, err := p.sb.Insert(entriesTable).
		Columns(colName, colScore, colLevel, colCreatedAt).
		Values(e.Name, e.Score, e.Level, e.Date).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return nil, false, err
	}
	tag, err := tx.Exec(ctx, sqlStr, args...)
	if err != nil {
		return nil, false, fmt.Errorf("write entry: %w", err)
	}
	wrote := tag.RowsAffected() > 0

	keep, _, err := p.sb.Select(colName).
		From(entriesTable).
		OrderBy(colScore+" DESC", colCreatedAt+" ASC", colName+" ASC").
		Limit(uint64(p.capacity)).
		ToSql()
	if err != nil {
		return nil, false, err
	}
	sqlStr, args, err = p.sb.Delete(entriesTable).
		Where(colName + " NOT IN (" + keep + ")").
		ToSql()
	if err != nil {
		return nil, false, err
	}
	if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
		return nil, false, fmt.Errorf("trim leaderboard: %w", err)
	}

	board, err := p.top(ctx, tx, p.capacity)
	if err != nil {
		return nil, false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("commit: %w", err)
	}
	return board, wrote && onBoard(board, e), nil
}

func (p *Postgres) Reset(ctx context.Context) error {
	sqlStr, args, err := p.sb.Delete(entriesTable).ToSql()
	if err != nil {
		return err
	}
	if _, err := p.dbc.Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("reset leaderboard: %w", err)
	}
	return nil
}

func (p *Postgres) Close() error {
	p.dbc.Close()
	return nil
}
