package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/abhisek/mathblitz/internal/leaderboard"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const entriesTable = "leaderboard_entries"

var (
	// EntriesColumns holds the columns for the "leaderboard_entries" table.
	EntriesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "name", Type: field.TypeString, Unique: true, Size: leaderboard.MaxNameLength},
		{Name: "score", Type: field.TypeInt},
		{Name: "level", Type: field.TypeInt},
		{Name: "created_at", Type: field.TypeInt64},
	}
	// EntriesTable holds the schema information for the "leaderboard_entries" table.
	EntriesTable = &schema.Table{
		Name:       entriesTable,
		Columns:    EntriesColumns,
		PrimaryKey: []*schema.Column{EntriesColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "entry_score_created_at",
				Unique:  false,
				Columns: []*schema.Column{EntriesColumns[2], EntriesColumns[4]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{EntriesTable}
)

// SQLite is a Board in a SQLite database, accessed through ent's SQL
// driver and builders.
type SQLite struct {
	mu       sync.Mutex
	db       *sql.DB
	drv      *entsql.Driver
	capacity int
}

// OpenSQLite opens the database at dsn, applies recommended pragmas and
// runs auto-migration.
func OpenSQLite(ctx context.Context, dsn string, capacity int) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	migrate, err := schema.NewMigrate(drv)
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	if err := migrate.Create(ctx, Tables...); err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &SQLite{db: db, drv: drv, capacity: capacity}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.drv.Close()
}

// applyPragmas configures SQLite for optimal single-writer performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (s *SQLite) Top(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	return s.top(ctx, s.drv, limitOr(limit, s.capacity))
}

func (s *SQLite) top(ctx context.Context, q dialect.ExecQuerier, limit int) ([]leaderboard.Entry, error) {
	b := builder()
	t := b.Table(entriesTable)
	query, args := b.Select(t.C("name"), t.C("score"), t.C("level"), t.C("created_at")).
		From(t).
		OrderBy(entsql.Desc(t.C("score")), entsql.Asc(t.C("created_at")), entsql.Asc(t.C("name"))).
		Limit(limit).
		Query()

	rows := &entsql.Rows{}
	if err := q.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []leaderboard.Entry{}
	for rows.Next() {
		var (
			e       leaderboard.Entry
			created int64
		)
		if err := rows.Scan(&e.Name, &e.Score, &e.Level, &created); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Date = time.Unix(0, created).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLite) Submit(ctx context.Context, e leaderboard.Entry) ([]leaderboard.Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	wrote, err := s.upsert(ctx, tx, e)
	if err != nil {
		return nil, false, err
	}
	if err := s.trim(ctx, tx); err != nil {
		return nil, false, err
	}
	board, err := s.top(ctx, tx, s.capacity)
	if err != nil {
		return nil, false, err
	}
	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit: %w", err)
	}
	return board, wrote && onBoard(board, e), nil
}

// upsert writes e unless its name already holds an equal or higher score.
func (s *SQLite) upsert(ctx context.Context, tx dialect.Tx, e leaderboard.Entry) (bool, error) {
	b := builder()
	t := b.Table(entriesTable)

	query, args := b.Select(t.C("score")).From(t).Where(entsql.EQ(t.C("name"), e.Name)).Query()
	rows := &entsql.Rows{}
	if err := tx.Query(ctx, query, args, rows); err != nil {
		return false, fmt.Errorf("query entry: %w", err)
	}
	found, current := false, 0
	if rows.Next() {
		found = true
		if err := rows.Scan(&current); err != nil {
			rows.Close()
			return false, fmt.Errorf("scan entry: %w", err)
		}
	}
	rows.Close()

	switch {
	case found && current >= e.Score:
		return false, nil
	case found:
		query, args = b.Update(entriesTable).
			Set("score", e.Score).
			Set("level", e.Level).
			Set("created_at", e.Date.UnixNano()).
			Where(entsql.EQ("name", e.Name)).
			Query()
	default:
		query, args = b.Insert(entriesTable).
			Columns("name", "score", "level", "created_at").
			Values(e.Name, e.Score, e.Level, e.Date.UnixNano()).
			Query()
	}
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return false, fmt.Errorf("write entry: %w", err)
	}
	return true, nil
}

// trim deletes every entry ranked below capacity.
func (s *SQLite) trim(ctx context.Context, tx dialect.Tx) error {
	all, err := s.top(ctx, tx, -1)
	if err != nil {
		return err
	}
	if len(all) <= s.capacity {
		return nil
	}
	names := make([]any, 0, len(all)-s.capacity)
	for _, e := range all[s.capacity:] {
		names = append(names, e.Name)
	}
	query, args := builder().Delete(entriesTable).Where(entsql.In("name", names...)).Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("trim leaderboard: %w", err)
	}
	return nil
}

func (s *SQLite) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	query, args := builder().Delete(entriesTable).Query()
	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("reset leaderboard: %w", err)
	}
	return nil
}

func onBoard(board []leaderboard.Entry, e leaderboard.Entry) bool {
	for _, cur := range board {
		if cur.Name == e.Name && cur.Score == e.Score {
			return true
		}
	}
	return false
}
