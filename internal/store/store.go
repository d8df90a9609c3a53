package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhisek/mathblitz/internal/leaderboard"
)

// Supported storage drivers.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("store: unknown driver")

// Board persists the leaderboard. Every implementation keeps one entry per
// name (its best score), ranks by score descending then earliest date, and
// holds at most its capacity.
type Board interface {
	// Top returns up to limit ranked entries. limit <= 0 means capacity.
	Top(ctx context.Context, limit int) ([]leaderboard.Entry, error)

	// Submit records e and returns the ranked board after the write. The
	// bool reports whether the stored board changed.
	Submit(ctx context.Context, e leaderboard.Entry) ([]leaderboard.Entry, bool, error)

	// Reset removes every entry.
	Reset(ctx context.Context) error

	// Close releases the backend.
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Driver   string
	Capacity int

	// Path is the file (file driver) or database file (sqlite driver).
	Path string

	// DSN is the postgres connection string.
	DSN string

	Redis RedisOptions
}

// RedisOptions configures the redis driver.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// Open creates the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Board, error) {
	if opts.Capacity <= 0 {
		opts.Capacity = leaderboard.MaxEntries
	}

	switch opts.Driver {
	case DriverMemory:
		return NewMemory(opts.Capacity), nil
	case DriverFile:
		if err := ensureDir(opts.Path); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return NewFile(opts.Path, opts.Capacity), nil
	case DriverSQLite, "":
		path := opts.Path
		if path == "" {
			p, err := DefaultDBPath()
			if err != nil {
				return nil, err
			}
			path = p
		} else if err := ensureDir(path); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return OpenSQLite(ctx, path, opts.Capacity)
	case DriverRedis:
		return OpenRedis(ctx, opts.Redis, opts.Capacity)
	case DriverPostgres:
		return OpenPostgres(ctx, opts.DSN, opts.Capacity)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
}

func limitOr(limit, capacity int) int {
	if limit <= 0 || limit > capacity {
		return capacity
	}
	return limit
}

// DefaultDBPath resolves the database file path in priority order:
// 1. MATHBLITZ_DB environment variable
// 2. $XDG_DATA_HOME/mathblitz/leaderboard.db
// 3. ~/.local/share/mathblitz/leaderboard.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("MATHBLITZ_DB"); p != "" {
		return p, ensureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "mathblitz", "leaderboard.db")
	return p, ensureDir(p)
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
