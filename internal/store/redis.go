package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/mathblitz/internal/leaderboard"
)

// DefaultRedisKey is the hash holding the board when none is configured.
const DefaultRedisKey = "mathblitz:leaderboard"

const maxTxRetries = 8

// Redis is a Board kept in a Redis hash: HSET {key} {name} {entry JSON}.
// Submissions run in a WATCH transaction so concurrent writers never lose
// an update.
type Redis struct {
	client   *redis.Client
	key      string
	capacity int
}

// OpenRedis connects to the server in opts and checks it responds.
func OpenRedis(ctx context.Context, opts RedisOptions, capacity int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedis(client, opts.Key, capacity), nil
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client, key string, capacity int) *Redis {
	if key == "" {
		key = DefaultRedisKey
	}
	return &Redis{client: client, key: key, capacity: capacity}
}

func decodeEntries(raw map[string]string) []leaderboard.Entry {
	entries := make([]leaderboard.Entry, 0, len(raw))
	for _, v := range raw {
		var e leaderboard.Entry
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	leaderboard.Rank(entries)
	return entries
}

func (r *Redis) Top(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	raw, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	return leaderboard.Cap(decodeEntries(raw), limitOr(limit, r.capacity)), nil
}

func (r *Redis) Submit(ctx context.Context, e leaderboard.Entry) ([]leaderboard.Entry, bool, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, false, err
	}

	var (
		board   []leaderboard.Entry
		changed bool
	)
	txf := func(tx *redis.Tx) error {
		raw, err := tx.HGetAll(ctx, r.key).Result()
		if err != nil {
			return err
		}
		board, changed = leaderboard.Merge(decodeEntries(raw), e, r.capacity)
		if !changed {
			return nil
		}

		keep := make(map[string]bool, len(board))
		for _, cur := range board {
			keep[cur.Name] = true
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for name := range raw {
				if !keep[name] {
					pipe.HDel(ctx, r.key, name)
				}
			}
			pipe.HSet(ctx, r.key, e.Name, data)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, r.key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, false, fmt.Errorf("submit entry: %w", err)
		}
		return board, changed, nil
	}
	return nil, false, fmt.Errorf("submit entry: %w", redis.TxFailedErr)
}

func (r *Redis) Reset(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("reset leaderboard: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
