package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jwebster45206/shop-engine/pkg/shop"
	"github.com/redis/go-redis/v9"
)

// DefaultJournalLimit caps how many results a session journal keeps.
const DefaultJournalLimit = 50

// Journal keeps the most recent transaction results of each session in a
// capped Redis list, oldest first.
type Journal struct {
	rdb   *redis.Client
	limit int64
}

func NewJournal(rdb *redis.Client, limit int) *Journal {
	if limit <= 0 {
		limit = DefaultJournalLimit
	}
	return &Journal{rdb: rdb, limit: int64(limit)}
}

func journalKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("shop-journal:%s", sessionID.String())
}

// Append records a result and drops entries beyond the limit.
func (j *Journal) Append(ctx context.Context, r shop.Result) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	key := journalKey(r.SessionID)
	pipe := j.rdb.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -j.limit, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append to journal: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest last. limit <= 0 returns all.
func (j *Journal) Recent(ctx context.Context, sessionID uuid.UUID, limit int) ([]shop.Result, error) {
	start := int64(0)
	if limit > 0 {
		start = -int64(limit)
	}
	raw, err := j.rdb.LRange(ctx, journalKey(sessionID), start, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	results := make([]shop.Result, 0, len(raw))
	for _, item := range raw {
		var r shop.Result
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal journal entry: %w", err)
		}
		results = append(results, r)
	}
	return results, nil
}

// Depth returns the number of journaled results for a session
func (j *Journal) Depth(ctx context.Context, sessionID uuid.UUID) (int, error) {
	count, err := j.rdb.LLen(ctx, journalKey(sessionID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get journal depth: %w", err)
	}
	return int(count), nil
}

// Clear removes a session's journal
func (j *Journal) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if err := j.rdb.Del(ctx, journalKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear journal: %w", err)
	}
	return nil
}
