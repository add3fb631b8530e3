package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// History stores conversation transcripts keyed by conversation id.
type History interface {
	Append(ctx context.Context, conversationID string, msgs ...Message) error
	Recent(ctx context.Context, conversationID string, limit int) ([]Message, error)
	Clear(ctx context.Context, conversationID string) error
}

// RedisHistory keeps transcripts in Redis lists with a sliding TTL, so idle
// conversations expire on their own.
type RedisHistory struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisHistory(rdb *redis.Client, ttl time.Duration) *RedisHistory {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisHistory{rdb: rdb, ttl: ttl}
}

func historyKey(conversationID string) string {
	return "chat:history:" + conversationID
}

func (h *RedisHistory) Append(ctx context.Context, conversationID string, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}
	vals := make([]any, 0, len(msgs))
	for _, m := range msgs {
		raw, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("chat: marshal message: %w", err)
		}
		vals = append(vals, raw)
	}

	key := historyKey(conversationID)
	pipe := h.rdb.TxPipeline()
	pipe.RPush(ctx, key, vals...)
	pipe.Expire(ctx, key, h.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("chat: append history: %w", err)
	}
	return nil
}

func (h *RedisHistory) Recent(ctx context.Context, conversationID string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 20
	}
	raw, err := h.rdb.LRange(ctx, historyKey(conversationID), int64(-limit), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("chat: load history: %w", err)
	}

	msgs := make([]Message, 0, len(raw))
	for _, item := range raw {
		var m Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

func (h *RedisHistory) Clear(ctx context.Context, conversationID string) error {
	if err := h.rdb.Del(ctx, historyKey(conversationID)).Err(); err != nil {
		return fmt.Errorf("chat: clear history: %w", err)
	}
	return nil
}

// MemoryHistory is an in-process History for tests and single-node
// deployments without Redis.
type MemoryHistory struct {
	mu    sync.Mutex
	convs map[string][]Message
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{convs: make(map[string][]Message)}
}

func (h *MemoryHistory) Append(ctx context.Context, conversationID string, msgs ...Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.convs[conversationID] = append(h.convs[conversationID], msgs...)
	return nil
}

func (h *MemoryHistory) Recent(ctx context.Context, conversationID string, limit int) ([]Message, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	msgs := h.convs[conversationID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (h *MemoryHistory) Clear(ctx context.Context, conversationID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.convs, conversationID)
	return nil
}
