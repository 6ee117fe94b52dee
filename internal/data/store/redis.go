package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/Arrognz/babycheck/internal/core/event"
)

const defaultRedisKey = "babyevents"

// RedisStore keeps the log in a sorted set scored by timestamp, so range
// queries map directly onto ZRANGEBYSCORE.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to a redis URL (redis:// or rediss://) and
// verifies the server answers before returning.
func NewRedisStore(ctx context.Context, url, key string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}
	if key == "" {
		key = defaultRedisKey
	}
	return &RedisStore{client: client, key: key}, nil
}

func (s *RedisStore) Search(ctx context.Context, startMs, endMs int64) ([]event.Event, error) {
	members, err := s.client.ZRangeByScore(ctx, s.key, &redis.ZRangeBy{
		Min: strconv.FormatInt(startMs, 10),
		Max: "(" + strconv.FormatInt(endMs, 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	out := make([]event.Event, 0, len(members))
	for _, m := range members {
		if e, ok := decodeWire([]byte(m)); ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *RedisStore) Add(ctx context.Context, e event.Event) error {
	if err := event.Check(e); err != nil {
		return err
	}
	raw, err := encodeWire(e)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := s.client.ZAdd(ctx, s.key, redis.Z{
		Score:  float64(e.Timestamp),
		Member: string(raw),
	}).Err(); err != nil {
		return fmt.Errorf("failed to store event: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, timestampMs int64) (int, error) {
	ts := strconv.FormatInt(timestampMs, 10)
	removed, err := s.client.ZRemRangeByScore(ctx, s.key, ts, ts).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to delete events: %w", err)
	}
	return int(removed), nil
}

func (s *RedisStore) Retype(ctx context.Context, timestampMs int64, kind event.Kind) (int, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("malformed event: unknown kind %q", kind)
	}
	ts := strconv.FormatInt(timestampMs, 10)
	members, err := s.client.ZRangeByScore(ctx, s.key, &redis.ZRangeBy{Min: ts, Max: ts}).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to load events: %w", err)
	}

	changed := 0
	for _, m := range members {
		e, ok := decodeWire([]byte(m))
		if !ok {
			continue
		}
		e.Kind = kind
		raw, err := encodeWire(e)
		if err != nil {
			return changed, fmt.Errorf("failed to encode event: %w", err)
		}
		pipe := s.client.TxPipeline()
		pipe.ZRem(ctx, s.key, m)
		pipe.ZAdd(ctx, s.key, redis.Z{Score: float64(e.Timestamp), Member: string(raw)})
		if _, err := pipe.Exec(ctx); err != nil {
			return changed, fmt.Errorf("failed to rewrite event: %w", err)
		}
		changed++
	}
	return changed, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
