package quiz

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/mind-engage/mindengage-quizgen/internal/apperr"
)

const redisIndexKey = "quizzes"

// RedisStore writes each quiz as JSON under quiz:<id> and indexes IDs in a
// sorted set scored by creation time.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func redisKey(id string) string { return "quiz:" + id }

func (s *RedisStore) Put(ctx context.Context, q Quiz) error {
	buf, err := json.Marshal(q)
	if err != nil {
		return err
	}
	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, redisKey(q.ID), buf, 0)
		p.ZAdd(ctx, redisIndexKey, redis.Z{Score: float64(q.CreatedAt), Member: q.ID})
		return nil
	})
	return err
}

func (s *RedisStore) Get(ctx context.Context, id string) (Quiz, error) {
	buf, err := s.rdb.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Quiz{}, apperr.ErrNotFound
	}
	if err != nil {
		return Quiz{}, err
	}
	var q Quiz
	if err := json.Unmarshal(buf, &q); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func (s *RedisStore) List(ctx context.Context, opts ListOpts) ([]Summary, error) {
	opts = opts.normalize()
	ids, err := s.rdb.ZRevRange(ctx, redisIndexKey, int64(opts.Offset), int64(opts.Offset+opts.Limit-1)).Result()
	if err != nil {
		return nil, err
	}
	out := []Summary{}
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = redisKey(id)
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var q Quiz
		if err := json.Unmarshal([]byte(str), &q); err != nil {
			return nil, err
		}
		out = append(out, q.Summary())
	}
	return out, nil
}
