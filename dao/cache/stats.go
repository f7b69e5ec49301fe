package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	statsKey = "pointly:stats:aggregate"
	statsTTL = 30 * time.Second
)

// StatsCache 全局统计的短时效快照。统计永远以数据库为准，
// 这里只是给看板读减一层压力。
type StatsCache struct {
	redis *redis.Client
}

func NewStatsCache(rds *redis.Client) *StatsCache {
	return &StatsCache{redis: rds}
}

// Get 读取快照，未命中返回 (false, nil)
func (s *StatsCache) Get(ctx context.Context, out any) (bool, error) {
	raw, err := s.redis.Get(ctx, statsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

// Set 写入快照，30 秒过期
func (s *StatsCache) Set(ctx context.Context, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, statsKey, raw, statsTTL).Err()
}
