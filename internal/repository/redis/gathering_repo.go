package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"Gather_Hub/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	GatheringCachePrefix = "gathering:detail"
	GatheringCacheTTL    = 10 * time.Minute
)

var (
	ErrCacheMiss   = errors.New("gathering cache miss")
	ErrCacheFailed = errors.New("gathering cache failed")
)

type GatheringRepository struct{} // 活动详情缓存

func gatheringKey(id uint64) string {
	return fmt.Sprintf("%s:%d", GatheringCachePrefix, id)
}

func (r *GatheringRepository) Get(id uint64) (*model.Gathering, error) {
	raw, err := Client.Get(context.Background(), gatheringKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, ErrCacheFailed
	}
	var g model.Gathering
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, ErrCacheMiss
	}
	return &g, nil
}

func (r *GatheringRepository) Set(g *model.Gathering) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return ErrCacheFailed
	}
	if err := Client.Set(context.Background(), gatheringKey(g.ID), raw, GatheringCacheTTL).Err(); err != nil {
		return ErrCacheFailed
	}
	return nil
}

// Delete 更新或删除活动后使缓存失效（幂等）
func (r *GatheringRepository) Delete(id uint64) error {
	if err := Client.Del(context.Background(), gatheringKey(id)).Err(); err != nil {
		return ErrCacheFailed
	}
	return nil
}
