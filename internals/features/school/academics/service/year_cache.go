// file: internals/features/school/academics/service/year_cache.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

/* =========================================================
   Active school-year cache (Redis, optional).
   Every fee operation resolves the active year, so the id
   is cached per school with a short TTL. A nil client makes
   every call a pass-through so the engine works without
   Redis configured.
========================================================= */

const activeYearTTL = 5 * time.Minute

type YearCache struct {
	rdb *redis.Client
}

func NewYearCache(rdb *redis.Client) *YearCache {
	return &YearCache{rdb: rdb}
}

func (yc *YearCache) key(schoolID uuid.UUID) string {
	return "school:" + schoolID.String() + ":active_year"
}

func (yc *YearCache) Get(ctx context.Context, schoolID uuid.UUID) (uuid.UUID, bool) {
	if yc == nil || yc.rdb == nil {
		return uuid.Nil, false
	}
	raw, err := yc.rdb.Get(ctx, yc.key(schoolID)).Result()
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (yc *YearCache) Set(ctx context.Context, schoolID, yearID uuid.UUID) {
	if yc == nil || yc.rdb == nil {
		return
	}
	_ = yc.rdb.Set(ctx, yc.key(schoolID), yearID.String(), activeYearTTL).Err()
}

// Invalidate drops the cached id; call after activating a different year.
func (yc *YearCache) Invalidate(ctx context.Context, schoolID uuid.UUID) {
	if yc == nil || yc.rdb == nil {
		return
	}
	_ = yc.rdb.Del(ctx, yc.key(schoolID)).Err()
}
