// file: internals/features/school/academics/service/year_cache_test.go
package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// A nil cache (no Redis configured) must behave as a pass-through.
func TestYearCacheNilSafe(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New()

	var yc *YearCache
	_, ok := yc.Get(ctx, schoolID)
	assert.False(t, ok)
	yc.Set(ctx, schoolID, uuid.New())
	yc.Invalidate(ctx, schoolID)

	empty := NewYearCache(nil)
	_, ok = empty.Get(ctx, schoolID)
	assert.False(t, ok)
	empty.Set(ctx, schoolID, uuid.New())
	empty.Invalidate(ctx, schoolID)
}
