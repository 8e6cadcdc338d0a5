package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chatarra-market/internal/config"
	"chatarra-market/internal/pkg/cache"
)

func TestDisabledCache_IsNoop(t *testing.T) {
	ctx := context.Background()

	for name, c := range map[string]*cache.Cache{
		"nil":     nil,
		"no-addr": cache.New(config.RedisConfig{}),
	} {
		t.Run(name, func(t *testing.T) {
			assert.False(t, c.Enabled())
			assert.NoError(t, c.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute))
			assert.NoError(t, c.Set(ctx, "k", "v", time.Minute))

			var out map[string]int
			assert.False(t, c.GetJSON(ctx, "k", &out))

			ok, err := c.Exists(ctx, "k")
			assert.NoError(t, err)
			assert.False(t, ok)

			assert.NoError(t, c.Delete(ctx, "k"))
			assert.NoError(t, c.Ping(ctx))
			assert.NoError(t, c.Close())
		})
	}
}
