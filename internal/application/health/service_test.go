package health

import (
	"context"
	"testing"

	"gridshare-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectHealth_TrafficCounters(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	mr.Set(middleware.KeyReqTotal, "10")
	mr.Set(middleware.KeyReqErrors, "2")
	mr.Set(middleware.KeyResTime, "500")
	mr.Set(middleware.KeyResCount, "10")

	result := CollectHealth(context.Background(), rdb, nil)

	assert.Equal(t, 10, result.Traffic.TotalRequests)
	assert.Equal(t, 8, result.Traffic.SuccessCount)
	assert.Equal(t, 2, result.Traffic.FailedCount)
	assert.Equal(t, "80.0", result.Traffic.SuccessRate)
	assert.Equal(t, "50.00", result.Traffic.AvgResponseTime)
	assert.Equal(t, "connected", result.Dependencies["redis"].Status)
	assert.Equal(t, "disconnected", result.Dependencies["database"].Status)
	assert.Equal(t, "issue", result.Status)
}

func TestCollectHealth_NoTraffic(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	result := CollectHealth(context.Background(), rdb, nil)
	assert.Equal(t, 0, result.Traffic.TotalRequests)
	assert.Equal(t, "100", result.Traffic.SuccessRate)
	assert.Nil(t, result.Traffic.AvgResponseTime)
}

type okPinger struct{}

func (okPinger) Ping() error { return nil }

func TestCollectHealth_AllConnected(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	result := CollectHealth(context.Background(), rdb, okPinger{})
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "connected", result.Dependencies["database"].Status)
}

func TestReset_ClearsCounters(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	mr.Set(middleware.KeyReqTotal, "10")
	mr.Set(middleware.KeyResCount, "10")

	require.NoError(t, Reset(context.Background(), rdb))
	assert.False(t, mr.Exists(middleware.KeyReqTotal))
	assert.False(t, mr.Exists(middleware.KeyResCount))
}
