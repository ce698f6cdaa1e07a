package health

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"gridshare-backend/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// DBPinger is optional for health check. If nil, database is reported as disconnected.
type DBPinger interface {
	Ping() error
}

// CollectResult is the /health/json payload.
type CollectResult struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64  `json:"uptimeSeconds"`
	HeapUsed      uint64 `json:"heapUsed"`
	NumGoroutine  int    `json:"numGoroutine"`
	GoVersion     string `json:"goVersion"`
}

type TrafficInfo struct {
	TotalRequests   int         `json:"totalRequests"`
	SuccessCount    int         `json:"successCount"`
	FailedCount     int         `json:"failedCount"`
	SuccessRate     string      `json:"successRate"`
	AvgResponseTime interface{} `json:"avgResponseTime"`
	LastRequest     interface{} `json:"lastRequest"`
}

type DepStatus struct {
	Status string      `json:"status"`
	PingMs interface{} `json:"pingMs"`
}

var processStart = time.Now()

// CollectHealth gathers traffic counters from Redis plus dependency pings.
func CollectHealth(ctx context.Context, rdb *redis.Client, db DBPinger) CollectResult {
	deps := map[string]DepStatus{
		"redis":    {Status: "disconnected", PingMs: nil},
		"database": {Status: "disconnected", PingMs: nil},
	}

	traffic := TrafficInfo{SuccessRate: "100"}
	if rdb != nil {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err == nil {
			deps["redis"] = DepStatus{Status: "connected", PingMs: time.Since(start).Milliseconds()}
			traffic = collectTraffic(ctx, rdb)
		}
	}
	if db != nil {
		start := time.Now()
		if err := db.Ping(); err == nil {
			deps["database"] = DepStatus{Status: "connected", PingMs: time.Since(start).Milliseconds()}
		}
	}

	status := "ok"
	for _, d := range deps {
		if d.Status != "connected" {
			status = "issue"
		}
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return CollectResult{
		Status: status,
		Runtime: RuntimeInfo{
			UptimeSeconds: int64(time.Since(processStart).Seconds()),
			HeapUsed:      mem.HeapAlloc,
			NumGoroutine:  runtime.NumGoroutine(),
			GoVersion:     runtime.Version(),
		},
		Traffic:      traffic,
		Dependencies: deps,
	}
}

func collectTraffic(ctx context.Context, rdb *redis.Client) TrafficInfo {
	total := intKey(ctx, rdb, middleware.KeyReqTotal)
	errors := intKey(ctx, rdb, middleware.KeyReqErrors)
	resTime := floatKey(ctx, rdb, middleware.KeyResTime)
	resCount := intKey(ctx, rdb, middleware.KeyResCount)

	traffic := TrafficInfo{
		TotalRequests: total,
		SuccessCount:  total - errors,
		FailedCount:   errors,
		SuccessRate:   "100",
	}
	if total > 0 {
		traffic.SuccessRate = fmt.Sprintf("%.1f", float64(total-errors)/float64(total)*100)
	}
	if resCount > 0 {
		traffic.AvgResponseTime = fmt.Sprintf("%.2f", resTime/float64(resCount))
	}
	if b, err := rdb.Get(ctx, middleware.KeyLastReq).Bytes(); err == nil {
		var last map[string]interface{}
		if json.Unmarshal(b, &last) == nil {
			traffic.LastRequest = last
		}
	}
	return traffic
}

// Reset clears all traffic counters.
func Reset(ctx context.Context, rdb *redis.Client) error {
	return rdb.Del(ctx,
		middleware.KeyReqTotal,
		middleware.KeyReqErrors,
		middleware.KeyResTime,
		middleware.KeyResCount,
		middleware.KeyStartTime,
		middleware.KeyLastReq,
	).Err()
}

func intKey(ctx context.Context, rdb *redis.Client, key string) int {
	s, err := rdb.Get(ctx, key).Result()
	if err != nil {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}

func floatKey(ctx context.Context, rdb *redis.Client, key string) float64 {
	s, err := rdb.Get(ctx, key).Result()
	if err != nil {
		return 0
	}
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
