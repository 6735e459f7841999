package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRoutePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/api/v1/complaint/2024001", "/api/v1/complaint/{id}"},
		{"/api/v1/complaint/2024001/messages", "/api/v1/complaint/{id}/messages"},
		{"/api/v1/admin/complaints/2024001/status", "/api/v1/admin/complaints/{id}/status"},
		{"/api/v1/department/66b1f0a2e4b0c93f185d2a01", "/api/v1/department/{id}"},
		{"/api/v1/departments", "/api/v1/departments"},
		{"/health", "/health"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, normalizeRoutePath(tc.in), "path %q", tc.in)
	}
}

func TestMetricsCollector_ProcessTrace(t *testing.T) {
	mc := &MetricsCollector{
		routeMetrics: make(map[string]*RouteMetrics),
		windowStart:  time.Now(),
		traceChan:    make(chan RequestTrace, 10),
		stopChan:     make(chan struct{}),
	}

	mc.processTrace(RequestTrace{
		Method:   "GET",
		Path:     "/api/v1/complaint/2024001",
		Status:   200,
		Duration: 10 * time.Millisecond,
	})
	mc.processTrace(RequestTrace{
		Method:   "GET",
		Path:     "/api/v1/complaint/2024999",
		Status:   404,
		Duration: 30 * time.Millisecond,
	})

	routes := mc.GetRouteMetrics()
	assert.Len(t, routes, 1)

	rm := routes["GET /api/v1/complaint/{id}"]
	assert.NotNil(t, rm)
	assert.Equal(t, int64(2), rm.Count)
	assert.Equal(t, int64(1), rm.ErrorCount)
	assert.Equal(t, 10*time.Millisecond, rm.MinTime)
	assert.Equal(t, 30*time.Millisecond, rm.MaxTime)
	assert.Equal(t, 20*time.Millisecond, rm.AvgTime)

	summary := mc.GetSummary()
	assert.Equal(t, int64(2), summary["totalRequests"])
	assert.Equal(t, int64(1), summary["totalErrors"])
	assert.Equal(t, 0.5, summary["errorRate"])
}

func TestMetricsCollector_RecordTraceNeverBlocks(t *testing.T) {
	mc := &MetricsCollector{
		routeMetrics: make(map[string]*RouteMetrics),
		windowStart:  time.Now(),
		traceChan:    make(chan RequestTrace, 1),
		stopChan:     make(chan struct{}),
	}

	// No processor is draining the channel; the second trace is dropped
	// instead of blocking the caller.
	mc.RecordTrace(RequestTrace{Method: "GET", Path: "/health"})
	mc.RecordTrace(RequestTrace{Method: "GET", Path: "/health"})
}
