package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"checkinhub/internal/app/activity"
	"checkinhub/internal/configs"
	"checkinhub/internal/pkg/resp"
)

func testDeps(t *testing.T) *AppDeps {
	t.Helper()

	cfg := &configs.AppConfig{
		Environment:     "development",
		Port:            8080,
		AllowedOrigins:  []string{},
		StatsInterval:   time.Hour,
		DefaultLocation: "on site",
		Location:        time.UTC,
		RedpackAmounts:  []float64{1.88},
		RedpackBudget:   10000,
	}

	return &AppDeps{
		Coordinator: activity.NewCoordinator(cfg),
		Config:      cfg,
		StartedAt:   time.Now(),
	}
}

func getJSON(t *testing.T, router http.Handler, path string) resp.JSONResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body resp.JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Zero(t, body.Code)

	return body
}

func TestAPIStatsProjection(t *testing.T) {
	deps := testDeps(t)
	router := Router(deps)

	body := getJSON(t, router, "/api/stats")

	raw, err := json.Marshal(body.Data)
	require.NoError(t, err)

	var stats activity.ActivityStats
	require.NoError(t, json.Unmarshal(raw, &stats))
	require.Equal(t, activity.ActivityStats{}, stats)
}

func TestAPIUsersAndCheckinsEmpty(t *testing.T) {
	deps := testDeps(t)
	router := Router(deps)

	for _, path := range []string{"/api/users", "/api/checkins"} {
		body := getJSON(t, router, path)
		require.Empty(t, body.Data)
	}
}

func TestHealthReportsRoomCounts(t *testing.T) {
	deps := testDeps(t)
	router := Router(deps)

	body := getJSON(t, router, "/health")

	data, ok := body.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "ok", data["status"])
	require.Contains(t, data, "uptime")
	require.Contains(t, data, "connections")
}

func TestIndexListsEndpoints(t *testing.T) {
	deps := testDeps(t)
	router := Router(deps)

	body := getJSON(t, router, "/")

	data, ok := body.Data.(map[string]any)
	require.True(t, ok)
	require.Contains(t, data, "endpoints")
}
