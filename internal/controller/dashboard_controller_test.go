package controller

import (
	"context"
	"cyberar_admin_backend/internal/model"
	"cyberar_admin_backend/internal/repository"
	"cyberar_admin_backend/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// downStore fails every read.
type downStore struct {
	*repository.MemoryStore
}

func (downStore) List(context.Context, string) ([]model.Document, error) {
	return nil, errors.New("connection refused")
}

func (downStore) Ping(context.Context) error {
	return errors.New("connection refused")
}

func seededStore() *repository.MemoryStore {
	store := repository.NewMemoryStore()
	store.Seed(repository.CollectionUsers, bson.M{"name": "Admin"}, bson.M{"name": "Ana"})
	store.Seed(repository.CollectionModules,
		bson.M{"title": "Phishing", "moduleNumber": 2},
		bson.M{"title": "Intro", "moduleNumber": 1, "lessons": bson.A{bson.M{}, bson.M{}}},
	)
	store.Seed(repository.CollectionRecords,
		bson.M{"name": "Ana", "email": "a@x.com", "scores": bson.A{bson.M{"CourseName": "Intro", "QuizScore": "80"}}},
		bson.M{"name": "Ben", "email": "b@x.com", "scores": bson.A{bson.M{"CourseName": "Intro", "QuizScore": 60}}},
		bson.M{"name": "Cid", "email": "c@x.com"},
	)
	return store
}

func newRouter(store repository.DocumentStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := service.NewDashboardService(
		repository.NewUserRepository(store),
		repository.NewModuleRepository(store),
		repository.NewAssessmentRepository(store),
		repository.NewRecordRepository(store),
	)
	dashboard := NewDashboardController(svc)
	admin := NewAdminController(repository.NewCollectionRepository(store))
	health := NewHealthController(store, nil)

	r := gin.New()
	r.GET("/api/health", health.HealthCheck)
	r.GET("/api/dashboard/summary", dashboard.GetSummary)
	r.GET("/api/dashboard/leaderboard", dashboard.GetLeaderboard)
	r.GET("/api/dashboard/charts/lessons", dashboard.GetLessonsPerModule)
	r.GET("/api/dashboard/charts/scores", dashboard.GetAverageScorePerModule)
	r.GET("/api/dashboard/overview", dashboard.GetOverview)
	r.GET("/api/admin/collections/:name/count", admin.CountCollection)
	return r
}

func get(t *testing.T, r *gin.Engine, path string) (int, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestGetSummaryHandler(t *testing.T) {
	code, body := get(t, newRouter(seededStore()), "/api/dashboard/summary")
	require.Equal(t, http.StatusOK, code)

	var summary model.Summary
	require.NoError(t, json.Unmarshal(body.Data, &summary))
	assert.Equal(t, model.Summary{TotalUsers: 2, TotalModules: 2, TotalLessons: 2}, summary)
}

func TestGetLeaderboardHandler(t *testing.T) {
	r := newRouter(seededStore())

	code, body := get(t, r, "/api/dashboard/leaderboard")
	require.Equal(t, http.StatusOK, code)
	var entries []model.LeaderboardEntry
	require.NoError(t, json.Unmarshal(body.Data, &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "Ana", entries[0].Name)
	assert.Equal(t, 80.0, entries[0].TotalScore)

	code, body = get(t, r, "/api/dashboard/leaderboard?page=2&size=2")
	require.Equal(t, http.StatusOK, code)
	var page struct {
		List  []model.LeaderboardEntry `json:"list"`
		Total int64                    `json:"total"`
		Page  int                      `json:"page"`
		Limit int                      `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &page))
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.Limit)
	require.Len(t, page.List, 1)
	assert.Equal(t, "Cid", page.List[0].Name)

	code, body = get(t, r, "/api/dashboard/leaderboard?page=9223372036854775807&size=2")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body.Data, &page))
	assert.Empty(t, page.List)
	assert.Equal(t, int64(3), page.Total)

	_, body = get(t, r, "/api/dashboard/leaderboard?page=1&size=abc")
	require.NoError(t, json.Unmarshal(body.Data, &page))
	assert.Equal(t, 5, page.Limit)
	assert.Len(t, page.List, 3)
}

func TestChartHandlers(t *testing.T) {
	r := newRouter(seededStore())

	code, body := get(t, r, "/api/dashboard/charts/lessons")
	require.Equal(t, http.StatusOK, code)
	var lessons model.ChartSeries
	require.NoError(t, json.Unmarshal(body.Data, &lessons))
	assert.Equal(t, []string{"Intro", "Phishing"}, lessons.Labels)
	assert.Equal(t, []float64{2, 0}, lessons.Datasets[0].Data)

	code, body = get(t, r, "/api/dashboard/charts/scores")
	require.Equal(t, http.StatusOK, code)
	var scores model.ChartSeries
	require.NoError(t, json.Unmarshal(body.Data, &scores))
	assert.Equal(t, []string{"Intro", "Phishing"}, scores.Labels)
	assert.Equal(t, []float64{70, 0}, scores.Datasets[0].Data)
}

func TestGetOverviewHandler(t *testing.T) {
	code, body := get(t, newRouter(seededStore()), "/api/dashboard/overview")
	require.Equal(t, http.StatusOK, code)

	var overview model.Overview
	require.NoError(t, json.Unmarshal(body.Data, &overview))
	assert.Equal(t, 2, overview.Summary.TotalModules)
	assert.Len(t, overview.Leaderboard, 3)
	assert.Equal(t, overview.LessonsPerModule.Labels, overview.AverageScores.Labels)
}

func TestHandlersReportUnavailableStore(t *testing.T) {
	r := newRouter(downStore{repository.NewMemoryStore()})

	tests := []struct {
		path    string
		message string
	}{
		{"/api/dashboard/leaderboard", "failed to retrieve records"},
		{"/api/dashboard/charts/lessons", "failed to retrieve modules"},
		{"/api/dashboard/charts/scores", "failed to retrieve modules"},
		{"/api/admin/collections/sections/count", "failed to retrieve sections"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			code, body := get(t, r, tt.path)
			assert.Equal(t, http.StatusServiceUnavailable, code)
			assert.Equal(t, tt.message, body.Message)
			assert.Empty(t, body.Data)
		})
	}

	code, body := get(t, r, "/api/dashboard/summary")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, body.Message, "failed to retrieve ")
}

func TestCountCollectionHandler(t *testing.T) {
	r := newRouter(seededStore())

	code, body := get(t, r, "/api/admin/collections/records/count")
	require.Equal(t, http.StatusOK, code)
	var data struct {
		Collection string `json:"collection"`
		Count      int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, "records", data.Collection)
	assert.Equal(t, 3, data.Count)

	code, _ = get(t, r, "/api/admin/collections/passwords/count")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHealthCheck(t *testing.T) {
	code, body := get(t, newRouter(seededStore()), "/api/health")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok","components":{"store":"up"}}`, string(body.Data))

	code, _ = get(t, newRouter(downStore{repository.NewMemoryStore()}), "/api/health")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}
