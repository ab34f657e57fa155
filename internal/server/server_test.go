package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pageObject/internal/config"
	"pageObject/internal/database"
)

type fakeRuns struct {
	runs   []database.Run
	err    error
	limit  int
	offset int
}

func (f *fakeRuns) GetByID(_ context.Context, id uint) (*database.Run, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.runs {
		if f.runs[i].ID == id {
			return &f.runs[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRuns) List(_ context.Context, limit, offset int) ([]database.Run, error) {
	f.limit, f.offset = limit, offset
	if f.err != nil {
		return nil, f.err
	}
	return f.runs, nil
}

func newTestServer(repo Runs) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return New(&config.Cfg{}, nil, repo).Router()
}

func get(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := get(t, newTestServer(&fakeRuns{}), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListRuns(t *testing.T) {
	repo := &fakeRuns{runs: []database.Run{
		{ID: 2, Name: "TestOrders", Status: database.StatusFailed},
		{ID: 1, Name: "TestLogin", Status: database.StatusPassed},
	}}
	r := newTestServer(repo)

	tests := []struct {
		name      string
		path      string
		code      int
		wantLimit int
	}{
		{name: "default limit", path: "/api/runs", code: http.StatusOK, wantLimit: defaultLimit},
		{name: "explicit limit", path: "/api/runs?limit=5&offset=10", code: http.StatusOK, wantLimit: 5},
		{name: "capped limit", path: "/api/runs?limit=100000", code: http.StatusOK, wantLimit: maxLimit},
		{name: "bad limit", path: "/api/runs?limit=abc", code: http.StatusBadRequest},
		{name: "zero limit", path: "/api/runs?limit=0", code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo.limit = 0
			w := get(t, r, tt.path)
			require.Equal(t, tt.code, w.Code)
			if tt.code != http.StatusOK {
				return
			}
			assert.Equal(t, tt.wantLimit, repo.limit)

			var got []database.Run
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			require.Len(t, got, 2)
			assert.Equal(t, "TestOrders", got[0].Name)
		})
	}
	assert.Equal(t, 0, repo.offset)
}

func TestGetRun(t *testing.T) {
	repo := &fakeRuns{runs: []database.Run{{ID: 7, Name: "TestCheckout", Status: database.StatusFailed, ScreenshotPath: "/tmp/TestCheckout.png"}}}
	r := newTestServer(repo)

	w := get(t, r, "/api/runs/7")
	require.Equal(t, http.StatusOK, w.Code)
	var run database.Run
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	assert.Equal(t, "/tmp/TestCheckout.png", run.ScreenshotPath)

	assert.Equal(t, http.StatusNotFound, get(t, r, "/api/runs/8").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, r, "/api/runs/x").Code)
}

func TestRepositoryError(t *testing.T) {
	r := newTestServer(&fakeRuns{err: errors.New("connection refused")})

	assert.Equal(t, http.StatusInternalServerError, get(t, r, "/api/runs").Code)
	assert.Equal(t, http.StatusInternalServerError, get(t, r, "/api/runs/1").Code)
}
