package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rizwanrichu87/studio/internal/ai"
	"github.com/Rizwanrichu87/studio/internal/engine"
	"github.com/Rizwanrichu87/studio/internal/storage"
)

type stubGenerator struct{}

func (stubGenerator) Generate(ctx context.Context, tmpl ai.Template, input any, out any) error {
	if m, ok := out.(*ai.Motivation); ok {
		m.MotivationalTip = "Small steps add up."
	}
	return nil
}

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "web.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clock := func() time.Time { return time.Date(2024, 7, 23, 12, 0, 0, 0, time.UTC) }
	svc := engine.NewService(db, engine.WithClock(clock))
	return NewServer(svc, opts...)
}

func do(t *testing.T, s *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "body: %s", w.Body.String())
}

func createHabit(t *testing.T, s *Server, body map[string]any) habitResponse {
	t.Helper()
	w := do(t, s, http.MethodPost, "/api/habits", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var h habitResponse
	decode(t, w, &h)
	return h
}

func TestHabitCRUD(t *testing.T) {
	s := newTestServer(t)

	h := createHabit(t, s, map[string]any{"name": "Read", "targetCompletions": 2, "icon": "BookOpen"})
	assert.NotEmpty(t, h.ID)
	assert.Equal(t, "daily", h.Frequency)
	assert.Equal(t, 2, h.TargetCompletions)

	w := do(t, s, http.MethodGet, "/api/habits", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Habits []habitResponse `json:"habits"`
		Count  int             `json:"count"`
	}
	decode(t, w, &list)
	assert.Equal(t, 1, list.Count)

	w = do(t, s, http.MethodPut, "/api/habits/"+h.ID, map[string]any{"name": "Read books"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated habitResponse
	decode(t, w, &updated)
	assert.Equal(t, "Read books", updated.Name)
	assert.Equal(t, 2, updated.TargetCompletions)

	w = do(t, s, http.MethodDelete, "/api/habits/"+h.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodGet, "/api/habits/"+h.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateHabitValidation(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/habits", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "name", body["field"])

	w = do(t, s, http.MethodPost, "/api/habits", map[string]any{"name": "Read", "targetCompletions": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	decode(t, w, &body)
	assert.Equal(t, "targetCompletions", body["field"])

	h := createHabit(t, s, map[string]any{"name": "Read"})
	assert.Equal(t, 1, h.TargetCompletions)

	req := httptest.NewRequest(http.MethodPost, "/api/habits", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIncrementDecrementAndStats(t *testing.T) {
	s := newTestServer(t)
	h := createHabit(t, s, map[string]any{"name": "Water", "targetCompletions": 2})

	for _, day := range []string{"2024-07-21", "2024-07-22", "2024-07-23"} {
		w := do(t, s, http.MethodPost, "/api/habits/"+h.ID+"/increment?date="+day, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	w := do(t, s, http.MethodPost, "/api/habits/"+h.ID+"/increment", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Count int  `json:"count"`
		Done  bool `json:"done"`
	}
	decode(t, w, &res)
	assert.Equal(t, 2, res.Count)
	assert.True(t, res.Done)

	w = do(t, s, http.MethodPost, "/api/habits/"+h.ID+"/decrement?date=2024-07-21", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodPut, "/api/habits/"+h.ID+"/count?date=2024-07-22", map[string]int{"count": 9})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &res)
	assert.Equal(t, 2, res.Count, "explicit counts clamp to the target")
	w = do(t, s, http.MethodPut, "/api/habits/"+h.ID+"/count?date=2024-07-22", map[string]int{"count": 1})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, s, http.MethodPut, "/api/habits/"+h.ID+"/count", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/api/stats?date=2024-07-23", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sum struct {
		CurrentStreak    int `json:"currentStreak"`
		LongestStreak    int `json:"longestStreak"`
		TotalCompletions int `json:"totalCompletions"`
		Week             []struct {
			Label     string `json:"label"`
			Completed int    `json:"completed"`
		} `json:"week"`
	}
	decode(t, w, &sum)
	assert.Equal(t, 2, sum.CurrentStreak)
	assert.Equal(t, 2, sum.LongestStreak)
	assert.Equal(t, 3, sum.TotalCompletions)
	require.Len(t, sum.Week, 7)
	assert.Equal(t, "Mon", sum.Week[0].Label)
	assert.Equal(t, 2, sum.Week[1].Completed) // Tuesday 2024-07-23

	w = do(t, s, http.MethodGet, "/api/stats/calendar", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cal struct {
		Dates []string `json:"dates"`
	}
	decode(t, w, &cal)
	assert.Equal(t, []string{"2024-07-22", "2024-07-23"}, cal.Dates)

	w = do(t, s, http.MethodGet, "/api/stats/month?date=2024-07-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var month struct {
		Days []json.RawMessage `json:"days"`
	}
	decode(t, w, &month)
	assert.Len(t, month.Days, 31)
}

func TestIncrementAboveLoweredTargetIsNoop(t *testing.T) {
	s := newTestServer(t)
	h := createHabit(t, s, map[string]any{"name": "Pushups", "targetCompletions": 3})

	w := do(t, s, http.MethodPut, "/api/habits/"+h.ID+"/count", map[string]int{"count": 3})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(t, s, http.MethodPut, "/api/habits/"+h.ID, map[string]any{"targetCompletions": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, s, http.MethodPost, "/api/habits/"+h.ID+"/increment", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Count   int  `json:"count"`
		Changed bool `json:"changed"`
	}
	decode(t, w, &res)
	assert.Equal(t, 3, res.Count)
	assert.False(t, res.Changed)

	w = do(t, s, http.MethodGet, "/metrics", nil)
	assert.Contains(t, w.Body.String(), `hs_completion_changes_total{direction="increment"} 1`)
}

func TestCalendarEmpty(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/api/stats/calendar", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"dates":[]}`, w.Body.String())
}

func TestBadDateAndUnknownHabit(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/stats?date=07/23/2024", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/api/habits/nope/increment", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAchievementsEndpoint(t *testing.T) {
	s := newTestServer(t)
	h := createHabit(t, s, map[string]any{"name": "Walk"})
	do(t, s, http.MethodPost, "/api/habits/"+h.ID+"/increment", nil)

	w := do(t, s, http.MethodGet, "/api/achievements", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Achievements []engine.Achievement `json:"achievements"`
	}
	decode(t, w, &body)
	require.Len(t, body.Achievements, 6)
	assert.Equal(t, "first_step", body.Achievements[0].ID)
	assert.True(t, body.Achievements[0].Unlocked)
}

func TestInsights(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodPost, "/api/insights/motivate", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	s = newTestServer(t)
	s.insights = engine.NewInsights(s.svc, ai.NewCoach(stubGenerator{}))

	w = do(t, s, http.MethodPost, "/api/insights/motivate", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var m ai.Motivation
	decode(t, w, &m)
	assert.Equal(t, "Small steps add up.", m.MotivationalTip)

	w = do(t, s, http.MethodPost, "/api/insights/recommend", map[string]string{"goals": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/api/insights/horoscope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	h := createHabit(t, s, map[string]any{"name": "Stretch"})
	do(t, s, http.MethodPost, "/api/habits/"+h.ID+"/increment", nil)

	w = do(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `hs_completion_changes_total{direction="increment"} 1`)
	assert.Contains(t, w.Body.String(), "hs_http_request_duration_seconds")
}
