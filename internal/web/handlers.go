package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rizwanrichu87/studio/internal/ai"
	"github.com/Rizwanrichu87/studio/internal/engine"
	"github.com/Rizwanrichu87/studio/internal/stats"
)

type habitResponse struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Frequency         string         `json:"frequency"`
	TargetCompletions int            `json:"targetCompletions"`
	ReminderTime      string         `json:"reminderTime,omitempty"`
	Icon              string         `json:"icon"`
	Completions       map[string]int `json:"completions"`
}

func toHabitResponse(h stats.Habit) habitResponse {
	return habitResponse{
		ID:                h.ID,
		Name:              h.Name,
		Frequency:         string(h.Frequency),
		TargetCompletions: h.Target(),
		ReminderTime:      h.ReminderTime,
		Icon:              h.Icon,
		Completions:       h.Completions.Raw(),
	}
}

type createHabitRequest struct {
	Name              string `json:"name"`
	Frequency         string `json:"frequency"`
	TargetCompletions *int   `json:"targetCompletions"`
	ReminderTime      string `json:"reminderTime"`
	Icon              string `json:"icon"`
}

type updateHabitRequest struct {
	Name              *string `json:"name"`
	Frequency         *string `json:"frequency"`
	TargetCompletions *int    `json:"targetCompletions"`
	ReminderTime      *string `json:"reminderTime"`
	Icon              *string `json:"icon"`
}

type insightRequest struct {
	Goals string `json:"goals"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleListHabits(c *gin.Context) {
	habits, err := s.svc.ListHabits(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	out := make([]habitResponse, 0, len(habits))
	for _, h := range habits {
		out = append(out, toHabitResponse(h))
	}
	c.JSON(http.StatusOK, gin.H{"habits": out, "count": len(out)})
}

func (s *Server) handleCreateHabit(c *gin.Context) {
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	h, err := s.svc.CreateHabit(c.Request.Context(), engine.CreateHabitInput{
		Name:              req.Name,
		Frequency:         req.Frequency,
		TargetCompletions: req.TargetCompletions,
		ReminderTime:      req.ReminderTime,
		Icon:              req.Icon,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toHabitResponse(*h))
}

func (s *Server) handleGetHabit(c *gin.Context) {
	h, err := s.svc.GetHabit(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHabitResponse(*h))
}

func (s *Server) handleUpdateHabit(c *gin.Context) {
	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	h, err := s.svc.UpdateHabit(c.Request.Context(), c.Param("id"), engine.UpdateHabitInput{
		Name:              req.Name,
		Frequency:         req.Frequency,
		TargetCompletions: req.TargetCompletions,
		ReminderTime:      req.ReminderTime,
		Icon:              req.Icon,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHabitResponse(*h))
}

func (s *Server) handleDeleteHabit(c *gin.Context) {
	if err := s.svc.DeleteHabit(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (s *Server) handleIncrement(c *gin.Context) {
	s.adjust(c, "increment", s.svc.Increment)
}

func (s *Server) handleDecrement(c *gin.Context) {
	s.adjust(c, "decrement", s.svc.Decrement)
}

func (s *Server) adjust(c *gin.Context, direction string, fn func(ctx context.Context, id string, day stats.Date) (*engine.CompletionResult, error)) {
	day, ok := s.dateParam(c)
	if !ok {
		return
	}
	res, err := fn(c.Request.Context(), c.Param("id"), day)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.writeCompletion(c, direction, res)
}

type setCountRequest struct {
	Count *int `json:"count"`
}

func (s *Server) handleSetCount(c *gin.Context) {
	var req setCountRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Count == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"count\": n}"})
		return
	}
	day, ok := s.dateParam(c)
	if !ok {
		return
	}
	res, err := s.svc.SetCount(c.Request.Context(), c.Param("id"), day, *req.Count)
	if err != nil {
		s.writeError(c, err)
		return
	}
	direction := "increment"
	if res.After < res.Before {
		direction = "decrement"
	}
	s.writeCompletion(c, direction, res)
}

func (s *Server) writeCompletion(c *gin.Context, direction string, res *engine.CompletionResult) {
	if res.Changed {
		s.metrics.CompletionChanges.WithLabelValues(direction).Inc()
	}
	c.JSON(http.StatusOK, gin.H{
		"habitId": res.HabitID,
		"date":    res.Date,
		"count":   res.After,
		"target":  res.Target,
		"done":    res.Done,
		"changed": res.Changed,
	})
}

func (s *Server) handleStats(c *gin.Context) {
	day, ok := s.dateParam(c)
	if !ok {
		return
	}
	dash, err := s.svc.Dashboard(c.Request.Context(), day)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash.Summary)
}

func (s *Server) handleWeek(c *gin.Context) {
	day, habits, ok := s.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"week": stats.WeeklyAggregate(habits, day)})
}

func (s *Server) handleMonth(c *gin.Context) {
	day, ok := s.dateParam(c)
	if !ok {
		return
	}
	matrix, err := s.svc.Month(c.Request.Context(), day)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": matrix})
}

func (s *Server) handleCalendar(c *gin.Context) {
	habits, err := s.svc.ListHabits(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dates": stats.CalendarHighlightDates(habits)})
}

func (s *Server) handleAchievements(c *gin.Context) {
	day, ok := s.dateParam(c)
	if !ok {
		return
	}
	list, err := s.svc.Achievements(c.Request.Context(), day)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": list})
}

func (s *Server) handleInsight(c *gin.Context) {
	kind := c.Param("kind")
	if s.insights == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI insights are not configured; set ai.api_key"})
		return
	}
	var req insightRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
	}
	day, ok := s.dateParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var (
		out any
		err error
	)
	switch kind {
	case "motivate":
		out, err = s.insights.Motivate(ctx, day)
	case "recommend":
		out, err = s.insights.Recommend(ctx, day, req.Goals)
	case "predict":
		out, err = s.insights.Predict(ctx, day, req.Goals)
	case "collisions":
		out, err = s.insights.DetectCollisions(ctx, day)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown insight kind " + kind})
		return
	}
	if err != nil {
		s.metrics.InsightCalls.WithLabelValues(kind, "error").Inc()
		if errors.Is(err, ai.ErrNoGoals) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.writeError(c, err)
		return
	}
	s.metrics.InsightCalls.WithLabelValues(kind, "ok").Inc()
	c.JSON(http.StatusOK, out)
}

// dateParam reads ?date=YYYY-MM-DD, defaulting to today. It writes a 400 and
// returns false on a malformed date.
func (s *Server) dateParam(c *gin.Context) (stats.Date, bool) {
	raw := c.Query("date")
	if raw == "" {
		return s.svc.Today(), true
	}
	d, err := stats.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return stats.Date{}, false
	}
	return d, true
}

func (s *Server) load(c *gin.Context) (stats.Date, []stats.Habit, bool) {
	day, ok := s.dateParam(c)
	if !ok {
		return day, nil, false
	}
	habits, err := s.svc.ListHabits(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return day, nil, false
	}
	return day, habits, true
}

func (s *Server) writeError(c *gin.Context, err error) {
	var nf engine.NotFoundError
	var ve engine.ValidationError
	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": ve.Field})
	default:
		s.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
