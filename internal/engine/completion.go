package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/Rizwanrichu87/studio/internal/stats"
)

type CompletionResult struct {
	HabitID string
	Date    stats.Date
	Before  int
	After   int
	Target  int
	Done    bool // After reached the target
	Changed bool
}

// Increment records one more completion of a habit on day, up to its target.
func (s *Service) Increment(ctx context.Context, id string, day stats.Date) (*CompletionResult, error) {
	return s.adjust(ctx, id, day, 1)
}

// Decrement removes one completion of a habit on day, down to zero.
func (s *Service) Decrement(ctx context.Context, id string, day stats.Date) (*CompletionResult, error) {
	return s.adjust(ctx, id, day, -1)
}

func (s *Service) adjust(ctx context.Context, id string, day stats.Date, delta int) (*CompletionResult, error) {
	row, err := s.habits.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, NotFoundError{Kind: "habit", ID: id}
	}
	before, err := s.completions.Count(ctx, id, day.String())
	if err != nil {
		return nil, err
	}
	target := max(row.TargetCompletions, 1)
	if delta > 0 && before >= target {
		// A lowered target never pulls an existing count down.
		return &CompletionResult{HabitID: id, Date: day, Before: before, After: before, Target: target, Done: true}, nil
	}
	return s.setCount(ctx, id, day, before, before+delta, target)
}

// SetCount stores an explicit count for a habit on day, clamped to [0, target].
func (s *Service) SetCount(ctx context.Context, id string, day stats.Date, n int) (*CompletionResult, error) {
	row, err := s.habits.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, NotFoundError{Kind: "habit", ID: id}
	}
	before, err := s.completions.Count(ctx, id, day.String())
	if err != nil {
		return nil, err
	}
	return s.setCount(ctx, id, day, before, n, row.TargetCompletions)
}

func (s *Service) setCount(ctx context.Context, id string, day stats.Date, before, after, target int) (*CompletionResult, error) {
	if target < 1 {
		target = 1
	}
	if after > target {
		after = target
	}
	if after < 0 {
		after = 0
	}

	res := &CompletionResult{
		HabitID: id,
		Date:    day,
		Before:  before,
		After:   after,
		Target:  target,
		Done:    after >= target,
		Changed: after != before,
	}
	if !res.Changed {
		return res, nil
	}

	if err := s.completions.Set(ctx, id, day.String(), after); err != nil {
		s.logger.Error("set completion failed", zap.String("habit_id", id), zap.Stringer("day", day), zap.Error(err))
		return nil, err
	}
	s.logger.Info("completion updated",
		zap.String("habit_id", id),
		zap.Stringer("day", day),
		zap.Int("before", before),
		zap.Int("after", after),
	)
	return res, nil
}
