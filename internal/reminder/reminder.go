// Package reminder turns habit reminder times into "reminder due" signals.
package reminder

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Rizwanrichu87/studio/internal/stats"
)

// Reminder is one planned notification for a habit on the current day.
type Reminder struct {
	HabitID string
	Name    string
	FireAt  time.Time
	Done    bool
}

// Due is sent when a reminder's fire time is reached.
type Due struct {
	HabitID string
	Name    string
	FireAt  time.Time
}

// ParseClock parses an HH:MM reminder time.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("reminder time %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// Plan returns the reminders still ahead of now on now's calendar day, sorted
// by fire time. Habits without a reminder time, with an unparseable one, or
// already done today are left out.
func Plan(habits []stats.Habit, now time.Time) []Reminder {
	today := stats.DateOf(now)
	var out []Reminder
	for _, h := range habits {
		if h.ReminderTime == "" {
			continue
		}
		hour, minute, err := ParseClock(h.ReminderTime)
		if err != nil {
			continue
		}
		fireAt := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if !fireAt.After(now) {
			continue
		}
		if stats.IsDoneOnDate(h, today) {
			continue
		}
		out = append(out, Reminder{HabitID: h.ID, Name: h.Name, FireAt: fireAt})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FireAt.Before(out[j].FireAt) })
	return out
}

// Clock abstracts time so the scheduler can be driven by tests.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

type Scheduler struct {
	clock  Clock
	logger *zap.Logger
}

type Option func(*Scheduler)

func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{clock: realClock{}, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run waits for each reminder's fire time and sends a Due on out. Reminders
// marked done are skipped. It returns nil once every reminder has fired, or
// ctx.Err() when ctx is cancelled first.
func (s *Scheduler) Run(ctx context.Context, reminders []Reminder, out chan<- Due) error {
	return s.run(ctx, reminders, out, nil)
}

// run is Run with an optional load used to drop reminders whose habit was
// completed or deleted after planning.
func (s *Scheduler) run(ctx context.Context, reminders []Reminder, out chan<- Due, load Loader) error {
	pending := make([]Reminder, 0, len(reminders))
	for _, r := range reminders {
		if !r.Done {
			pending = append(pending, r)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].FireAt.Before(pending[j].FireAt) })

	for _, r := range pending {
		if wait := r.FireAt.Sub(s.clock.Now()); wait > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-s.clock.After(wait):
			}
		}
		if load != nil && !s.stillDue(ctx, load, r) {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- Due{HabitID: r.HabitID, Name: r.Name, FireAt: r.FireAt}:
			s.logger.Info("reminder due", zap.String("habit_id", r.HabitID), zap.String("name", r.Name), zap.Time("fire_at", r.FireAt))
		}
	}
	return nil
}

// Loader supplies the current habits for daily re-planning.
type Loader func(ctx context.Context) ([]stats.Habit, error)

// stillDue reloads the habits at fire time. A failed reload keeps the reminder.
func (s *Scheduler) stillDue(ctx context.Context, load Loader, r Reminder) bool {
	habits, err := load(ctx)
	if err != nil {
		s.logger.Warn("reminder recheck failed", zap.String("habit_id", r.HabitID), zap.Error(err))
		return true
	}
	for _, h := range habits {
		if h.ID != r.HabitID {
			continue
		}
		if stats.IsDoneOnDate(h, stats.DateOf(r.FireAt)) {
			s.logger.Debug("reminder skipped, habit already done", zap.String("habit_id", r.HabitID))
			return false
		}
		return true
	}
	s.logger.Debug("reminder skipped, habit deleted", zap.String("habit_id", r.HabitID))
	return false
}

// RunDaily plans the rest of today from load, runs it, then sleeps until the
// next midnight and plans again. Each reminder is checked against a fresh load
// before it is sent. It only returns on cancellation or a planning load error.
func (s *Scheduler) RunDaily(ctx context.Context, load Loader, out chan<- Due) error {
	for {
		habits, err := load(ctx)
		if err != nil {
			return fmt.Errorf("load habits for reminders: %w", err)
		}
		now := s.clock.Now()
		plan := Plan(habits, now)
		s.logger.Debug("reminders planned", zap.Int("count", len(plan)))
		if err := s.run(ctx, plan, out, load); err != nil {
			return err
		}

		now = s.clock.Now()
		next := stats.DateOf(now).AddDays(1)
		midnight := time.Date(next.Year, next.Month, next.Day, 0, 0, 0, 0, now.Location())
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(midnight.Sub(now)):
		}
	}
}
