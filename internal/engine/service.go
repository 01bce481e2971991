package engine

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/Rizwanrichu87/studio/internal/stats"
	"github.com/Rizwanrichu87/studio/internal/storage"
)

type Service struct {
	db          *sql.DB
	habits      *storage.HabitRepo
	completions *storage.CompletionRepo
	logger      *zap.Logger
	window      int
	now         func() time.Time
}

type Option func(*Service)

// WithLogger sets the service logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithWindow sets the trailing window, in days, for missed-day and rate figures.
func WithWindow(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.window = days
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:          db,
		habits:      storage.NewHabitRepo(db),
		completions: storage.NewCompletionRepo(db),
		logger:      zap.NewNop(),
		window:      stats.DefaultWindow,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) CompletionRepo() *storage.CompletionRepo { return s.completions }

// Window is the trailing window, in days, for missed days and completion rate.
func (s *Service) Window() int { return s.window }

// Today is the caller's local calendar day according to the service clock.
func (s *Service) Today() stats.Date {
	return stats.DateOf(s.now())
}

// ListHabits loads every habit together with its completion ledger.
func (s *Service) ListHabits(ctx context.Context) ([]stats.Habit, error) {
	rows, err := s.habits.ListAll(ctx)
	if err != nil {
		s.logger.Error("list habits failed", zap.Error(err))
		return nil, err
	}
	ledgers, err := s.completions.ListAll(ctx)
	if err != nil {
		s.logger.Error("list completions failed", zap.Error(err))
		return nil, err
	}

	out := make([]stats.Habit, 0, len(rows))
	for i := range rows {
		out = append(out, toStatsHabit(&rows[i], ledgers[rows[i].ID]))
	}
	s.logger.Debug("listed habits", zap.Int("count", len(out)))
	return out, nil
}

func (s *Service) GetHabit(ctx context.Context, id string) (*stats.Habit, error) {
	row, err := s.habits.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, NotFoundError{Kind: "habit", ID: id}
	}
	ledger, err := s.completions.ListByHabit(ctx, id)
	if err != nil {
		return nil, err
	}
	h := toStatsHabit(row, ledger)
	return &h, nil
}

func toStatsHabit(row *storage.Habit, ledger []storage.Completion) stats.Habit {
	raw := make(map[string]int, len(ledger))
	for _, c := range ledger {
		raw[c.Day] = c.Count
	}
	reminder := ""
	if row.ReminderTime != nil {
		reminder = *row.ReminderTime
	}
	return stats.Habit{
		ID:                row.ID,
		Name:              row.Name,
		Frequency:         stats.Frequency(row.Frequency),
		Completions:       stats.ParseLedger(raw),
		TargetCompletions: row.TargetCompletions,
		ReminderTime:      reminder,
		Icon:              row.Icon,
	}
}
