package engine

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rizwanrichu87/studio/internal/stats"
	"github.com/Rizwanrichu87/studio/internal/storage"
)

// HabitIcons are the icon names a habit may use.
var HabitIcons = []string{"BookOpen", "Dumbbell", "Leaf", "Target", "BrainCircuit", "Coffee"}

// DefaultIcon is used when no icon is given.
const DefaultIcon = "Target"

const minNameLen = 2

type CreateHabitInput struct {
	Name              string
	Frequency         string
	TargetCompletions *int // nil means 1
	ReminderTime      string
	Icon              string
}

// UpdateHabitInput carries a bulk edit; nil fields are left unchanged.
type UpdateHabitInput struct {
	Name              *string
	Frequency         *string
	TargetCompletions *int
	ReminderTime      *string
	Icon              *string
}

func normalizeName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if len([]rune(n)) < minNameLen {
		return "", ValidationError{Field: "name", Reason: "must be at least 2 characters"}
	}
	return n, nil
}

func normalizeFrequency(input string) (stats.Frequency, error) {
	if strings.TrimSpace(input) == "" {
		return stats.FrequencyDaily, nil
	}
	f, err := stats.ParseFrequency(input)
	if err != nil {
		return "", ValidationError{Field: "frequency", Reason: "must be daily, weekly or monthly"}
	}
	return f, nil
}

func normalizeTarget(n int) (int, error) {
	if n < 1 {
		return 0, ValidationError{Field: "targetCompletions", Reason: "must be at least 1"}
	}
	return n, nil
}

// normalizeReminder accepts "" (no reminder) or a 24h HH:MM time.
func normalizeReminder(input string) (*string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return nil, ValidationError{Field: "reminderTime", Reason: "must be HH:MM"}
	}
	v := t.Format("15:04")
	return &v, nil
}

func normalizeIcon(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return DefaultIcon, nil
	}
	for _, icon := range HabitIcons {
		if strings.EqualFold(icon, s) {
			return icon, nil
		}
	}
	return "", ValidationError{Field: "icon", Reason: "unknown icon " + s}
}

func (s *Service) CreateHabit(ctx context.Context, in CreateHabitInput) (*stats.Habit, error) {
	ins, err := s.prepareInsert(in)
	if err != nil {
		return nil, err
	}
	if err := s.habits.Insert(ctx, ins); err != nil {
		s.logger.Error("create habit failed", zap.String("name", ins.Name), zap.Error(err))
		return nil, err
	}
	s.logger.Info("habit created", zap.String("id", ins.ID), zap.String("name", ins.Name), zap.String("frequency", ins.Frequency))
	h := habitFromInsert(ins)
	return &h, nil
}

// prepareInsert validates create input and assigns a fresh ID.
func (s *Service) prepareInsert(in CreateHabitInput) (storage.HabitInsert, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return storage.HabitInsert{}, err
	}
	freq, err := normalizeFrequency(in.Frequency)
	if err != nil {
		return storage.HabitInsert{}, err
	}
	target := 1
	if in.TargetCompletions != nil {
		if target, err = normalizeTarget(*in.TargetCompletions); err != nil {
			return storage.HabitInsert{}, err
		}
	}
	reminder, err := normalizeReminder(in.ReminderTime)
	if err != nil {
		return storage.HabitInsert{}, err
	}
	icon, err := normalizeIcon(in.Icon)
	if err != nil {
		return storage.HabitInsert{}, err
	}
	return storage.HabitInsert{
		ID:                uuid.NewString(),
		Name:              name,
		Frequency:         string(freq),
		TargetCompletions: target,
		ReminderTime:      reminder,
		Icon:              icon,
		CreatedAt:         s.now().UTC(),
	}, nil
}

func habitFromInsert(ins storage.HabitInsert) stats.Habit {
	h := stats.Habit{
		ID:                ins.ID,
		Name:              ins.Name,
		Frequency:         stats.Frequency(ins.Frequency),
		Completions:       stats.Ledger{},
		TargetCompletions: ins.TargetCompletions,
		Icon:              ins.Icon,
	}
	if ins.ReminderTime != nil {
		h.ReminderTime = *ins.ReminderTime
	}
	return h
}

// UpdateHabit applies a bulk edit. Completions are left untouched; lowering the
// target does not rewrite past counts.
func (s *Service) UpdateHabit(ctx context.Context, id string, in UpdateHabitInput) (*stats.Habit, error) {
	cur, err := s.habits.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, NotFoundError{Kind: "habit", ID: id}
	}

	upd := storage.HabitUpdate{
		Name:              cur.Name,
		Frequency:         cur.Frequency,
		TargetCompletions: cur.TargetCompletions,
		ReminderTime:      cur.ReminderTime,
		Icon:              cur.Icon,
		UpdatedAt:         s.now().UTC(),
	}
	if in.Name != nil {
		if upd.Name, err = normalizeName(*in.Name); err != nil {
			return nil, err
		}
	}
	if in.Frequency != nil {
		f, err := normalizeFrequency(*in.Frequency)
		if err != nil {
			return nil, err
		}
		upd.Frequency = string(f)
	}
	if in.TargetCompletions != nil {
		if upd.TargetCompletions, err = normalizeTarget(*in.TargetCompletions); err != nil {
			return nil, err
		}
	}
	if in.ReminderTime != nil {
		if upd.ReminderTime, err = normalizeReminder(*in.ReminderTime); err != nil {
			return nil, err
		}
	}
	if in.Icon != nil {
		if upd.Icon, err = normalizeIcon(*in.Icon); err != nil {
			return nil, err
		}
	}

	ok, err := s.habits.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NotFoundError{Kind: "habit", ID: id}
	}
	s.logger.Info("habit updated", zap.String("id", id))
	return s.GetHabit(ctx, id)
}

// DeleteHabit removes a habit and its whole ledger.
func (s *Service) DeleteHabit(ctx context.Context, id string) error {
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := storage.NewCompletionRepo(tx).DeleteByHabit(ctx, id); err != nil {
			return err
		}
		ok, err := storage.NewHabitRepo(tx).Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return NotFoundError{Kind: "habit", ID: id}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("habit deleted", zap.String("id", id))
	return nil
}
