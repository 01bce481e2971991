package engine

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Rizwanrichu87/studio/internal/stats"
	"github.com/Rizwanrichu87/studio/internal/storage"
)

const transferVersion = 1

// TransferHabit is one habit in an export file. Files written by older
// versions carry completed_dates instead of completions; both are read.
type TransferHabit struct {
	ID                string         `yaml:"id,omitempty"`
	Name              string         `yaml:"name"`
	Frequency         string         `yaml:"frequency"`
	TargetCompletions int            `yaml:"targetCompletions,omitempty"`
	ReminderTime      string         `yaml:"reminderTime,omitempty"`
	Icon              string         `yaml:"icon,omitempty"`
	Completions       map[string]int `yaml:"completions,omitempty"`
	CompletedDates    []string       `yaml:"completed_dates,omitempty"`
}

type TransferFile struct {
	Version int             `yaml:"version"`
	Habits  []TransferHabit `yaml:"habits"`
}

// Ledger returns the habit's completions, migrating the legacy date list when
// no counts are present.
func (t TransferHabit) Ledger() stats.Ledger {
	if len(t.Completions) > 0 {
		return stats.ParseLedger(t.Completions)
	}
	return stats.FromCompletedDates(t.CompletedDates)
}

// Export writes every habit and its ledger as YAML.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	habits, err := s.ListHabits(ctx)
	if err != nil {
		return err
	}
	file := TransferFile{Version: transferVersion}
	for _, h := range habits {
		file.Habits = append(file.Habits, TransferHabit{
			ID:                h.ID,
			Name:              h.Name,
			Frequency:         string(h.Frequency),
			TargetCompletions: h.Target(),
			ReminderTime:      h.ReminderTime,
			Icon:              h.Icon,
			Completions:       h.Completions.Raw(),
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close export encoder: %w", err)
	}
	return nil
}

type ImportResult struct {
	Habits      int
	Completions int
	Skipped     []string // names rejected by validation
}

// Import reads a YAML (or JSON) export and adds every habit as a new habit.
// Invalid habits are skipped and reported; counts above the target are clamped.
func (s *Service) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	var file TransferFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode import: %w", err)
	}

	res := &ImportResult{}
	for _, th := range file.Habits {
		in := CreateHabitInput{
			Name:         th.Name,
			Frequency:    th.Frequency,
			ReminderTime: th.ReminderTime,
			Icon:         th.Icon,
		}
		if th.TargetCompletions != 0 {
			in.TargetCompletions = &th.TargetCompletions
		}
		ins, err := s.prepareInsert(in)
		if err != nil {
			s.logger.Warn("import skipped habit", zap.String("name", th.Name), zap.Error(err))
			res.Skipped = append(res.Skipped, th.Name)
			continue
		}

		ledger := th.Ledger()
		days := ledger.Dates()

		err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
			if err := storage.NewHabitRepo(tx).Insert(ctx, ins); err != nil {
				return err
			}
			completions := storage.NewCompletionRepo(tx)
			for _, d := range days {
				n := ledger[d]
				if n > ins.TargetCompletions {
					n = ins.TargetCompletions
				}
				if err := completions.Set(ctx, ins.ID, d.String(), n); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return res, fmt.Errorf("import %q: %w", th.Name, err)
		}
		res.Habits++
		res.Completions += len(days)
	}
	s.logger.Info("import finished", zap.Int("habits", res.Habits), zap.Int("days", res.Completions), zap.Int("skipped", len(res.Skipped)))
	return res, nil
}
