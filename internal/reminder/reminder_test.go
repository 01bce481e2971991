package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Rizwanrichu87/studio/internal/stats"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeClock jumps forward by the requested duration as soon as After is called.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

// stuckClock never fires.
type stuckClock struct{ now time.Time }

func (c stuckClock) Now() time.Time                         { return c.now }
func (c stuckClock) After(d time.Duration) <-chan time.Time { return make(chan time.Time) }

func habit(id, reminder string, done ...string) stats.Habit {
	return stats.Habit{
		ID:           id,
		Name:         "habit " + id,
		Frequency:    stats.FrequencyDaily,
		ReminderTime: reminder,
		Completions:  stats.FromCompletedDates(done),
	}
}

func TestPlan(t *testing.T) {
	now := time.Date(2024, 7, 23, 9, 30, 0, 0, time.UTC)
	habits := []stats.Habit{
		habit("late", "21:00"),
		habit("early", "08:00"),
		habit("done", "12:00", "2024-07-23"),
		habit("none", ""),
		habit("bad", "7pm"),
		habit("soon", "10:15"),
	}

	got := Plan(habits, now)
	require.Len(t, got, 2)
	assert.Equal(t, "soon", got[0].HabitID)
	assert.Equal(t, time.Date(2024, 7, 23, 10, 15, 0, 0, time.UTC), got[0].FireAt)
	assert.Equal(t, "late", got[1].HabitID)
	for _, r := range got {
		assert.False(t, r.Done)
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("07:05")
	require.NoError(t, err)
	assert.Equal(t, 7, h)
	assert.Equal(t, 5, m)

	_, _, err = ParseClock("25:00")
	assert.Error(t, err)
}

func TestRunEmitsInOrderAndSkipsDone(t *testing.T) {
	start := time.Date(2024, 7, 23, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start}
	s := NewScheduler(WithClock(clock))

	reminders := []Reminder{
		{HabitID: "b", Name: "B", FireAt: start.Add(2 * time.Hour)},
		{HabitID: "a", Name: "A", FireAt: start.Add(time.Hour)},
		{HabitID: "x", Name: "X", FireAt: start.Add(30 * time.Minute), Done: true},
	}
	out := make(chan Due, len(reminders))
	require.NoError(t, s.Run(context.Background(), reminders, out))
	close(out)

	var ids []string
	for d := range out {
		ids = append(ids, d.HabitID)
	}
	assert.Equal(t, []string{"a", "b"}, ids)
	assert.Equal(t, start.Add(2*time.Hour), clock.Now())
}

func TestRunStopsOnCancel(t *testing.T) {
	start := time.Date(2024, 7, 23, 9, 0, 0, 0, time.UTC)
	s := NewScheduler(WithClock(stuckClock{now: start}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, []Reminder{{HabitID: "a", FireAt: start.Add(time.Hour)}}, make(chan Due))
	}()
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}

func TestRunDailyReplansAndPropagatesLoadErrors(t *testing.T) {
	start := time.Date(2024, 7, 23, 20, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start}
	s := NewScheduler(WithClock(clock))

	// Each day loads once to plan and once more when the reminder fires.
	calls := 0
	boom := errors.New("db closed")
	load := func(ctx context.Context) ([]stats.Habit, error) {
		calls++
		if calls > 4 {
			return nil, boom
		}
		return []stats.Habit{habit("a", "21:00")}, nil
	}

	out := make(chan Due, 4)
	err := s.RunDaily(context.Background(), load, out)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 5, calls)
	assert.Len(t, out, 2, "one reminder per planned day")
}

func TestRunDailySkipsHabitsCompletedAfterPlanning(t *testing.T) {
	start := time.Date(2024, 7, 23, 8, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start}
	s := NewScheduler(WithClock(clock))

	calls := 0
	boom := errors.New("stop")
	load := func(ctx context.Context) ([]stats.Habit, error) {
		calls++
		switch {
		case calls == 1:
			return []stats.Habit{habit("a", "09:00"), habit("b", "10:00"), habit("c", "11:00")}, nil
		case calls <= 4:
			// a was completed elsewhere and b deleted after planning.
			return []stats.Habit{habit("a", "09:00", "2024-07-23"), habit("c", "11:00")}, nil
		default:
			return nil, boom
		}
	}

	out := make(chan Due, 4)
	err := s.RunDaily(context.Background(), load, out)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 5, calls)
	require.Len(t, out, 1)
	assert.Equal(t, "c", (<-out).HabitID)
}
