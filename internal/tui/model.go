package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rizwanrichu87/studio/internal/engine"
	"github.com/Rizwanrichu87/studio/internal/stats"
	"github.com/Rizwanrichu87/studio/internal/ui"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Inc     key.Binding
	Dec     key.Binding
	PrevDay key.Binding
	NextDay key.Binding
	Today   key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Inc, k.Dec, k.PrevDay, k.NextDay, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Inc, k.Dec},
		{k.PrevDay, k.NextDay, k.Today, k.Refresh, k.Quit},
	}
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Inc:     key.NewBinding(key.WithKeys("+", "=", " ", "enter"), key.WithHelp("+/space", "complete")),
	Dec:     key.NewBinding(key.WithKeys("-", "backspace"), key.WithHelp("-", "undo")),
	PrevDay: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
	NextDay: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
	Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	day      stats.Date
	dash     *engine.Dashboard
	selected int

	help     help.Model
	progress progress.Model

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	dash *engine.Dashboard
	err  error
}

type adjustedMsg struct {
	res *engine.CompletionResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:      ctx,
		svc:      svc,
		day:      svc.Today(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		loading:  true,
		lastLog:  "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	day := m.day
	return func() tea.Msg {
		dash, err := m.svc.Dashboard(m.ctx, day)
		return loadedMsg{dash: dash, err: err}
	}
}

func (m boardModel) adjustCmd(id string, delta int) tea.Cmd {
	day := m.day
	return func() tea.Msg {
		var (
			res *engine.CompletionResult
			err error
		)
		if delta > 0 {
			res, err = m.svc.Increment(m.ctx, id, day)
		} else {
			res, err = m.svc.Decrement(m.ctx, id, day)
		}
		return adjustedMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.dash = msg.dash
		if m.selected >= len(m.dash.Habits) {
			m.selected = len(m.dash.Habits) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case adjustedMsg:
		if msg.err != nil {
			m.lastLog = "Update failed: " + msg.err.Error()
			return m, nil
		}
		switch {
		case !msg.res.Changed && msg.res.Done:
			m.lastLog = "Already at target."
		case !msg.res.Changed:
			m.lastLog = "Nothing to undo."
		default:
			m.lastLog = fmt.Sprintf("%s: %d/%d", msg.res.Date, msg.res.After, msg.res.Target)
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Refresh):
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case key.Matches(msg, keys.Up):
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case key.Matches(msg, keys.Down):
			if m.dash != nil && m.selected < len(m.dash.Habits)-1 {
				m.selected++
			}
			return m, nil
		case key.Matches(msg, keys.PrevDay):
			m.day = m.day.AddDays(-1)
			return m, m.loadCmd()
		case key.Matches(msg, keys.NextDay):
			m.day = m.day.AddDays(1)
			return m, m.loadCmd()
		case key.Matches(msg, keys.Today):
			m.day = m.svc.Today()
			return m, m.loadCmd()
		case key.Matches(msg, keys.Inc), key.Matches(msg, keys.Dec):
			row := m.selectedRow()
			if row == nil {
				m.lastLog = "Add a habit first: hs add <name>"
				return m, nil
			}
			delta := 1
			if key.Matches(msg, keys.Dec) {
				delta = -1
			}
			return m, m.adjustCmd(row.Habit.ID, delta)
		}
	}
	return m, nil
}

func (m boardModel) selectedRow() *engine.HabitRow {
	if m.dash == nil || m.selected < 0 || m.selected >= len(m.dash.Habits) {
		return nil
	}
	return &m.dash.Habits[m.selected]
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.dash == nil {
		return "Habit Studio, loading…"
	}
	s := m.dash.Summary
	pct := 0.0
	if s.Today.Target > 0 {
		pct = float64(s.Today.Completed) / float64(s.Today.Target)
	}
	return fmt.Sprintf("%s | %s | %s %d days (best %d) | %s %d%%",
		ui.Title.Render("Habit Studio"),
		m.day.Time().Format("Mon Jan 2, 2006"),
		ui.IconFire, s.CurrentStreak, s.LongestStreak,
		m.progress.ViewAs(pct), s.Today.Percent,
	)
}

func (m boardModel) renderSidebar() string {
	if m.dash == nil {
		return "This week\n\nLoading…"
	}
	labels := make([]string, 0, 7)
	values := make([]int, 0, 7)
	for _, d := range m.dash.Summary.Week {
		labels = append(labels, d.Label)
		values = append(values, d.Completed)
	}
	lines := []string{ui.PanelTitle.Render("This week"), ui.BarChart(labels, values, 12), ""}
	lines = append(lines, ui.LabelValue("Total", m.dash.Summary.TotalCompletions))
	lines = append(lines, ui.LabelValue("Missed", fmt.Sprintf("%d days", m.dash.Summary.MissedDays)))
	lines = append(lines, ui.LabelValue("Rate", fmt.Sprintf("%.1f%%", m.dash.Summary.CompletionRate)))
	lines = append(lines, ui.LabelValue("Badges", fmt.Sprintf("%d/%d", m.dash.Unlocked, len(m.dash.Achievements))))
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	out := []string{ui.PanelTitle.Render("Habits")}
	if m.dash == nil || len(m.dash.Habits) == 0 {
		out = append(out, "(no habits yet)")
		return strings.Join(out, "\n")
	}
	for i, row := range m.dash.Habits {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		mark := ui.IconTodo
		if row.Done {
			mark = ui.IconDone
		}
		line := fmt.Sprintf("%s%s %s %s %s", cursor, mark, ui.HabitIcon(row.Habit.Icon), row.Habit.Name, ui.CountText(row.Count, row.Target))
		if row.Habit.ReminderTime != "" {
			line += " " + ui.Muted.Render(ui.IconBell+" "+row.Habit.ReminderTime)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog + "\n" + m.help.View(keys)
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
