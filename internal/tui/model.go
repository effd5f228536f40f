// Package tui provides the Bubble Tea daily goals dashboard.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/prepdesk/internal/attempts"
	"github.com/verte-zerg/prepdesk/internal/goals"
	"github.com/verte-zerg/prepdesk/internal/model"
	"github.com/verte-zerg/prepdesk/internal/progress"
)

const (
	modeList = iota
	modeAdd
	modeEdit
	modeConfirmDelete
)

const (
	barWidth     = 20
	syncInterval = time.Minute
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FADB14")).Bold(true)
)

type syncMsg time.Time

// Model implements the Bubble Tea goals dashboard.
type Model struct {
	goals    *goals.Store
	attempts *attempts.Store
	tracker  *progress.Tracker
	now      func() time.Time

	width  int
	height int

	list     []model.Goal
	progress model.DailyProgress
	live     model.Counters
	savedAt  time.Time
	selected int

	mode   int
	input  textinput.Model
	errMsg string
	notice string
}

// NewModel constructs the dashboard and performs an initial sync.
func NewModel(gs *goals.Store, as *attempts.Store, now func() time.Time) *Model {
	if now == nil {
		now = time.Now
	}
	m := &Model{
		goals:    gs,
		attempts: as,
		now:      now,
	}
	m.tracker = progress.NewTracker(gs, progress.NotifierFunc(m.celebrate))
	m.input = textinput.New()
	m.input.CharLimit = 32
	m.sync()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return scheduleSync()
}

func scheduleSync() tea.Cmd {
	return tea.Tick(syncInterval, func(t time.Time) tea.Msg { return syncMsg(t) })
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case syncMsg:
		m.sync()
		return m, scheduleSync()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateInput(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.list)-1 {
			m.selected++
		}
	case "a":
		m.mode = modeAdd
		m.errMsg = ""
		m.input.Prompt = "New goal (time|questions target): "
		m.input.Placeholder = "questions 50"
		m.input.SetValue("")
		return m, m.input.Focus()
	case "e":
		if g, ok := m.current(); ok {
			m.mode = modeEdit
			m.errMsg = ""
			m.input.Prompt = "New target: "
			m.input.Placeholder = ""
			m.input.SetValue(strconv.Itoa(g.Target))
			return m, m.input.Focus()
		}
	case "d":
		if _, ok := m.current(); ok {
			m.mode = modeConfirmDelete
			m.errMsg = ""
		}
	case "r":
		now := m.now()
		m.live = attempts.TodayCounters(m.attempts.Load(), now)
		if _, err := m.goals.ResetDailyProgress(now, m.live); err != nil {
			m.errMsg = fmt.Sprintf("failed to reset progress: %v", err)
			return m, nil
		}
		m.notice = "Today's progress was reset."
		m.reload()
	case "s":
		m.sync()
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.leaveInput()
		return m, nil
	case tea.KeyEnter:
		var err error
		if m.mode == modeAdd {
			err = m.addFromInput()
		} else {
			err = m.editFromInput()
		}
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.leaveInput()
		m.sync()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeList
	if msg.String() != "y" {
		return m, nil
	}
	g, ok := m.current()
	if !ok {
		return m, nil
	}
	if err := m.goals.DeleteGoal(m.now(), g.ID); err != nil {
		m.errMsg = fmt.Sprintf("failed to delete goal: %v", err)
		return m, nil
	}
	m.reload()
	return m, nil
}

func (m *Model) leaveInput() {
	m.mode = modeList
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) addFromInput() error {
	t, target, err := ParseGoalInput(m.input.Value())
	if err != nil {
		return err
	}
	now := m.now()
	m.live = attempts.TodayCounters(m.attempts.Load(), now)
	if _, err := m.goals.AddGoal(now, t, target, m.live); err != nil {
		return err
	}
	m.selected = len(m.list)
	return nil
}

func (m *Model) editFromInput() error {
	g, ok := m.current()
	if !ok {
		return errors.New("no goal selected")
	}
	target, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
	if err != nil {
		return fmt.Errorf("target must be a whole number")
	}
	_, err = m.goals.UpdateGoal(m.now(), g.ID, target)
	return err
}

// ParseGoalInput parses "<time|questions> <target>"; the type may be
// abbreviated to t or q.
func ParseGoalInput(input string) (model.GoalType, int, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) != 2 {
		return "", 0, fmt.Errorf("expected \"<time|questions> <target>\"")
	}
	var t model.GoalType
	switch fields[0] {
	case "t", "time", "minutes":
		t = model.GoalTime
	case "q", "questions":
		t = model.GoalQuestions
	default:
		return "", 0, fmt.Errorf("unknown goal type %q", fields[0])
	}
	target, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", 0, fmt.Errorf("target must be a whole number")
	}
	return t, target, nil
}

func (m *Model) current() (model.Goal, bool) {
	if m.selected < 0 || m.selected >= len(m.list) {
		return model.Goal{}, false
	}
	return m.list[m.selected], true
}

// sync recomputes live counters from today's attempts and reconciles goals.
func (m *Model) sync() {
	now := m.now()
	m.live = attempts.TodayCounters(m.attempts.Load(), now)
	res, err := m.tracker.Sync(now, m.live)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to save progress: %v", err)
	}
	m.list = res.Goals
	m.progress = res.Progress
	m.savedAt, _ = m.goals.LastSaved()
	m.clampSelection()
}

// reload refreshes goals and progress without reconciling.
func (m *Model) reload() {
	m.list = m.goals.LoadGoals()
	m.progress = m.goals.LoadOrInitProgress(m.now())
	m.savedAt, _ = m.goals.LastSaved()
	m.clampSelection()
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.list) {
		m.selected = len(m.list) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) celebrate(g model.Goal, entry model.GoalProgress) {
	m.notice = fmt.Sprintf("Goal complete: %s (%d/%d)", g.Label, entry.Current, g.Target)
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("Daily goals · %s", m.progress.Date)),
		footerStyle.Render(fmt.Sprintf("Today: %d questions · %d min", m.live.Questions, m.live.Minutes)),
		"",
	}
	if len(m.list) == 0 {
		lines = append(lines, pendingStyle.Render("No goals yet. Press a to add one."))
	}
	for i, g := range m.list {
		lines = append(lines, m.renderGoal(i, g))
	}
	lines = append(lines, "")
	switch m.mode {
	case modeAdd, modeEdit:
		lines = append(lines, m.input.View())
	case modeConfirmDelete:
		if g, ok := m.current(); ok {
			lines = append(lines, errorStyle.Render(fmt.Sprintf("Delete %q? (y/N)", g.Label)))
		}
	}
	if m.notice != "" {
		lines = append(lines, noticeStyle.Render(m.notice))
	}
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	lines = append(lines, m.renderFooter())
	content := strings.Join(lines, "\n")
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderGoal(i int, g model.Goal) string {
	entry := m.progress.Goals[g.ID]
	unit := "q"
	if g.Type == model.GoalTime {
		unit = "min"
	}
	label := g.Label
	if g.LabelTranslated != "" && g.LabelTranslated != g.Label {
		label = g.LabelTranslated
	}
	line := fmt.Sprintf("%s %d/%d %s  %s", progressBar(entry.Current, g.Target, barWidth), entry.Current, g.Target, unit, label)
	style := pendingStyle
	if entry.Completed {
		line += " ✓"
		style = doneStyle
	}
	prefix := "  "
	if i == m.selected {
		prefix = cursorStyle.Render("> ")
	}
	return prefix + style.Render(line)
}

func progressBar(current, target, width int) string {
	filled := 0
	if target > 0 {
		filled = current * width / target
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func (m *Model) renderFooter() string {
	done := 0
	for _, g := range m.list {
		if m.progress.Goals[g.ID].Completed {
			done++
		}
	}
	segments := []string{fmt.Sprintf("Done %d/%d", done, len(m.list))}
	if !m.savedAt.IsZero() {
		segments = append(segments, "Saved "+m.savedAt.Local().Format("15:04"))
	}
	segments = append(segments, "a add  e edit  d delete  r reset  s sync  q quit")
	return footerStyle.Render(strings.Join(segments, "  "))
}
