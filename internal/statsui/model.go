// Package statsui provides the Bubble Tea analytics interface.
package statsui

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/prepdesk/internal/attempts"
	"github.com/verte-zerg/prepdesk/internal/model"
	"github.com/verte-zerg/prepdesk/internal/stats"
)

const (
	tabOverview = iota
	tabSubjects
	tabPlan
)

const (
	plotHeight = 10
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FADB14"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	priorityStyles  = map[model.Priority]lipgloss.Style{
		model.PriorityCritical:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true),
		model.PriorityHigh:        lipgloss.NewStyle().Foreground(lipgloss.Color("#FA8C16")),
		model.PriorityMedium:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FADB14")),
		model.PriorityMaintenance: lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")),
	}
)

// Model implements the Bubble Tea analytics UI.
type Model struct {
	attempts *attempts.Store
	cfg      model.AnalyticsConfig
	table    stats.StrategyTable

	report stats.Report

	tabs         []string
	activeTab    int
	viewports    []viewport.Model
	subjectTable table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs an analytics UI model.
func NewModel(as *attempts.Store, cfg model.AnalyticsConfig, strategies stats.StrategyTable) *Model {
	if cfg.CurveWindow < 1 {
		cfg.CurveWindow = 1
	}
	m := &Model{
		attempts: as,
		cfg:      cfg,
		table:    strategies,
		tabs:     []string{"Overview", "Subjects", "Plan"},
	}
	m.initInputs()
	m.subjectTable = buildSubjectTable(nil, 0, 1)
	m.initViewports()
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.activeTab == tabSubjects {
			m.subjectTable.Focus()
		} else {
			m.subjectTable.Blur()
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
			m.renderTabContents()
			return m, nil
		case "-":
			m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
			m.renderTabContents()
			return m, nil
		case "/":
			return m.startFilter()
		case "r":
			m.refreshReport()
			return m, nil
		case "g", "home":
			if m.activeTab == tabSubjects {
				m.subjectTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabSubjects {
				m.subjectTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabSubjects {
				var cmd tea.Cmd
				m.subjectTable, cmd = m.subjectTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last: "),
		newFilterInput("Min sample: "),
		newFilterInput("Curve window: "),
	}
	m.setInputsFromConfig()
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && len(m.report.Unmatched) > 0 {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	if m.cfg.Since != nil {
		m.filterInputs[0].SetValue(m.cfg.Since.Format(model.DateLayout))
	} else {
		m.filterInputs[0].SetValue("")
	}
	if m.cfg.Last > 0 {
		m.filterInputs[1].SetValue(strconv.Itoa(m.cfg.Last))
	} else {
		m.filterInputs[1].SetValue("")
	}
	if m.cfg.MinSample > 0 {
		m.filterInputs[2].SetValue(strconv.Itoa(m.cfg.MinSample))
	} else {
		m.filterInputs[2].SetValue("")
	}
	m.filterInputs[3].SetValue(strconv.Itoa(m.cfg.CurveWindow))
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.subjectTable.SetWidth(m.width)
	m.subjectTable.SetHeight(maxInt(1, vpHeight-1))
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabSubjects {
		m.subjectTable.Focus()
	} else {
		m.subjectTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderFilterSummary() string {
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format(model.DateLayout)
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: since=%s  last=%s  min-sample=%d  window=%d", since, last, m.report.MinSample, m.cfg.CurveWindow)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Settings: /  Reload: r  Quit: q")
	if len(m.report.Unmatched) > 0 {
		warn := fmt.Sprintf("No strategy for: %s (using defaults)", strings.Join(m.report.Unmatched, ", "))
		return help + "\n" + warnStyle.Render(truncateLine(warn, m.width))
	}
	return help
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Settings (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if m.activeTab == tabSubjects {
		if len(m.report.Subjects) == 0 {
			return fitLines("No subject stats found.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.subjectTable.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshReport() {
	m.report = stats.BuildReport(m.attempts.Load(), m.cfg, m.table)
	m.subjectTable.SetRows(subjectRows(m.report.Subjects))
	m.updateLayout()
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, m.cfg.CurveWindow, width))
	m.viewports[tabPlan].SetContent(renderPlan(m.report))
}

func renderOverview(report stats.Report, window, width int) string {
	if len(report.Attempts) == 0 {
		return "No attempts found."
	}
	parts := []string{renderSummaryCards(report.Attempts, width)}
	var buf bytes.Buffer
	if err := stats.RenderDifficultyTable(&buf, report.Difficulties); err != nil {
		parts = append(parts, fmt.Sprintf("Failed to render difficulty: %v", err))
	}
	if err := stats.RenderClassification(&buf, report.Classification, report.MinSample); err != nil {
		parts = append(parts, fmt.Sprintf("Failed to render classification: %v", err))
	}
	if err := stats.RenderTrend(&buf, report.Attempts, window, width, plotHeight, true); err != nil {
		parts = append(parts, fmt.Sprintf("Failed to render trend: %v", err))
	}
	parts = append(parts, strings.TrimRight(buf.String(), "\n"))
	return strings.Join(parts, "\n\n")
}

func renderSummaryCards(list []model.Attempt, width int) string {
	var totalScore, best float64
	questions, seconds := 0, 0
	for _, a := range list {
		score := stats.AttemptScore(a)
		totalScore += score
		if score > best {
			best = score
		}
		questions += a.TotalQuestions
		seconds += a.TimeTaken
	}
	cards := []string{
		metricCard("Attempts", strconv.Itoa(len(list))),
		metricCard("Avg Score", fmt.Sprintf("%.1f%%", totalScore/float64(len(list)))),
		metricCard("Best Score", fmt.Sprintf("%.1f%%", best)),
		metricCard("Questions", strconv.Itoa(questions)),
		metricCard("Practice", (time.Duration(seconds) * time.Second).String()),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderPlan(report stats.Report) string {
	if len(report.Plan) == 0 {
		return "No study plan yet: answer a few more questions per subject."
	}
	lines := []string{cardValueStyle.Render(fmt.Sprintf("Study plan (%d min/day)", stats.TotalDailyMinutes(report.Plan))), ""}
	for _, item := range report.Plan {
		style := priorityStyles[item.Priority]
		lines = append(lines, fmt.Sprintf("%s %s  %d min  accuracy %d%%", style.Render(fmt.Sprintf("%-11s", item.Priority)), item.Subject, item.Minutes, item.Accuracy))
		if len(item.Topics) > 0 {
			lines = append(lines, headerStyle.Render("    topics: "+strings.Join(item.Topics, ", ")))
		}
		if len(item.Resources) > 0 {
			lines = append(lines, headerStyle.Render("    resources: "+strings.Join(item.Resources, ", ")))
		}
		for _, tip := range item.Tips {
			lines = append(lines, headerStyle.Render("    tip: "+tip))
		}
	}
	return strings.Join(lines, "\n")
}

func buildSubjectTable(aggs []model.SubjectAggregate, width, height int) table.Model {
	t := table.New(
		table.WithColumns(subjectColumns()),
		table.WithRows(subjectRows(aggs)),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(subjectTableStyles())
	return t
}

func subjectColumns() []table.Column {
	return []table.Column{
		{Title: "Subject", Width: 24},
		{Title: "Accuracy", Width: 9},
		{Title: "Correct", Width: 8},
		{Title: "Total", Width: 6},
		{Title: "Attempts", Width: 9},
	}
}

func subjectRows(aggs []model.SubjectAggregate) []table.Row {
	rows := make([]table.Row, 0, len(aggs))
	for _, agg := range stats.SortWeakestFirst(aggs) {
		rows = append(rows, table.Row{
			agg.Subject,
			fmt.Sprintf("%d%%", agg.Accuracy),
			strconv.Itoa(agg.Correct),
			strconv.Itoa(agg.Total),
			strconv.Itoa(agg.AttemptCount),
		})
	}
	return rows
}

func subjectTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	sinceInput := strings.TrimSpace(m.filterInputs[0].Value())
	var since *time.Time
	if sinceInput != "" {
		parsed, err := time.ParseInLocation(model.DateLayout, sinceInput, time.Local)
		if err != nil {
			return fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		since = &parsed
	}

	last, err := parseOptionalInt(m.filterInputs[1].Value(), 0)
	if err != nil {
		return fmt.Errorf("invalid last value (use 0 or positive integer)")
	}
	minSample, err := parseOptionalInt(m.filterInputs[2].Value(), 0)
	if err != nil {
		return fmt.Errorf("invalid min sample (use 0 or positive integer)")
	}
	window, err := parseOptionalInt(m.filterInputs[3].Value(), 1)
	if err != nil || window < 1 {
		return fmt.Errorf("invalid curve window (use integer >= 1)")
	}

	m.cfg = model.AnalyticsConfig{
		Since:       since,
		Last:        last,
		MinSample:   minSample,
		CurveWindow: window,
	}
	return nil
}

func parseOptionalInt(input string, fallback int) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(input)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative value %d", v)
	}
	return v, nil
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	if n%5 == 0 {
		return n + 5
	}
	return ((n / 5) + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
