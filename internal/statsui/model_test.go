package statsui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/prepdesk/internal/attempts"
	"github.com/verte-zerg/prepdesk/internal/model"
	"github.com/verte-zerg/prepdesk/internal/stats"
	"github.com/verte-zerg/prepdesk/internal/store"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	as := attempts.New(store.NewMemory(), nil)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	for i, sw := range []map[string]model.Breakdown{
		{"Physics": {Correct: 2, Total: 10}, "English": {Correct: 9, Total: 10}},
		{"Physics": {Correct: 3, Total: 10}, "Astronomy": {Correct: 6, Total: 10}},
	} {
		if _, err := as.Record(base, model.Attempt{SubjectWise: sw, CreatedAt: base.AddDate(0, 0, i)}); err != nil {
			t.Fatalf("record attempt: %v", err)
		}
	}
	m := NewModel(as, model.AnalyticsConfig{CurveWindow: 1}, stats.DefaultStrategies())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func TestSubjectRowsWeakestFirst(t *testing.T) {
	m := newTestModel(t)
	rows := m.subjectTable.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 subject rows, got %d", len(rows))
	}
	if rows[0][0] != "Physics" || rows[0][1] != "25%" {
		t.Fatalf("expected Physics first, got %v", rows[0])
	}
}

func TestFooterWarnsUnmatchedSubjects(t *testing.T) {
	m := newTestModel(t)
	if !strings.Contains(m.renderFooter(), "Astronomy") {
		t.Fatalf("expected unmatched subject warning, got %q", m.renderFooter())
	}
}

func TestPlanTabListsCriticalSubject(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabPlan {
		t.Fatalf("expected plan tab, got %d", m.activeTab)
	}
	if !strings.Contains(m.View(), "Physics") || !strings.Contains(m.View(), "critical") {
		t.Fatalf("expected critical Physics entry in plan:\n%s", m.View())
	}
}

func TestApplyFilterValidates(t *testing.T) {
	m := newTestModel(t)
	m.filterInputs[3].SetValue("0")
	if err := m.applyFilter(); err == nil {
		t.Fatalf("expected window 0 to be rejected")
	}
	m.filterInputs[0].SetValue("2024-03-02")
	m.filterInputs[1].SetValue("")
	m.filterInputs[2].SetValue("")
	m.filterInputs[3].SetValue("3")
	if err := m.applyFilter(); err != nil {
		t.Fatalf("apply filter: %v", err)
	}
	m.refreshReport()
	if len(m.report.Attempts) != 1 {
		t.Fatalf("expected since filter to keep 1 attempt, got %d", len(m.report.Attempts))
	}
	if m.report.MinSample != stats.DefaultMinSample {
		t.Fatalf("expected default min sample, got %d", m.report.MinSample)
	}
}

func TestCurveWindowSteps(t *testing.T) {
	if got := nextCurveWindow(1); got != 5 {
		t.Fatalf("next(1) = %d", got)
	}
	if got := nextCurveWindow(7); got != 10 {
		t.Fatalf("next(7) = %d", got)
	}
	if got := prevCurveWindow(5); got != 1 {
		t.Fatalf("prev(5) = %d", got)
	}
	if got := prevCurveWindow(12); got != 10 {
		t.Fatalf("prev(12) = %d", got)
	}
}
