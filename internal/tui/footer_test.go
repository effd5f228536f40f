package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/prepdesk/internal/attempts"
	"github.com/verte-zerg/prepdesk/internal/goals"
	"github.com/verte-zerg/prepdesk/internal/model"
	"github.com/verte-zerg/prepdesk/internal/store"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)

func newTestModel(t *testing.T) (*Model, *goals.Store, *attempts.Store) {
	t.Helper()
	mem := store.NewMemory()
	gs := goals.New(mem)
	as := attempts.New(mem, nil)
	return NewModel(gs, as, func() time.Time { return fixedNow }), gs, as
}

func TestRenderFooterFormats(t *testing.T) {
	m := &Model{
		list: []model.Goal{{ID: "a"}, {ID: "b"}},
		progress: model.DailyProgress{Goals: map[string]model.GoalProgress{
			"a": {Current: 5, Completed: true},
		}},
	}
	out := m.renderFooter()
	if !containsAll(out, []string{"Done 1/2", "a add", "q quit"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(5, 10, 10); got != "[#####.....]" {
		t.Fatalf("unexpected bar %q", got)
	}
	if got := progressBar(30, 10, 4); got != "[####]" {
		t.Fatalf("expected overflow to clamp, got %q", got)
	}
}

func TestAddGoalThroughInput(t *testing.T) {
	m, gs, as := newTestModel(t)
	if _, err := as.Record(fixedNow, model.Attempt{
		Score:       8,
		SubjectWise: map[string]model.Breakdown{"Physics": {Correct: 8, Total: 12}},
		CreatedAt:   fixedNow.Add(-time.Hour),
	}); err != nil {
		t.Fatalf("record attempt: %v", err)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if m.mode != modeAdd {
		t.Fatalf("expected add mode")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q 10")})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.errMsg != "" {
		t.Fatalf("unexpected error: %s", m.errMsg)
	}
	list := gs.LoadGoals()
	if len(list) != 1 || list[0].Target != 10 || list[0].Type != model.GoalQuestions {
		t.Fatalf("unexpected goals: %+v", list)
	}
	if !m.progress.Goals[list[0].ID].Completed {
		t.Fatalf("expected goal seeded from today's 12 questions to be complete")
	}
	if !strings.Contains(m.View(), "12/10") {
		t.Fatalf("expected progress in view:\n%s", m.View())
	}
}

func TestSyncCelebratesOnce(t *testing.T) {
	m, gs, as := newTestModel(t)
	if _, err := gs.AddGoal(fixedNow, model.GoalQuestions, 5, model.Counters{}); err != nil {
		t.Fatalf("add goal: %v", err)
	}
	if _, err := as.Record(fixedNow, model.Attempt{
		SubjectWise: map[string]model.Breakdown{"Biology": {Correct: 2, Total: 6}},
	}); err != nil {
		t.Fatalf("record attempt: %v", err)
	}
	m.Update(syncMsg(fixedNow))
	if !strings.Contains(m.notice, "Goal complete") {
		t.Fatalf("expected celebration notice, got %q", m.notice)
	}
	m.notice = ""
	m.Update(syncMsg(fixedNow))
	if m.notice != "" {
		t.Fatalf("expected no repeat celebration, got %q", m.notice)
	}
}

func TestResetThenSyncDoesNotCelebrateAgain(t *testing.T) {
	m, gs, as := newTestModel(t)
	g, err := gs.AddGoal(fixedNow, model.GoalQuestions, 10, model.Counters{})
	if err != nil {
		t.Fatalf("add goal: %v", err)
	}
	if _, err := as.Record(fixedNow, model.Attempt{
		SubjectWise: map[string]model.Breakdown{"Math": {Correct: 7, Total: 10}},
	}); err != nil {
		t.Fatalf("record attempt: %v", err)
	}
	m.Update(syncMsg(fixedNow))
	if !strings.Contains(m.notice, "Goal complete") {
		t.Fatalf("expected celebration notice, got %q", m.notice)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.errMsg != "" {
		t.Fatalf("unexpected error: %s", m.errMsg)
	}
	m.notice = ""
	m.Update(syncMsg(fixedNow))
	if m.notice != "" {
		t.Fatalf("expected no second celebration after reset, got %q", m.notice)
	}
	if got := m.progress.Goals[g.ID]; got.Current != 0 || got.Completed {
		t.Fatalf("expected reset progress to hold after sync, got %+v", got)
	}
}

func TestFooterShowsLastSave(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "prepdesk.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	gs := goals.New(st)
	if _, err := gs.AddGoal(fixedNow, model.GoalTime, 30, model.Counters{}); err != nil {
		t.Fatalf("add goal: %v", err)
	}
	m := NewModel(gs, attempts.New(st, nil), func() time.Time { return fixedNow })
	if !strings.Contains(m.renderFooter(), "Saved ") {
		t.Fatalf("expected last save time in footer: %s", m.renderFooter())
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m, gs, _ := newTestModel(t)
	if _, err := gs.AddGoal(fixedNow, model.GoalTime, 30, model.Counters{}); err != nil {
		t.Fatalf("add goal: %v", err)
	}
	m.sync()
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if len(gs.LoadGoals()) != 1 {
		t.Fatalf("expected goal to survive a declined delete")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if len(gs.LoadGoals()) != 0 {
		t.Fatalf("expected goal to be deleted")
	}
}

func TestParseGoalInput(t *testing.T) {
	typ, target, err := ParseGoalInput(" Time 45 ")
	if err != nil || typ != model.GoalTime || target != 45 {
		t.Fatalf("unexpected parse: %v %d %v", typ, target, err)
	}
	for _, bad := range []string{"", "pages 4", "q four", "q 1 2"} {
		if _, _, err := ParseGoalInput(bad); err == nil {
			t.Fatalf("expected %q to fail", bad)
		}
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
