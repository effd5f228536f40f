package attempts

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/prepdesk/internal/model"
	"github.com/verte-zerg/prepdesk/internal/store"
)

func mathAttempt(correct, total int, at time.Time) model.Attempt {
	return model.Attempt{
		Score:       correct,
		TimeTaken:   600,
		SubjectWise: map[string]model.Breakdown{"Math": {Correct: correct, Total: total}},
		CreatedAt:   at,
	}
}

func TestRecordAndLoad(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "prepdesk.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	s := New(st, nil)
	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	second, err := s.Record(base, mathAttempt(4, 5, base.Add(time.Hour)))
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	first, err := s.Record(base, mathAttempt(3, 5, time.Time{}))
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if first.ID == "" || first.TotalQuestions != 5 {
		t.Fatalf("expected id and total to be filled, got %+v", first)
	}

	list := s.Load()
	if len(list) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(list))
	}
	if list[0].ID != first.ID || list[1].ID != second.ID {
		t.Fatalf("expected chronological order, got %s then %s", list[0].ID, list[1].ID)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(s.Load()) != 0 {
		t.Fatalf("expected empty history after clear")
	}
}

func TestRecordRejectsInvalid(t *testing.T) {
	s := New(store.NewMemory(), nil)
	if _, err := s.Record(time.Now(), mathAttempt(6, 5, time.Time{})); err == nil {
		t.Fatalf("expected correct > total to be rejected")
	}
	if len(s.Load()) != 0 {
		t.Fatalf("invalid attempt was stored")
	}
}

func TestRecordRejectsBadBreakdownValues(t *testing.T) {
	s := New(store.NewMemory(), nil)
	a := model.Attempt{
		Score:          9,
		TotalQuestions: 10,
		SubjectWise: map[string]model.Breakdown{
			"Math":    {Correct: 9, Total: 5},
			"Physics": {Correct: -4, Total: 5},
		},
		DifficultyWise: map[string]model.Breakdown{"easy": {Correct: 12, Total: 3}},
	}
	if _, err := s.Record(time.Now(), a); err == nil {
		t.Fatalf("expected inconsistent breakdowns to be rejected")
	}
	if len(s.Load()) != 0 {
		t.Fatalf("invalid attempt was stored")
	}
}

func TestFilter(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var list []model.Attempt
	for i := 0; i < 5; i++ {
		list = append(list, mathAttempt(1, 2, base.AddDate(0, 0, i)))
	}
	since := base.AddDate(0, 0, 2)
	if got := Filter(list, &since, 0); len(got) != 3 {
		t.Fatalf("expected 3 attempts since day 2, got %d", len(got))
	}
	got := Filter(list, &since, 2)
	if len(got) != 2 || !got[1].CreatedAt.Equal(base.AddDate(0, 0, 4)) {
		t.Fatalf("unexpected last-2 window: %+v", got)
	}
}

func TestTodayCounters(t *testing.T) {
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)
	list := []model.Attempt{
		{TotalQuestions: 30, TimeTaken: 1500, CreatedAt: now.Add(-2 * time.Hour)},
		{TotalQuestions: 20, TimeTaken: 700, CreatedAt: now.Add(-time.Hour)},
		{TotalQuestions: 99, TimeTaken: 9999, CreatedAt: now.AddDate(0, 0, -1)},
	}
	c := TodayCounters(list, now)
	if c.Questions != 50 || c.Minutes != 36 {
		t.Fatalf("unexpected counters: %+v", c)
	}
}
