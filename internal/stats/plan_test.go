package stats

import (
	"testing"

	"github.com/verte-zerg/prepdesk/internal/model"
)

func TestBuildStudyPlan(t *testing.T) {
	table := StrategyTable{
		"Physics": {DailyTime: 50, Topics: []string{"Optics"}},
		"Biology": {DailyTime: 20},
	}
	c := model.Classification{
		Weak:     []model.SubjectAggregate{{Subject: "Physics", Accuracy: 30}},
		Moderate: []model.SubjectAggregate{{Subject: "History", Accuracy: 60}},
		Strong: []model.SubjectAggregate{
			{Subject: "Biology", Accuracy: 90},
			{Subject: "Art", Accuracy: 95},
		},
	}
	plan := BuildStudyPlan(c, table)
	if len(plan) != 4 {
		t.Fatalf("expected 4 items, got %d", len(plan))
	}
	want := []struct {
		subject  string
		priority model.Priority
		minutes  int
		known    bool
	}{
		{"Physics", model.PriorityCritical, 65, true},
		{"History", model.PriorityHigh, 30, false},
		{"Biology", model.PriorityMaintenance, 15, true},
		{"Art", model.PriorityMaintenance, 15, false},
	}
	for i, w := range want {
		got := plan[i]
		if got.Subject != w.subject || got.Priority != w.priority || got.Minutes != w.minutes || got.Known != w.known {
			t.Fatalf("item %d: expected %+v, got %+v", i, w, got)
		}
	}
	if len(plan[0].Topics) != 1 || plan[1].Topics != nil {
		t.Fatalf("expected strategy detail only for known subjects")
	}
	if total := TotalDailyMinutes(plan); total != 125 {
		t.Fatalf("expected 125 minutes, got %d", total)
	}
}

func TestBuildStudyPlanDefaultsForUnknownWeakSubject(t *testing.T) {
	plan := BuildStudyPlan(model.Classification{
		Weak: []model.SubjectAggregate{{Subject: "Geology"}},
	}, StrategyTable{})
	if len(plan) != 1 || plan[0].Minutes != 45 {
		t.Fatalf("expected default critical time, got %+v", plan)
	}
}

func TestStrategyLookupIgnoresCaseAndSpacing(t *testing.T) {
	table := DefaultStrategies()
	if _, ok := table.Lookup("  general   knowledge "); !ok {
		t.Fatalf("expected normalized lookup to match")
	}
	merged := table.Merge(StrategyTable{"physics": {DailyTime: 5}})
	s, ok := merged.Lookup("Physics")
	if !ok || s.DailyTime != 5 {
		t.Fatalf("expected override to replace built-in entry, got %+v", s)
	}
	if _, ok := merged["Physics"]; ok {
		t.Fatalf("expected built-in key to be replaced")
	}
	unmatched := UnmatchedSubjects([]model.SubjectAggregate{{Subject: "Phsyics"}, {Subject: "Physics"}}, table)
	if len(unmatched) != 1 || unmatched[0] != "Phsyics" {
		t.Fatalf("unexpected unmatched subjects: %v", unmatched)
	}
}
