// Package progress reconciles live practice counters against daily goals.
package progress

import (
	"time"

	"github.com/verte-zerg/prepdesk/internal/goals"
	"github.com/verte-zerg/prepdesk/internal/model"
)

// Reconcile updates each goal's entry from the live counter of its type,
// less the record's reset baseline, and returns the goals whose completion
// flag went from false to true. A goal is reported at most once per day, even
// when a reset lets it complete again. Entries for goals that no longer exist
// are dropped. The input record is not modified.
func Reconcile(list []model.Goal, p model.DailyProgress, live model.Counters) (model.DailyProgress, []model.Goal) {
	updated := model.DailyProgress{
		Date:     p.Date,
		Goals:    make(map[string]model.GoalProgress, len(list)),
		Baseline: p.Baseline,
	}
	counted := p.Since(live)
	var newlyCompleted []model.Goal
	for _, g := range list {
		prev := p.Goals[g.ID]
		value := counted.Value(g.Type)
		entry := model.GoalProgress{Current: value, Completed: value >= g.Target}
		notified := p.WasNotified(g.ID)
		if entry.Completed && !prev.Completed && !notified {
			newlyCompleted = append(newlyCompleted, g)
			notified = true
		}
		if notified {
			updated.Notified = append(updated.Notified, g.ID)
		}
		updated.Goals[g.ID] = entry
	}
	return updated, newlyCompleted
}

// Changed reports whether two progress records differ.
func Changed(a, b model.DailyProgress) bool {
	if a.Date != b.Date || a.Baseline != b.Baseline || len(a.Goals) != len(b.Goals) {
		return true
	}
	if len(a.Notified) != len(b.Notified) {
		return true
	}
	for i := range a.Notified {
		if a.Notified[i] != b.Notified[i] {
			return true
		}
	}
	for id, entry := range a.Goals {
		other, ok := b.Goals[id]
		if !ok || other != entry {
			return true
		}
	}
	return false
}

// Notifier is told about each goal completed today, once.
type Notifier interface {
	GoalCompleted(g model.Goal, entry model.GoalProgress)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(g model.Goal, entry model.GoalProgress)

// GoalCompleted implements Notifier.
func (f NotifierFunc) GoalCompleted(g model.Goal, entry model.GoalProgress) {
	f(g, entry)
}

// Tracker ties the goal store to reconciliation and notification.
type Tracker struct {
	goals    *goals.Store
	notifier Notifier
}

// NewTracker returns a Tracker. notifier may be nil.
func NewTracker(gs *goals.Store, notifier Notifier) *Tracker {
	return &Tracker{goals: gs, notifier: notifier}
}

// Result is the outcome of a Sync.
type Result struct {
	Goals          []model.Goal
	Progress       model.DailyProgress
	NewlyCompleted []model.Goal
}

// Sync loads today's goals and progress (rolling over if needed), applies
// live, persists the record when it changed and notifies newly completed
// goals. Nothing is notified when the progress record cannot be read or
// written.
func (t *Tracker) Sync(now time.Time, live model.Counters) (Result, error) {
	list := t.goals.LoadGoals()
	current, err := t.goals.Progress(now)
	if err != nil {
		return Result{Goals: list, Progress: current}, err
	}
	updated, newlyCompleted := Reconcile(list, current, live)
	if Changed(current, updated) {
		if err := t.goals.SaveProgress(updated); err != nil {
			return Result{Goals: list, Progress: current}, err
		}
	}
	if t.notifier != nil {
		for _, g := range newlyCompleted {
			t.notifier.GoalCompleted(g, updated.Goals[g.ID])
		}
	}
	return Result{Goals: list, Progress: updated, NewlyCompleted: newlyCompleted}, nil
}
