// Package goals persists daily practice goals and their per-day progress.
package goals

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/prepdesk/internal/model"
	"github.com/verte-zerg/prepdesk/internal/store"
)

// Store provides CRUD over goals and today's progress record. Every mutation
// rewrites the whole goal list or progress record; the last write wins.
type Store struct {
	st    store.Storage
	lang  string
	warn  func(format string, args ...any)
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithLang selects the language of translated goal labels.
func WithLang(lang string) Option {
	return func(s *Store) { s.lang = lang }
}

// WithWarn sets the hook that receives swallowed read errors.
func WithWarn(warn func(format string, args ...any)) Option {
	return func(s *Store) { s.warn = warn }
}

// New returns a Store over st.
func New(st store.Storage, opts ...Option) *Store {
	s := &Store{
		st:    st,
		lang:  "en",
		warn:  func(string, ...any) {},
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Day formats the calendar day of now in now's location.
func Day(now time.Time) string {
	return now.Format(model.DateLayout)
}

// LoadGoals returns the persisted goals. Missing or unreadable data yields an
// empty list.
func (s *Store) LoadGoals() []model.Goal {
	var list []model.Goal
	if err := store.ReadJSON(s.st, store.KeyGoals, &list); err != nil {
		if !errors.Is(err, store.ErrMissing) {
			s.warn("ignoring stored goals: %v\n", err)
		}
		return []model.Goal{}
	}
	if list == nil {
		return []model.Goal{}
	}
	return list
}

// LoadOrInitProgress returns today's progress and never fails. Read errors
// are passed to the warn hook and yield an empty record for today; see
// Progress for when that record is persisted.
func (s *Store) LoadOrInitProgress(now time.Time) model.DailyProgress {
	p, err := s.Progress(now)
	if err != nil {
		s.warn("ignoring stored progress: %v\n", err)
		return emptyProgress(now)
	}
	return p
}

// Progress returns today's progress. A missing record, a record from another
// day or one that cannot be decoded is replaced by an empty record for today
// which is persisted immediately; nothing is carried over from the previous
// day. Any other read error is returned and the stored record is left alone.
func (s *Store) Progress(now time.Time) (model.DailyProgress, error) {
	today := Day(now)
	var p model.DailyProgress
	err := store.ReadJSON(s.st, store.KeyProgress, &p)
	var corrupt *store.CorruptionError
	switch {
	case err == nil && p.Date == today:
		if p.Goals == nil {
			p.Goals = map[string]model.GoalProgress{}
		}
		return p, nil
	case errors.As(err, &corrupt):
		s.warn("ignoring stored progress: %v\n", err)
	case err != nil && !errors.Is(err, store.ErrMissing):
		return model.DailyProgress{}, err
	}
	fresh := emptyProgress(now)
	if werr := s.SaveProgress(fresh); werr != nil {
		s.warn("failed to persist progress for %s: %v\n", today, werr)
	}
	return fresh, nil
}

func emptyProgress(now time.Time) model.DailyProgress {
	return model.DailyProgress{Date: Day(now), Goals: map[string]model.GoalProgress{}}
}

// LastSaved reports when today's progress record was last written. It is
// false for storages that do not keep write times.
func (s *Store) LastSaved() (time.Time, bool) {
	stamper, ok := s.st.(store.Stamper)
	if !ok {
		return time.Time{}, false
	}
	at, ok, err := stamper.UpdatedAt(store.KeyProgress)
	if err != nil {
		s.warn("failed to read progress timestamp: %v\n", err)
		return time.Time{}, false
	}
	return at, ok
}

// SaveProgress persists p as the current progress record.
func (s *Store) SaveProgress(p model.DailyProgress) error {
	return store.WriteJSON(s.st, store.KeyProgress, p)
}

// AddGoal creates a goal and seeds today's entry from the live counter of its
// type, less any reset baseline, so a goal added mid-day starts from today's
// progress.
func (s *Store) AddGoal(now time.Time, t model.GoalType, target int, live model.Counters) (model.Goal, error) {
	if !t.Valid() {
		return model.Goal{}, &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown goal type %q", t)}
	}
	if err := checkTarget(target); err != nil {
		return model.Goal{}, err
	}

	label, translated := Labels(t, target, s.lang)
	goal := model.Goal{
		ID:              s.newID(),
		Type:            t,
		Target:          target,
		Label:           label,
		LabelTranslated: translated,
		CreatedAt:       now,
	}

	list := append(s.LoadGoals(), goal)
	if err := store.WriteJSON(s.st, store.KeyGoals, list); err != nil {
		return model.Goal{}, err
	}

	progress, err := s.Progress(now)
	if err != nil {
		return model.Goal{}, fmt.Errorf("goal saved but today's progress was not: %w", err)
	}
	current := progress.Since(live).Value(t)
	progress.Goals[goal.ID] = model.GoalProgress{
		Current:   current,
		Completed: current >= target,
	}
	if err := s.SaveProgress(progress); err != nil {
		return model.Goal{}, fmt.Errorf("goal saved but today's progress was not: %w", err)
	}
	return goal, nil
}

// UpdateGoal changes the target of goal id and refreshes its labels and
// today's completion flag.
func (s *Store) UpdateGoal(now time.Time, id string, target int) (model.Goal, error) {
	if err := checkTarget(target); err != nil {
		return model.Goal{}, err
	}
	list := s.LoadGoals()
	idx := indexOf(list, id)
	if idx < 0 {
		return model.Goal{}, &NotFoundError{ID: id}
	}

	goal := list[idx]
	goal.Target = target
	goal.Label, goal.LabelTranslated = Labels(goal.Type, target, s.lang)
	list[idx] = goal
	if err := store.WriteJSON(s.st, store.KeyGoals, list); err != nil {
		return model.Goal{}, err
	}

	progress, err := s.Progress(now)
	if err != nil {
		return model.Goal{}, fmt.Errorf("goal saved but today's progress was not: %w", err)
	}
	if entry, ok := progress.Goals[id]; ok {
		entry.Completed = entry.Current >= target
		progress.Goals[id] = entry
		if err := s.SaveProgress(progress); err != nil {
			return model.Goal{}, fmt.Errorf("goal saved but today's progress was not: %w", err)
		}
	}
	return goal, nil
}

// DeleteGoal removes goal id from the goal list and from today's progress.
func (s *Store) DeleteGoal(now time.Time, id string) error {
	list := s.LoadGoals()
	idx := indexOf(list, id)
	if idx < 0 {
		return &NotFoundError{ID: id}
	}
	list = append(list[:idx], list[idx+1:]...)
	if err := store.WriteJSON(s.st, store.KeyGoals, list); err != nil {
		return err
	}

	progress, err := s.Progress(now)
	if err != nil {
		return err
	}
	if _, ok := progress.Goals[id]; !ok {
		return nil
	}
	delete(progress.Goals, id)
	return s.SaveProgress(progress)
}

// ResetDailyProgress zeroes today's progress for every goal. live becomes
// the day's baseline, so later syncs only count practice done after the
// reset. Goals already announced today stay announced.
func (s *Store) ResetDailyProgress(now time.Time, live model.Counters) (model.DailyProgress, error) {
	prev, err := s.Progress(now)
	if err != nil {
		return model.DailyProgress{}, err
	}
	list := s.LoadGoals()
	progress := model.DailyProgress{
		Date:     prev.Date,
		Goals:    make(map[string]model.GoalProgress, len(list)),
		Baseline: live,
		Notified: prev.Notified,
	}
	for _, g := range list {
		progress.Goals[g.ID] = model.GoalProgress{}
	}
	if err := s.SaveProgress(progress); err != nil {
		return model.DailyProgress{}, err
	}
	return progress, nil
}

// FindGoal resolves a full id or a unique id prefix.
func (s *Store) FindGoal(ref string) (model.Goal, error) {
	var found []model.Goal
	for _, g := range s.LoadGoals() {
		if g.ID == ref {
			return g, nil
		}
		if ref != "" && len(ref) < len(g.ID) && g.ID[:len(ref)] == ref {
			found = append(found, g)
		}
	}
	if len(found) == 1 {
		return found[0], nil
	}
	if len(found) > 1 {
		return model.Goal{}, fmt.Errorf("goal id %q is ambiguous", ref)
	}
	return model.Goal{}, &NotFoundError{ID: ref}
}

func checkTarget(target int) error {
	if target <= 0 {
		return &ValidationError{Field: "target", Reason: "must be a positive integer"}
	}
	return nil
}

func indexOf(list []model.Goal, id string) int {
	for i, g := range list {
		if g.ID == id {
			return i
		}
	}
	return -1
}
