// Package attempts persists completed mock-test attempts.
package attempts

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/prepdesk/internal/model"
	"github.com/verte-zerg/prepdesk/internal/store"
	"github.com/verte-zerg/prepdesk/internal/validate"
)

// Store keeps the attempt history. Attempts are never modified once recorded.
type Store struct {
	st   store.Storage
	warn func(format string, args ...any)
}

// New returns a Store over st. warn may be nil.
func New(st store.Storage, warn func(format string, args ...any)) *Store {
	if warn == nil {
		warn = func(string, ...any) {}
	}
	return &Store{st: st, warn: warn}
}

// Load returns every recorded attempt, oldest first. Missing or unreadable
// history yields an empty list.
func (s *Store) Load() []model.Attempt {
	var list []model.Attempt
	if err := store.ReadJSON(s.st, store.KeyAttempts, &list); err != nil {
		if !errors.Is(err, store.ErrMissing) {
			s.warn("ignoring stored attempts: %v\n", err)
		}
		return []model.Attempt{}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

// Record validates a and appends it to the history. A missing id or
// timestamp is filled in; TotalQuestions defaults to the subject totals.
func (s *Store) Record(now time.Time, a model.Attempt) (model.Attempt, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.TotalQuestions == 0 {
		for _, b := range a.SubjectWise {
			a.TotalQuestions += b.Total
		}
	}
	if err := validate.Struct(a); err != nil {
		return model.Attempt{}, err
	}
	list := append(s.Load(), a)
	if err := store.WriteJSON(s.st, store.KeyAttempts, list); err != nil {
		return model.Attempt{}, err
	}
	return a, nil
}

// Clear removes the whole history.
func (s *Store) Clear() error {
	return store.Clear(s.st, store.KeyAttempts)
}

// Filter keeps attempts created at or after since (when set) and then the
// last n of those (when n > 0).
func Filter(list []model.Attempt, since *time.Time, last int) []model.Attempt {
	out := make([]model.Attempt, 0, len(list))
	for _, a := range list {
		if since != nil && a.CreatedAt.Before(*since) {
			continue
		}
		out = append(out, a)
	}
	if last > 0 && len(out) > last {
		out = out[len(out)-last:]
	}
	return out
}

// TodayCounters derives live goal counters from attempts made on now's
// calendar day.
func TodayCounters(list []model.Attempt, now time.Time) model.Counters {
	today := now.Format(model.DateLayout)
	var c model.Counters
	seconds := 0
	for _, a := range list {
		if a.CreatedAt.In(now.Location()).Format(model.DateLayout) != today {
			continue
		}
		c.Questions += a.TotalQuestions
		seconds += a.TimeTaken
	}
	c.Minutes = seconds / 60
	return c
}
