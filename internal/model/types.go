// Package model defines shared data structures.
package model

import "time"

// DateLayout is the calendar-day format used for daily progress records.
const DateLayout = "2006-01-02"

// GoalType selects which live counter a goal is measured against.
type GoalType string

// Goal types.
const (
	GoalTime      GoalType = "time"
	GoalQuestions GoalType = "questions"
)

// Valid reports whether t is a known goal type.
func (t GoalType) Valid() bool {
	return t == GoalTime || t == GoalQuestions
}

// Difficulty levels recorded per attempt.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Difficulties lists difficulty levels in display order.
var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Breakdown counts correct answers out of a total.
type Breakdown struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Attempt is one completed mock test. Score is the number of correct
// answers and TimeTaken is in seconds.
type Attempt struct {
	ID             string               `json:"id"`
	Score          int                  `json:"score" validate:"gte=0,ltefield=TotalQuestions"`
	TotalQuestions int                  `json:"totalQuestions" validate:"gte=0"`
	TimeTaken      int                  `json:"timeTaken" validate:"gte=0"`
	SubjectWise    map[string]Breakdown `json:"subjectWise" validate:"dive,keys,required,endkeys"`
	DifficultyWise map[string]Breakdown `json:"difficultyWise" validate:"dive,keys,oneof=easy medium hard,endkeys"`
	CreatedAt      time.Time            `json:"createdAt"`
}

// Goal is a user-defined daily target.
type Goal struct {
	ID              string    `json:"id"`
	Type            GoalType  `json:"type"`
	Target          int       `json:"target"`
	Label           string    `json:"label"`
	LabelTranslated string    `json:"labelTranslated"`
	CreatedAt       time.Time `json:"createdAt"`
}

// GoalProgress is the state of one goal for the current day.
type GoalProgress struct {
	Current   int  `json:"current"`
	Completed bool `json:"completed"`
}

// DailyProgress holds per-goal progress for a single calendar day.
// Baseline is the live counters at the last manual reset of the day and
// Notified lists goals whose completion was already announced that day.
type DailyProgress struct {
	Date     string                  `json:"date"`
	Goals    map[string]GoalProgress `json:"goals"`
	Baseline Counters                `json:"baseline"`
	Notified []string                `json:"notified,omitempty"`
}

// Since returns live minus the reset baseline, floored at zero.
func (p DailyProgress) Since(live Counters) Counters {
	return Counters{
		Questions: max(0, live.Questions-p.Baseline.Questions),
		Minutes:   max(0, live.Minutes-p.Baseline.Minutes),
	}
}

// WasNotified reports whether goal id was already announced today.
func (p DailyProgress) WasNotified(id string) bool {
	for _, n := range p.Notified {
		if n == id {
			return true
		}
	}
	return false
}

// Counters are the live values goals are measured against.
type Counters struct {
	Questions int `json:"questions"`
	Minutes   int `json:"minutes"`
}

// Value returns the counter tracked by goal type t.
func (c Counters) Value(t GoalType) int {
	if t == GoalTime {
		return c.Minutes
	}
	return c.Questions
}

// SubjectAggregate folds every attempt for one subject.
type SubjectAggregate struct {
	Subject      string
	Correct      int
	Total        int
	Accuracy     int
	AttemptCount int
}

// DifficultyAggregate folds every attempt for one difficulty level.
type DifficultyAggregate struct {
	Level    string
	Correct  int
	Total    int
	Accuracy int
}

// Classification buckets subjects with enough data by accuracy.
type Classification struct {
	Weak     []SubjectAggregate
	Moderate []SubjectAggregate
	Strong   []SubjectAggregate
}

// Priority ranks study plan items.
type Priority string

// Plan priorities, highest first.
const (
	PriorityCritical    Priority = "critical"
	PriorityHigh        Priority = "high"
	PriorityMedium      Priority = "medium"
	PriorityMaintenance Priority = "maintenance"
)

// Rank orders priorities; lower is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// Strategy is the static study advice for a subject.
type Strategy struct {
	DailyTime int      `toml:"daily-time"`
	Resources []string `toml:"resources"`
	Topics    []string `toml:"topics"`
	Tips      []string `toml:"tips"`
}

// PlanItem is one subject in the daily study plan.
type PlanItem struct {
	Subject   string
	Priority  Priority
	Accuracy  int
	Minutes   int
	Resources []string
	Topics    []string
	Tips      []string
	Known     bool
}

// AnalyticsConfig defines filters and options for analytics output.
type AnalyticsConfig struct {
	Since       *time.Time
	Last        int
	MinSample   int
	CurveWindow int
}
