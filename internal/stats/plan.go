package stats

import (
	"sort"
	"strings"

	"github.com/verte-zerg/prepdesk/internal/model"
)

// Default daily minutes for subjects missing from the strategy table.
const (
	defaultCriticalMinutes    = 45
	defaultHighMinutes        = 30
	defaultMaintenanceMinutes = 15
	minMaintenanceMinutes     = 15
)

// StrategyTable maps subject names to study strategies.
type StrategyTable map[string]model.Strategy

// DefaultStrategies is the built-in strategy table.
func DefaultStrategies() StrategyTable {
	return StrategyTable{
		"Mathematics": {
			DailyTime: 60,
			Resources: []string{"NCERT exemplar", "Previous year papers"},
			Topics:    []string{"Algebra", "Calculus", "Coordinate geometry"},
			Tips:      []string{"Time every practice set", "Keep a formula sheet"},
		},
		"Physics": {
			DailyTime: 50,
			Resources: []string{"HC Verma", "Previous year papers"},
			Topics:    []string{"Mechanics", "Electrostatics", "Optics"},
			Tips:      []string{"Derive before memorising", "Draw free-body diagrams"},
		},
		"Chemistry": {
			DailyTime: 45,
			Resources: []string{"NCERT textbooks", "Reaction mechanism notes"},
			Topics:    []string{"Organic reactions", "Chemical bonding", "Equilibrium"},
			Tips:      []string{"Revise named reactions daily"},
		},
		"Biology": {
			DailyTime: 45,
			Resources: []string{"NCERT textbooks"},
			Topics:    []string{"Genetics", "Human physiology", "Ecology"},
			Tips:      []string{"Read NCERT line by line", "Label diagrams from memory"},
		},
		"General Knowledge": {
			DailyTime: 30,
			Resources: []string{"Daily newspaper", "Monthly current affairs digest"},
			Topics:    []string{"Polity", "History", "Geography"},
			Tips:      []string{"Make one-line notes"},
		},
		"Reasoning": {
			DailyTime: 30,
			Resources: []string{"Verbal and non-verbal reasoning workbook"},
			Topics:    []string{"Series", "Coding-decoding", "Puzzles"},
			Tips:      []string{"Practise puzzles against the clock"},
		},
		"English": {
			DailyTime: 30,
			Resources: []string{"Word Power Made Easy", "Editorial reading"},
			Topics:    []string{"Grammar", "Vocabulary", "Comprehension"},
			Tips:      []string{"Learn ten new words a day"},
		},
		"Quantitative Aptitude": {
			DailyTime: 45,
			Resources: []string{"Previous year papers"},
			Topics:    []string{"Arithmetic", "Data interpretation", "Number system"},
			Tips:      []string{"Memorise squares and cubes", "Use approximation"},
		},
	}
}

// Merge returns t overlaid with other; entries in other win.
func (t StrategyTable) Merge(other StrategyTable) StrategyTable {
	out := make(StrategyTable, len(t)+len(other))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range other {
		if existing, ok := out.lookup(k); ok {
			delete(out, existing)
		}
		out[k] = v
	}
	return out
}

// Lookup finds the strategy for subject, ignoring case and surrounding space.
func (t StrategyTable) Lookup(subject string) (model.Strategy, bool) {
	key, ok := t.lookup(subject)
	if !ok {
		return model.Strategy{}, false
	}
	return t[key], true
}

func (t StrategyTable) lookup(subject string) (string, bool) {
	if _, ok := t[subject]; ok {
		return subject, true
	}
	norm := normalizeSubject(subject)
	for key := range t {
		if normalizeSubject(key) == norm {
			return key, true
		}
	}
	return "", false
}

func normalizeSubject(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// UnmatchedSubjects lists the subjects that have no strategy entry and will
// get default plan times.
func UnmatchedSubjects(aggs []model.SubjectAggregate, table StrategyTable) []string {
	var out []string
	for _, agg := range aggs {
		if _, ok := table.Lookup(agg.Subject); !ok {
			out = append(out, agg.Subject)
		}
	}
	sort.Strings(out)
	return out
}

// BuildStudyPlan turns a classification into prioritized plan items: weak
// subjects are critical with extra time, moderate subjects are high priority
// and strong subjects get maintenance time.
func BuildStudyPlan(c model.Classification, table StrategyTable) []model.PlanItem {
	plan := make([]model.PlanItem, 0, len(c.Weak)+len(c.Moderate)+len(c.Strong))
	for _, agg := range c.Weak {
		plan = append(plan, planItem(agg, model.PriorityCritical, table))
	}
	for _, agg := range c.Moderate {
		plan = append(plan, planItem(agg, model.PriorityHigh, table))
	}
	for _, agg := range c.Strong {
		plan = append(plan, planItem(agg, model.PriorityMaintenance, table))
	}
	sort.SliceStable(plan, func(i, j int) bool {
		return plan[i].Priority.Rank() < plan[j].Priority.Rank()
	})
	return plan
}

func planItem(agg model.SubjectAggregate, p model.Priority, table StrategyTable) model.PlanItem {
	item := model.PlanItem{
		Subject:  agg.Subject,
		Priority: p,
		Accuracy: agg.Accuracy,
	}
	strategy, ok := table.Lookup(agg.Subject)
	if !ok {
		item.Minutes = defaultMinutes(p)
		return item
	}
	item.Known = true
	item.Resources = strategy.Resources
	item.Topics = strategy.Topics
	item.Tips = strategy.Tips
	switch p {
	case model.PriorityCritical:
		item.Minutes = strategy.DailyTime + 15
	case model.PriorityMaintenance:
		item.Minutes = strategy.DailyTime - 15
		if item.Minutes < minMaintenanceMinutes {
			item.Minutes = minMaintenanceMinutes
		}
	default:
		item.Minutes = strategy.DailyTime
	}
	return item
}

func defaultMinutes(p model.Priority) int {
	switch p {
	case model.PriorityCritical:
		return defaultCriticalMinutes
	case model.PriorityMaintenance:
		return defaultMaintenanceMinutes
	default:
		return defaultHighMinutes
	}
}

// TotalDailyMinutes sums the time assigned across the plan.
func TotalDailyMinutes(plan []model.PlanItem) int {
	total := 0
	for _, item := range plan {
		total += item.Minutes
	}
	return total
}
