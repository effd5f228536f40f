package stats

import (
	"math"
	"sort"

	"github.com/verte-zerg/prepdesk/internal/model"
)

// Accuracy returns round(100*correct/total), or 0 when total is 0.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// AggregateBySubject folds every attempt's subject breakdown into one entry
// per subject. Breakdowns with a zero total contribute nothing. The result
// is ordered by subject name; use SortWeakestFirst or SortByVolume for the
// recommendation and display orderings.
func AggregateBySubject(list []model.Attempt) []model.SubjectAggregate {
	bySubject := map[string]*model.SubjectAggregate{}
	for _, a := range list {
		for subject, data := range a.SubjectWise {
			if data.Total <= 0 {
				continue
			}
			agg, ok := bySubject[subject]
			if !ok {
				agg = &model.SubjectAggregate{Subject: subject}
				bySubject[subject] = agg
			}
			agg.Correct += data.Correct
			agg.Total += data.Total
			agg.AttemptCount++
		}
	}
	out := make([]model.SubjectAggregate, 0, len(bySubject))
	for _, agg := range bySubject {
		agg.Accuracy = Accuracy(agg.Correct, agg.Total)
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subject < out[j].Subject })
	return out
}

// AggregateByDifficulty folds difficulty breakdowns. Levels are returned in
// easy, medium, hard order followed by any unknown levels by name; levels
// with no questions are omitted.
func AggregateByDifficulty(list []model.Attempt) []model.DifficultyAggregate {
	byLevel := map[string]*model.DifficultyAggregate{}
	for _, a := range list {
		for level, data := range a.DifficultyWise {
			if data.Total <= 0 {
				continue
			}
			agg, ok := byLevel[level]
			if !ok {
				agg = &model.DifficultyAggregate{Level: level}
				byLevel[level] = agg
			}
			agg.Correct += data.Correct
			agg.Total += data.Total
		}
	}
	out := make([]model.DifficultyAggregate, 0, len(byLevel))
	for _, level := range model.Difficulties {
		if agg, ok := byLevel[level]; ok {
			agg.Accuracy = Accuracy(agg.Correct, agg.Total)
			out = append(out, *agg)
			delete(byLevel, level)
		}
	}
	rest := make([]string, 0, len(byLevel))
	for level := range byLevel {
		rest = append(rest, level)
	}
	sort.Strings(rest)
	for _, level := range rest {
		agg := byLevel[level]
		agg.Accuracy = Accuracy(agg.Correct, agg.Total)
		out = append(out, *agg)
	}
	return out
}

// SortWeakestFirst returns a copy ordered by accuracy ascending.
func SortWeakestFirst(aggs []model.SubjectAggregate) []model.SubjectAggregate {
	out := append([]model.SubjectAggregate(nil), aggs...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Accuracy == out[j].Accuracy {
			return out[i].Subject < out[j].Subject
		}
		return out[i].Accuracy < out[j].Accuracy
	})
	return out
}

// SortByVolume returns a copy ordered by questions answered, most first.
func SortByVolume(aggs []model.SubjectAggregate) []model.SubjectAggregate {
	out := append([]model.SubjectAggregate(nil), aggs...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total == out[j].Total {
			return out[i].Subject < out[j].Subject
		}
		return out[i].Total > out[j].Total
	})
	return out
}

// Classify buckets subjects answered at least minSample times: weak below
// 50% accuracy, moderate from 50% up to 70%, strong from 70%. Subjects with
// fewer questions are left out entirely. Each bucket is weakest first.
func Classify(aggs []model.SubjectAggregate, minSample int) model.Classification {
	var c model.Classification
	for _, agg := range SortWeakestFirst(aggs) {
		if agg.Total < minSample {
			continue
		}
		switch {
		case agg.Accuracy < 50:
			c.Weak = append(c.Weak, agg)
		case agg.Accuracy < 70:
			c.Moderate = append(c.Moderate, agg)
		default:
			c.Strong = append(c.Strong, agg)
		}
	}
	return c
}
