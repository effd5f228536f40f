// Package drill composes practice sets biased toward weak subjects.
package drill

import (
	"math/rand"
	"sort"
	"time"

	"github.com/verte-zerg/prepdesk/internal/model"
)

// Allocation is the number of questions assigned to one subject.
type Allocation struct {
	Subject   string
	Questions int
	Accuracy  int
}

// Composer draws randomized practice mixes.
type Composer struct {
	rnd *rand.Rand
}

// New returns a Composer seeded with the current time.
func New() *Composer {
	return &Composer{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeeded returns a deterministic Composer.
func NewSeeded(seed int64) *Composer {
	return &Composer{rnd: rand.New(rand.NewSource(seed))}
}

// Weight is the draw weight of a subject: 1 plus factor scaled by how far
// its accuracy is below 100%.
func Weight(agg model.SubjectAggregate, factor float64) float64 {
	miss := float64(100-agg.Accuracy) / 100
	if miss < 0 {
		miss = 0
	}
	return 1.0 + miss*factor
}

// Compose draws count questions across subjects. With factor 0 every subject
// is equally likely; larger factors favor low-accuracy subjects. Subjects
// that receive no questions are omitted and the result is ordered by
// question count, largest first.
func (c *Composer) Compose(aggs []model.SubjectAggregate, count int, factor float64) []Allocation {
	if len(aggs) == 0 || count <= 0 {
		return nil
	}
	weights := make([]float64, len(aggs))
	total := 0.0
	for i, agg := range aggs {
		weights[i] = Weight(agg, factor)
		total += weights[i]
	}

	counts := make([]int, len(aggs))
	for i := 0; i < count; i++ {
		r := c.rnd.Float64() * total
		acc := 0.0
		idx := len(weights) - 1
		for j, w := range weights {
			acc += w
			if r < acc {
				idx = j
				break
			}
		}
		counts[idx]++
	}

	out := make([]Allocation, 0, len(aggs))
	for i, agg := range aggs {
		if counts[i] == 0 {
			continue
		}
		out = append(out, Allocation{Subject: agg.Subject, Questions: counts[i], Accuracy: agg.Accuracy})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Questions == out[j].Questions {
			return out[i].Subject < out[j].Subject
		}
		return out[i].Questions > out[j].Questions
	})
	return out
}
