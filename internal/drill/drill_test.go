package drill

import (
	"testing"

	"github.com/verte-zerg/prepdesk/internal/model"
)

func TestComposeAssignsEveryQuestion(t *testing.T) {
	aggs := []model.SubjectAggregate{
		{Subject: "Physics", Accuracy: 30},
		{Subject: "Biology", Accuracy: 90},
	}
	mix := NewSeeded(1).Compose(aggs, 25, 2)
	total := 0
	for _, a := range mix {
		total += a.Questions
	}
	if total != 25 {
		t.Fatalf("expected 25 questions, got %d", total)
	}
}

func TestComposeFavorsWeakSubjects(t *testing.T) {
	aggs := []model.SubjectAggregate{
		{Subject: "Weak", Accuracy: 0},
		{Subject: "Strong", Accuracy: 100},
	}
	mix := NewSeeded(42).Compose(aggs, 2000, 4)
	if len(mix) != 2 || mix[0].Subject != "Weak" {
		t.Fatalf("expected weak subject to lead, got %+v", mix)
	}
	// Expected split is 5:1.
	if mix[0].Questions < 3*mix[1].Questions {
		t.Fatalf("expected strong bias toward weak subject, got %+v", mix)
	}
}

func TestComposeEmpty(t *testing.T) {
	if mix := New().Compose(nil, 10, 1); mix != nil {
		t.Fatalf("expected nil mix, got %+v", mix)
	}
}

func TestWeight(t *testing.T) {
	if w := Weight(model.SubjectAggregate{Accuracy: 50}, 2); w != 2 {
		t.Fatalf("expected weight 2, got %.2f", w)
	}
	if w := Weight(model.SubjectAggregate{Accuracy: 100}, 5); w != 1 {
		t.Fatalf("expected weight 1, got %.2f", w)
	}
}
