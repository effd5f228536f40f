package stats

import (
	"testing"

	"github.com/verte-zerg/prepdesk/internal/model"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %.1f, got %.1f", i, want[i], got[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 100}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{5, 5, 5}); len(got) != 3 {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
}

func TestAttemptScore(t *testing.T) {
	if got := AttemptScore(model.Attempt{Score: 3, TotalQuestions: 4}); got != 75 {
		t.Fatalf("expected 75, got %.1f", got)
	}
	if got := AttemptScore(model.Attempt{}); got != 0 {
		t.Fatalf("expected 0 for empty attempt, got %.1f", got)
	}
}
