package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/verte-zerg/prepdesk/internal/model"
)

func TestStructAcceptsValidAttempt(t *testing.T) {
	a := model.Attempt{
		Score:          7,
		TotalQuestions: 10,
		SubjectWise:    map[string]model.Breakdown{"Math": {Correct: 7, Total: 10}},
		DifficultyWise: map[string]model.Breakdown{"easy": {Correct: 7, Total: 10}},
	}
	if err := Struct(a); err != nil {
		t.Fatalf("expected valid attempt, got %v", err)
	}
}

func TestStructRejectsInconsistentCounts(t *testing.T) {
	a := model.Attempt{
		Score:          11,
		TotalQuestions: 10,
		SubjectWise:    map[string]model.Breakdown{"Math": {Correct: 6, Total: 5}},
	}
	err := Struct(a)
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %+v", verr.Fields)
	}
	if !strings.Contains(verr.Error(), "score") {
		t.Fatalf("expected json field name in message: %s", verr.Error())
	}
}

func TestStructRejectsUnknownDifficulty(t *testing.T) {
	a := model.Attempt{
		DifficultyWise: map[string]model.Breakdown{"expert": {Correct: 1, Total: 2}},
	}
	if err := Struct(a); err == nil {
		t.Fatalf("expected unknown difficulty to be rejected")
	}
}

func TestStructChecksEveryBreakdown(t *testing.T) {
	a := model.Attempt{
		Score:          9,
		TotalQuestions: 10,
		SubjectWise: map[string]model.Breakdown{
			"Math":    {Correct: 9, Total: 5},
			"Physics": {Correct: -4, Total: 5},
		},
		DifficultyWise: map[string]model.Breakdown{"easy": {Correct: 12, Total: 3}},
	}
	err := Struct(a)
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := []string{
		"difficultyWise[easy].correct",
		"subjectWise[Math].correct",
		"subjectWise[Physics].correct",
	}
	if len(verr.Fields) != len(want) {
		t.Fatalf("expected %d field errors, got %+v", len(want), verr.Fields)
	}
	for i, field := range want {
		if verr.Fields[i].Field != field {
			t.Fatalf("field %d: expected %q, got %q", i, field, verr.Fields[i].Field)
		}
	}
	if msg := verr.Fields[1].Message; msg != "subjectWise[Math].correct must be less than or equal to total" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestStructRejectsNegativeBreakdownTotal(t *testing.T) {
	a := model.Attempt{
		DifficultyWise: map[string]model.Breakdown{"hard": {Correct: 0, Total: -1}},
	}
	err := Struct(a)
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Fields) != 2 || verr.Fields[1].Field != "difficultyWise[hard].total" {
		t.Fatalf("unexpected field errors: %+v", verr.Fields)
	}
}

func TestComparedFieldUsesJSONName(t *testing.T) {
	err := Struct(model.Attempt{Score: 11, TotalQuestions: 10})
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	msg := verr.Fields[0].Message
	if msg != "score must be less than or equal to totalQuestions" {
		t.Fatalf("unexpected message: %q", msg)
	}
}
