package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/prepdesk/internal/config"
	"github.com/verte-zerg/prepdesk/internal/drill"
	"github.com/verte-zerg/prepdesk/internal/model"
)

func TestParseAttemptsObjectAndArray(t *testing.T) {
	one, err := parseAttempts([]byte(`{"score": 3, "subjectWise": {"Physics": {"correct": 3, "total": 5}}}`))
	if err != nil {
		t.Fatalf("parse object: %v", err)
	}
	if len(one) != 1 || one[0].SubjectWise["Physics"].Total != 5 {
		t.Fatalf("unexpected attempts: %+v", one)
	}
	many, err := parseAttempts([]byte(" [{\"score\": 1}, {\"score\": 2}]\n"))
	if err != nil {
		t.Fatalf("parse array: %v", err)
	}
	if len(many) != 2 || many[1].Score != 2 {
		t.Fatalf("unexpected attempts: %+v", many)
	}
	if _, err := parseAttempts([]byte("  ")); err == nil {
		t.Fatalf("expected empty input to fail")
	}
	if _, err := parseAttempts([]byte("{")); err == nil {
		t.Fatalf("expected malformed input to fail")
	}
}

func TestPrintGoals(t *testing.T) {
	var buf bytes.Buffer
	list := []model.Goal{
		{ID: "0123456789abcdef", Type: model.GoalQuestions, Target: 50, LabelTranslated: "Solve 50 questions"},
		{ID: "fedcba9876543210", Type: model.GoalTime, Target: 30, LabelTranslated: "Study 30 minutes"},
	}
	p := model.DailyProgress{Date: "2024-03-10", Goals: map[string]model.GoalProgress{
		"0123456789abcdef": {Current: 55, Completed: true},
	}}
	if err := printGoals(&buf, list, p); err != nil {
		t.Fatalf("print goals: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Goals for 2024-03-10", "[x] 01234567", "55/50", "[ ] fedcba98", "0/30"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestDefaultConfigTemplateLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("template should decode: %v", err)
	}
	if cfg.Goals.Lang != nil || cfg.Strategy != nil {
		t.Fatalf("expected commented template to set nothing, got %+v", cfg)
	}
}

func TestPrintDrill(t *testing.T) {
	var buf bytes.Buffer
	mix := []drill.Allocation{
		{Subject: "Physics", Questions: 7, Accuracy: 40},
		{Subject: "English", Questions: 3, Accuracy: 90},
	}
	if err := printDrill(&buf, mix); err != nil {
		t.Fatalf("print drill: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Practice mix (10 questions)") {
		t.Fatalf("unexpected header:\n%s", buf.String())
	}
}
