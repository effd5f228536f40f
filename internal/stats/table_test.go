package stats

import "testing"

func TestRenderTableAlignsAndClips(t *testing.T) {
	cols := []column{
		{Title: "Subject", Max: 10},
		{Title: "Accuracy", Right: true},
		{Title: "Total", Right: true},
	}
	rows := [][]string{
		{"Physics", "97%", "120"},
		{"数学", "8%", "3"},
		{"Quantitative Aptitude", "50%", "12"},
	}

	lines := renderTable(cols, rows)
	want := []string{
		"Subject    Accuracy Total",
		"---------- -------- -----",
		"Physics         97%   120",
		"数学             8%     3",
		"Quantitat…      50%    12",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestRenderTableShortRows(t *testing.T) {
	lines := renderTable([]column{{Title: "A"}, {Title: "B", Right: true}}, [][]string{{"x"}})
	if len(lines) != 3 || lines[2] != "x" {
		t.Fatalf("unexpected lines: %q", lines)
	}
	if renderTable(nil, nil) != nil {
		t.Fatalf("expected nil for no columns")
	}
}
