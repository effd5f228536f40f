package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const cellEllipsis = "…"

// column describes one text table column. Max > 0 caps the cell width;
// longer cells are cut and end in an ellipsis.
type column struct {
	Title string
	Right bool
	Max   int
}

// renderTable lays rows out under a header line and a dashed rule.
func renderTable(cols []column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	widths := make([]int, len(cols))
	for i, col := range cols {
		widths[i] = cellWidth(col.Title)
	}
	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(cols))
		for i, col := range cols {
			cell := ""
			if i < len(row) {
				cell = clipCell(row[i], col.Max)
			}
			cells[r][i] = cell
			if w := cellWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	titles := make([]string, len(cols))
	rules := make([]string, len(cols))
	for i, col := range cols {
		titles[i] = col.Title
		rules[i] = strings.Repeat("-", widths[i])
	}
	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, joinCells(cols, titles, widths), strings.Join(rules, " "))
	for _, row := range cells {
		lines = append(lines, joinCells(cols, row, widths))
	}
	return lines
}

func joinCells(cols []column, cells []string, widths []int) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = alignCell(cells[i], widths[i], col.Right)
	}
	return strings.TrimRight(strings.Join(parts, " "), " ")
}

func alignCell(value string, width int, right bool) string {
	pad := width - cellWidth(value)
	if pad <= 0 {
		return value
	}
	if right {
		return strings.Repeat(" ", pad) + value
	}
	return value + strings.Repeat(" ", pad)
}

func clipCell(value string, limit int) string {
	if limit <= 0 || cellWidth(value) <= limit {
		return value
	}
	return runewidth.Truncate(value, limit, cellEllipsis)
}

// cellWidth counts terminal cells so wide subject names stay aligned.
func cellWidth(value string) int {
	return runewidth.StringWidth(value)
}
