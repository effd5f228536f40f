package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisLabelTop        = "100%"
	axisLabelMid        = "50%"
	axisLabelBottom     = "0%"
	axisSeparator       = " │ "
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var colorPalette = []string{
	"\x1b[36m", // cyan
	"\x1b[35m", // magenta
	"\x1b[33m", // yellow
	"\x1b[32m", // green
}

// Braille dot bits indexed by [row][column] within a 2x4 cell.
var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// PlotPercent renders series of percentages on a shared 0-100% axis.
func PlotPercent(w io.Writer, title string, series []Series, width, height int) error {
	return plotPercent(w, title, series, width, height, false)
}

// PlotPercentWithColor is PlotPercent with optional forced color output.
func PlotPercentWithColor(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	return plotPercent(w, title, series, width, height, forceColor)
}

// canvas holds one braille layer per series so colors can be attributed.
type canvas struct {
	width, height int
	layers        [][][]uint8
}

func newCanvas(width, height, layers int) *canvas {
	c := &canvas{width: width, height: height}
	for i := 0; i < layers; i++ {
		cells := make([][]uint8, height)
		for y := range cells {
			cells[y] = make([]uint8, width)
		}
		c.layers = append(c.layers, cells)
	}
	return c
}

// dot sets a sub-cell pixel; x spans 2*width and y spans 4*height.
func (c *canvas) dot(layer, x, y int) {
	cx, cy := x/2, y/4
	if x < 0 || y < 0 || cx >= c.width || cy >= c.height {
		return
	}
	c.layers[layer][cy][cx] |= brailleBits[y%4][x%2]
}

// line draws between two pixels with Bresenham's algorithm.
func (c *canvas) line(layer, x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.dot(layer, x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// cell merges all layers; the first layer with a dot picks the color.
func (c *canvas) cell(x, y int) (rune, int) {
	var mask uint8
	owner := -1
	for i, cells := range c.layers {
		if m := cells[y][x]; m != 0 {
			if owner < 0 {
				owner = i
			}
			mask |= m
		}
	}
	return rune(0x2800 + int(mask)), owner
}

func plotPercent(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	series = nonEmptySeries(series)
	if len(series) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	c := newCanvas(width, height, len(series))
	pixelsHigh := height * 4
	for si, s := range series {
		values := resampleSeries(s.Values, width)
		prevX, prevY := -1, -1
		for x, v := range values {
			px, py := x*2, percentToRow(v, pixelsHigh)
			if prevX < 0 {
				c.dot(si, px, py)
			} else {
				c.line(si, prevX, prevY, px, py)
			}
			prevX, prevY = px, py
		}
	}

	useColor := shouldUseColor(w, forceColor)
	lines := []string{}
	if title != "" {
		lines = append(lines, title)
	}
	for _, s := range series {
		last := s.Values[len(s.Values)-1]
		lines = append(lines, fmt.Sprintf("%s: latest=%.1f%%", s.Name, last))
	}
	for y := 0; y < height; y++ {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%*s%s", utf8.RuneCountInString(axisLabelTop), axisLabel(y, height), axisSeparator))
		for x := 0; x < width; x++ {
			ch, owner := c.cell(x, y)
			if useColor && owner >= 0 {
				row.WriteString(colorPalette[owner%len(colorPalette)])
				row.WriteRune(ch)
				row.WriteString(colorReset)
				continue
			}
			row.WriteRune(ch)
		}
		lines = append(lines, row.String())
	}
	lines = append(lines, legend(series, useColor), "")
	return writeLines(w, lines)
}

func nonEmptySeries(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func percentToRow(v float64, pixelsHigh int) int {
	v = math.Max(0, math.Min(100, v))
	row := int(math.Round((1 - v/100) * float64(pixelsHigh-1)))
	return clampInt(row, 0, pixelsHigh-1)
}

func axisLabel(y, height int) string {
	switch {
	case y == 0:
		return axisLabelTop
	case y == height-1:
		return axisLabelBottom
	case height > 2 && y == height/2:
		return axisLabelMid
	default:
		return ""
	}
}

func legend(series []Series, useColor bool) string {
	parts := make([]string, 0, len(series))
	for i, s := range series {
		label := fmt.Sprintf("%c %s", rune(0x2800+0x1b), s.Name)
		if useColor {
			label = colorPalette[i%len(colorPalette)] + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

// resampleSeries stretches or averages values to exactly width points.
func resampleSeries(values []float64, width int) []float64 {
	out := make([]float64, width)
	n := len(values)
	switch {
	case n == 0 || width <= 0:
		return nil
	case n == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	case n > width:
		for i := range out {
			start := i * n / width
			end := maxInt((i+1)*n/width, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	default:
		for i := range out {
			pos := float64(i) * float64(n-1) / float64(width-1)
			idx := int(pos)
			if idx >= n-1 {
				out[i] = values[n-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	axisWidth := utf8.RuneCountInString(axisLabelTop) + utf8.RuneCountInString(axisSeparator)
	return maxInt(minPlotWidth, totalWidth-axisWidth)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
