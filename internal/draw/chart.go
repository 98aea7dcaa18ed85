package draw

import (
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// minimum region a chart with axis labels can be drawn in
const (
	minChartWidth  = 8
	minChartHeight = 3
)

// Point is one (x, y) datum in axis units.
type Point struct {
	X, Y float64
}

// Axis bounds one chart dimension.
type Axis struct {
	Min, Max float64
}

func (a Axis) contains(v float64) bool {
	return v >= a.Min && v <= a.Max
}

// Dataset is one styled line on a chart.
type Dataset struct {
	Name   string
	Style  lipgloss.Style
	Points []Point
}

// Chart draws braille line datasets against fixed axis bounds. Points outside
// the X axis are dropped before drawing.
type Chart struct {
	XAxis    Axis
	YAxis    Axis
	Datasets []Dataset
}

// Draw renders the chart into area on s.
func (c Chart) Draw(area Rect, s *Surface) {
	if area.Width < minChartWidth || area.Height < minChartHeight {
		return
	}
	if c.XAxis.Max <= c.XAxis.Min || c.YAxis.Max <= c.YAxis.Min {
		return
	}

	lc := linechart.New(area.Width, area.Height, c.XAxis.Min, c.XAxis.Max, c.YAxis.Min, c.YAxis.Max)
	lc.DrawXYAxisAndLabel()

	for _, ds := range c.Datasets {
		pts := c.visible(ds.Points)
		if len(pts) == 0 {
			continue
		}

		lc.Style = ds.Style
		if len(pts) == 1 {
			lc.DrawBrailleLine(pts[0], pts[0])
			continue
		}
		for i := 1; i < len(pts); i++ {
			lc.DrawBrailleLine(pts[i-1], pts[i])
		}
	}

	lines := strings.Split(lc.View(), "\n")
	for i := 0; i < len(lines) && i < area.Height; i++ {
		s.SetBlock(area.X, area.Y+i, ansi.Truncate(lines[i], area.Width, ""))
	}
}

func (c Chart) visible(points []Point) []canvas.Float64Point {
	out := make([]canvas.Float64Point, 0, len(points))
	for _, p := range points {
		if !c.XAxis.contains(p.X) {
			continue
		}
		y := p.Y
		if y < c.YAxis.Min {
			y = c.YAxis.Min
		}
		if y > c.YAxis.Max {
			y = c.YAxis.Max
		}
		out = append(out, canvas.Float64Point{X: p.X, Y: y})
	}
	return out
}
