package widgets

import (
	"fmt"

	"github.com/c2h5oh/datasize"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/prabalesh/ticktop/internal/draw"
	"github.com/prabalesh/ticktop/internal/schedule"
	"github.com/prabalesh/ticktop/internal/series"
)

// Summary text position, relative to the widget's region.
const (
	textCol = 3
	textRow = 2
)

// percentage scale; never auto-scaled
var yAxis = draw.Axis{Min: 0, Max: 100}

// Series colours in order: primary, secondary, then the rest.
var palette = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("3")), // yellow
	lipgloss.NewStyle().Foreground(lipgloss.Color("4")), // blue
	lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
}

func seriesStyle(i int) lipgloss.Style {
	return palette[i%len(palette)]
}

// graph is the renderer shared by all widgets: a framed chart of the store's
// series over the trailing window, with one summary line per series.
type graph struct {
	id       string
	title    string
	interval schedule.Ratio
	store    *series.Store
	summary  func(s *series.Series) string
}

func (g *graph) ID() string { return g.id }

func (g *graph) Title() string { return g.title }

func (g *graph) UpdateInterval() schedule.Ratio { return g.interval }

// Store exposes the history for inspection.
func (g *graph) Store() *series.Store { return g.store }

func (g *graph) Draw(area draw.Rect, s *draw.Surface) {
	if area.Empty() {
		return
	}

	inner := draw.NewBlock(g.title).Draw(area, s)

	w := g.store.Window()
	chart := draw.Chart{
		XAxis: draw.Axis{Min: w.Min, Max: w.Max},
		YAxis: yAxis,
	}
	for i, sr := range g.store.All() {
		samples := sr.Samples()
		pts := make([]draw.Point, len(samples))
		for j, smp := range samples {
			pts[j] = draw.Point{X: float64(smp.Tick), Y: smp.Percent}
		}
		chart.Datasets = append(chart.Datasets, draw.Dataset{
			Name:   sr.Label(),
			Style:  seriesStyle(i),
			Points: pts,
		})
	}
	chart.Draw(inner, s)

	// summary lines stay inside the frame
	width := area.Width - textCol - 1
	for i, sr := range g.store.All() {
		y := area.Y + textRow + i
		if width <= 0 || y >= area.Y+area.Height-1 {
			break
		}
		line := g.summary(sr)
		if sr.Stale() {
			line += " (stale)"
		}
		s.SetString(area.X+textCol, y, ansi.Truncate(line, width, ""), seriesStyle(i))
	}
}

// bytesSummary formats "<Label> <pct>% <used>/<total>".
func bytesSummary(s *series.Series) string {
	return fmt.Sprintf("%s %3.0f%% %s/%s",
		s.Label(),
		s.Last().Percent,
		humanBytes(s.Used()),
		humanBytes(s.Total()),
	)
}

// percentSummary formats "<Label> <pct>%".
func percentSummary(s *series.Series) string {
	return fmt.Sprintf("%s %3.0f%%", s.Label(), s.Last().Percent)
}

func humanBytes(n uint64) string {
	return datasize.ByteSize(n).HumanReadable()
}
