// Package draw holds the terminal drawing primitives widgets render into: a
// fixed-size cell surface, a titled border block, and a line chart.
package draw

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Rect is a region of a Surface, in cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Inner returns r shrunk by one cell on every side.
func (r Rect) Inner() Rect {
	if r.Width < 2 || r.Height < 2 {
		return Rect{X: r.X, Y: r.Y}
	}
	return Rect{X: r.X + 1, Y: r.Y + 1, Width: r.Width - 2, Height: r.Height - 2}
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Surface is a width x height grid of terminal cells stored as styled rows.
// Writes outside the grid are clipped.
type Surface struct {
	width  int
	height int
	rows   []string
}

func NewSurface(width, height int) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s := &Surface{width: width, height: height, rows: make([]string, height)}
	blank := strings.Repeat(" ", width)
	for i := range s.rows {
		s.rows[i] = blank
	}
	return s
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// Bounds returns the full surface as a Rect.
func (s *Surface) Bounds() Rect {
	return Rect{Width: s.width, Height: s.height}
}

// SetString writes text at column x, row y in the given style.
func (s *Surface) SetString(x, y int, text string, style lipgloss.Style) {
	s.put(x, y, style.Render(text))
}

// SetBlock writes a pre-rendered, possibly multi-line string with its top-left
// corner at (x, y).
func (s *Surface) SetBlock(x, y int, block string) {
	for i, line := range strings.Split(block, "\n") {
		s.put(x, y+i, line)
	}
}

// Line returns row y with styling intact.
func (s *Surface) Line(y int) string {
	if y < 0 || y >= s.height {
		return ""
	}
	return s.rows[y]
}

// PlainLine returns row y without escape sequences.
func (s *Surface) PlainLine(y int) string {
	return ansi.Strip(s.Line(y))
}

func (s *Surface) String() string {
	return strings.Join(s.rows, "\n")
}

func (s *Surface) put(x, y int, content string) {
	if y < 0 || y >= s.height || x < 0 || x >= s.width {
		return
	}

	if ansi.StringWidth(content) > s.width-x {
		content = ansi.Truncate(content, s.width-x, "")
	}
	w := ansi.StringWidth(content)
	if w == 0 {
		return
	}

	row := s.rows[y]
	left := ansi.Truncate(row, x, "")
	right := ansi.TruncateLeft(row, x+w, "")
	s.rows[y] = left + content + right
}
