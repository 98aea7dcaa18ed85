package draw

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Block is the titled frame a widget draws inside of.
type Block struct {
	Title       string
	Border      lipgloss.Border
	BorderStyle lipgloss.Style
	TitleStyle  lipgloss.Style
}

// NewBlock returns a rounded frame with the given title.
func NewBlock(title string) Block {
	return Block{
		Title:       title,
		Border:      lipgloss.RoundedBorder(),
		BorderStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		TitleStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
	}
}

// Draw frames area on s and returns the region left inside the frame.
func (b Block) Draw(area Rect, s *Surface) Rect {
	if area.Width < 2 || area.Height < 2 {
		return Rect{X: area.X, Y: area.Y}
	}

	inner := area.Width - 2
	bs := b.BorderStyle

	// Top edge: ╭ title ───╮, title clipped to fit.
	title := b.Title
	if ansi.StringWidth(title) > inner {
		title = ansi.Truncate(title, inner, "")
	}
	fill := inner - ansi.StringWidth(title)
	top := bs.Render(b.Border.TopLeft) +
		b.TitleStyle.Render(title) +
		bs.Render(strings.Repeat(b.Border.Top, fill)+b.Border.TopRight)
	s.SetBlock(area.X, area.Y, top)

	for y := area.Y + 1; y < area.Y+area.Height-1; y++ {
		s.SetString(area.X, y, b.Border.Left, bs)
		s.SetString(area.X+area.Width-1, y, b.Border.Right, bs)
	}

	bottom := b.Border.BottomLeft + strings.Repeat(b.Border.Bottom, inner) + b.Border.BottomRight
	s.SetString(area.X, area.Y+area.Height-1, bottom, bs)

	return area.Inner()
}
