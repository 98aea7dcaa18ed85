package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/sirupsen/logrus"

	"github.com/prabalesh/ticktop/internal/draw"
	"github.com/prabalesh/ticktop/internal/schedule"
	"github.com/prabalesh/ticktop/internal/widgets"
)

const dashboardTab = "Dashboard"

type tickMsg time.Time

// App is the host dashboard: it drives every widget's Update from one base
// tick through the rational-cadence scheduler and lays the widgets out for
// drawing. Update and View both run on the bubbletea event loop, so widgets
// never see concurrent calls.
type App struct {
	widgets   []widgets.Widget
	tasks     []schedule.Task
	scheduler *schedule.Scheduler
	tickRate  time.Duration
	log       logrus.FieldLogger

	tabs            []string
	activeTab       int
	tabScrollOffset int
	width           int
	height          int

	lastErr error
	keys    keyMap
	help    help.Model
}

// NewApp builds the dashboard around ws. tickRate is the scheduler's base
// tick; log may be nil.
func NewApp(ws []widgets.Widget, tickRate time.Duration, log logrus.FieldLogger) *App {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	if tickRate <= 0 {
		tickRate = time.Second
	}

	tabs := []string{dashboardTab}
	tasks := make([]schedule.Task, len(ws))
	for i, w := range ws {
		tabs = append(tabs, strings.TrimSpace(w.Title()))
		tasks[i] = w
	}

	return &App{
		widgets:   ws,
		tasks:     tasks,
		scheduler: schedule.NewScheduler(log),
		tickRate:  tickRate,
		log:       log,
		tabs:      tabs,
		keys:      defaultKeyMap(),
		help:      help.New(),
	}
}

func (a *App) Init() tea.Cmd {
	return a.tick()
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(a.tickRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.log.WithFields(logrus.Fields{"width": msg.Width, "height": msg.Height}).Debug("resize")
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Left):
			if a.activeTab > 0 {
				a.activeTab--
			}
		case key.Matches(msg, a.keys.Right):
			if a.activeTab < len(a.tabs)-1 {
				a.activeTab++
			}
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
		}

	case tickMsg:
		a.step()
		return a, a.tick()
	}

	return a, nil
}

// step advances the scheduler one base tick. Sampling failures are recorded
// for the status bar; they never stop the dashboard.
func (a *App) step() {
	if err := a.scheduler.Step(a.tasks); err != nil {
		a.lastErr = err
		return
	}
	a.lastErr = nil
}

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	title := TitleStyle.Width(a.width).Render("ticktop")
	tabs := a.renderTabs()
	status := a.renderStatus()
	footer := a.help.View(a.keys)

	// two blank spacer rows plus whatever the rest renders to
	chrome := lipgloss.Height(title) + lipgloss.Height(tabs) + lipgloss.Height(status) + lipgloss.Height(footer) + 2
	content := a.renderContent(a.width, max(1, a.height-chrome))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		tabs,
		"",
		content,
		status,
		footer,
	)
}

func (a *App) renderContent(width, height int) string {
	if len(a.widgets) == 0 {
		return StatusStyle.Render("no widgets enabled")
	}

	if a.activeTab > 0 {
		return renderWidget(a.widgets[a.activeTab-1], width, height)
	}

	// Dashboard: widgets stacked, the last one takes the remainder.
	n := len(a.widgets)
	each := height / n
	if each < 1 {
		each = 1
	}
	parts := make([]string, 0, n)
	for i, w := range a.widgets {
		h := each
		if i == n-1 {
			h = max(1, height-each*(n-1))
		}
		parts = append(parts, renderWidget(w, width, h))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderWidget(w widgets.Renderable, width, height int) string {
	s := draw.NewSurface(width, height)
	w.Draw(s.Bounds(), s)
	return s.String()
}

func (a *App) renderStatus() string {
	if a.lastErr != nil {
		return ErrorStyle.Render(ansi.Truncate("sampling error: "+a.lastErr.Error(), a.width, "..."))
	}
	return StatusStyle.Render(fmt.Sprintf("tick %d • every %s", a.scheduler.Tick(), a.tickRate))
}

// getVisibleTabs returns the tabs that fit the width starting at the scroll
// offset, adjusting the offset so the active tab stays visible.
func (a *App) getVisibleTabs() ([]string, []int, bool, bool) {
	if a.width <= 0 {
		return a.tabs, nil, false, false
	}

	if a.activeTab < a.tabScrollOffset {
		a.tabScrollOffset = a.activeTab
	}

	for {
		names, indices := a.fitTabs()
		if len(indices) == 0 || a.activeTab <= indices[len(indices)-1] {
			canScrollLeft := a.tabScrollOffset > 0
			canScrollRight := a.tabScrollOffset+len(names) < len(a.tabs)
			return names, indices, canScrollLeft, canScrollRight
		}
		a.tabScrollOffset++
	}
}

func (a *App) fitTabs() ([]string, []int) {
	estimatedTabWidth := func(tabName string) int {
		return len(tabName) + 4 // padding and margin
	}

	var names []string
	var indices []int
	currentWidth := 0
	availableWidth := a.width - 4 // scroll indicators

	for i := a.tabScrollOffset; i < len(a.tabs); i++ {
		tabWidth := estimatedTabWidth(a.tabs[i])
		if currentWidth+tabWidth > availableWidth && len(names) > 0 {
			break
		}
		names = append(names, a.tabs[i])
		indices = append(indices, i)
		currentWidth += tabWidth
	}
	return names, indices
}

func (a *App) renderTabs() string {
	visibleTabs, visibleIndices, canScrollLeft, canScrollRight := a.getVisibleTabs()

	var tabElements []string
	if canScrollLeft {
		tabElements = append(tabElements, ScrollHintStyle.Render("‹"))
	}
	for i, tab := range visibleTabs {
		if visibleIndices[i] == a.activeTab {
			tabElements = append(tabElements, ActiveTabStyle.Render(tab))
		} else {
			tabElements = append(tabElements, InactiveTabStyle.Render(tab))
		}
	}
	if canScrollRight {
		tabElements = append(tabElements, ScrollHintStyle.Render("›"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Left, tabElements...)
}
