// Package tui renders the interactive carbonfocus dashboard: the hourly
// intensity profile, the cleanest hours, and the day's efficiency score.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/carbonfocus/carbonfocus/internal/engine"
)

// seasons cycled by the season key. The empty entry means "no season hint".
var seasons = []string{"", "winter", "spring", "summer", "autumn"}

// keyMap defines the dashboard key bindings.
type keyMap struct {
	PrevRegion key.Binding
	NextRegion key.Binding
	Season     key.Binding
	Quit       key.Binding
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevRegion, k.NextRegion, k.Season, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.PrevRegion, k.NextRegion}, {k.Season, k.Quit}}
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevRegion: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev region"),
		),
		NextRegion: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next region"),
		),
		Season: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "season"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DashboardModel is the Bubble Tea model for the dashboard view.
type DashboardModel struct {
	eng     *engine.Engine
	regions []string

	regionIdx int
	seasonIdx int

	profile  []float64
	lowHours []int
	score    *engine.ScoreResult

	keys keyMap
	help help.Model

	width    int
	quitting bool
}

// NewDashboardModel builds the dashboard for the given engine and region
// list. score may be nil when no readings were supplied.
func NewDashboardModel(eng *engine.Engine, regions []string, initialRegion string, score *engine.ScoreResult) DashboardModel {
	m := DashboardModel{
		eng:     eng,
		regions: regions,
		score:   score,
		keys:    defaultKeyMap(),
		help:    help.New(),
		width:   80,
	}
	for i, code := range regions {
		if code == initialRegion {
			m.regionIdx = i
			break
		}
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.PrevRegion):
			m.regionIdx = (m.regionIdx - 1 + len(m.regions)) % len(m.regions)
			m.refresh()
		case key.Matches(msg, m.keys.NextRegion):
			m.regionIdx = (m.regionIdx + 1) % len(m.regions)
			m.refresh()
		case key.Matches(msg, m.keys.Season):
			m.seasonIdx = (m.seasonIdx + 1) % len(seasons)
			m.refresh()
		}
	}
	return m, nil
}

// refresh recomputes the profile and low hours for the current selection.
func (m *DashboardModel) refresh() {
	m.profile = m.eng.HourlyProfile(m.region(), m.season())
	m.lowHours = engine.SuggestLowHours(m.profile, 3)
}

func (m DashboardModel) region() string {
	if len(m.regions) == 0 {
		return ""
	}
	return m.regions[m.regionIdx]
}

func (m DashboardModel) season() string {
	return seasons[m.seasonIdx]
}
