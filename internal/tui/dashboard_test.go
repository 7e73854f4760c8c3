package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonfocus/carbonfocus/internal/engine"
)

func newTestModel(t *testing.T) DashboardModel {
	t.Helper()
	return NewDashboardModel(engine.New(nil), []string{"EU-avg", "FR", "US-avg"}, "FR", nil)
}

func TestNewDashboardModelSelectsInitialRegion(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, "FR", m.region())
	assert.Len(t, m.profile, engine.ProfileHours)
	assert.Len(t, m.lowHours, 3)
}

func TestDashboardRegionCycling(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(DashboardModel)
	assert.Equal(t, "US-avg", m.region())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(DashboardModel)
	assert.Equal(t, "FR", m.region())
}

func TestDashboardSeasonCycling(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, "", m.season())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = next.(DashboardModel)
	assert.Equal(t, "winter", m.season())
}

func TestDashboardQuit(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(DashboardModel)
	require.NotNil(t, cmd)
	assert.Equal(t, "", m.View())
}

func TestDashboardViewContents(t *testing.T) {
	m := newTestModel(t)
	view := m.View()

	assert.Contains(t, view, "CarbonFocus — FR")
	assert.Contains(t, view, "00:00")
	assert.Contains(t, view, "Cleanest hours")
	assert.Contains(t, view, "q quit")
}

func TestDashboardViewWithScore(t *testing.T) {
	score := engine.EfficiencyScore(engine.Readings{engine.KeyElectricityKWh: 4})
	m := NewDashboardModel(engine.New(nil), []string{"EU-avg"}, "", &score)

	view := m.View()
	assert.Contains(t, view, "Score:")
	require.Len(t, score.Badges, 1)
	assert.True(t, strings.Contains(view, score.Badges[0]))
}
