package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	scoreStyle  = lipgloss.NewStyle().Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

const profileBarWidth = 40

// View implements tea.Model.
func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderProfile(),
		m.renderLowHours(),
	}
	if m.score != nil {
		sections = append(sections, m.renderScore())
	}
	sections = append(sections, footerStyle.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderHeader() string {
	region := m.region()
	if region == "" {
		region = "default"
	}
	title := fmt.Sprintf("CarbonFocus — %s", region)
	if season := m.season(); season != "" {
		title += fmt.Sprintf(" (%s)", season)
	}
	return titleStyle.Render(title) + "\n"
}

func (m DashboardModel) renderProfile() string {
	max := 0.0
	for _, v := range m.profile {
		if v > max {
			max = v
		}
	}

	low := make(map[int]bool, len(m.lowHours))
	for _, h := range m.lowHours {
		low[h] = true
	}

	var b strings.Builder
	for hour, value := range m.profile {
		bar := renderBar(value, max)
		if low[hour] {
			bar = lowStyle.Render(bar)
		}
		fmt.Fprintf(&b, "%02d:00 %7.5f %s\n", hour, value, bar)
	}
	return b.String()
}

func renderBar(value, max float64) string {
	if max <= 0 {
		return ""
	}
	filled := int(value / max * profileBarWidth)
	if filled < 0 {
		filled = 0
	}
	if filled > profileBarWidth {
		filled = profileBarWidth
	}
	return strings.Repeat("█", filled)
}

func (m DashboardModel) renderLowHours() string {
	if len(m.lowHours) == 0 {
		return ""
	}
	parts := make([]string, len(m.lowHours))
	for i, h := range m.lowHours {
		parts[i] = fmt.Sprintf("%02d:00", h)
	}
	return labelStyle.Render("Cleanest hours: ") + lowStyle.Render(strings.Join(parts, ", ")) + "\n"
}

func (m DashboardModel) renderScore() string {
	badge := ""
	if len(m.score.Badges) > 0 {
		badge = " — " + m.score.Badges[0]
	}
	line := scoreStyle.Render(fmt.Sprintf("Score: %d/100%s", m.score.Score, badge))
	if len(m.score.Notes) > 0 {
		line += "\n" + labelStyle.Render(m.score.Notes[0])
	}
	return line + "\n"
}
