package trendsview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvelasco/trendboard/internal/model"
	"github.com/nvelasco/trendboard/internal/theme"
)

// Model is the trend signals view.
type Model struct {
	items  []model.TrendData
	cursor int
	width  int
	height int
}

// New creates a new trends model.
func New(width, height int) Model {
	return Model{width: width, height: height}
}

// SetTrends replaces the displayed trend entries.
func (m *Model) SetTrends(items []model.TrendData) {
	m.items = items
	if m.cursor >= len(items) {
		m.cursor = 0
	}
}

// Update handles messages for the trends view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	}
	return m, nil
}

// View renders the trend list with a detail panel for the selection.
func (m Model) View() string {
	header := theme.HeaderStyle.Render("Trend Signals")

	if len(m.items) == 0 {
		empty := theme.HelpStyle.Render("No trend data available.")
		return lipgloss.JoinVertical(lipgloss.Left, header, "", empty)
	}

	lines := make([]string, 0, len(m.items))
	for i, td := range m.items {
		line := fmt.Sprintf("%-28s %s  +%d%%",
			td.Keyword,
			theme.ScoreStyle(td.Score).Render(fmt.Sprintf("score %d", td.Score)),
			td.Percentage,
		)
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}

	detail := m.detailView(m.items[m.cursor])
	parts := append([]string{header, ""}, lines...)
	parts = append(parts, "", detail)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) detailView(td model.TrendData) string {
	chart := sparkline(td.TimeData)
	related := strings.Join(td.RelatedKeywords, ", ")

	return theme.PanelStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		theme.TrendStyle.Render(td.Keyword),
		"",
		chart,
		"",
		"Related: "+related,
		"",
		theme.HelpStyle.Render(td.Reason),
	))
}

// sparkline renders the time series as a bar-per-point strip.
func sparkline(points []model.TrendPoint) string {
	if len(points) == 0 {
		return ""
	}
	blocks := []rune("▁▂▃▄▅▆▇█")

	max := points[0].Value
	for _, p := range points {
		if p.Value > max {
			max = p.Value
		}
	}
	if max == 0 {
		max = 1
	}

	var b strings.Builder
	for _, p := range points {
		idx := p.Value * (len(blocks) - 1) / max
		b.WriteRune(blocks[idx])
	}
	b.WriteString(fmt.Sprintf("  %s → %s",
		points[0].Date, points[len(points)-1].Date))
	return b.String()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
