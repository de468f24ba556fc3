package dashboard

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvelasco/trendboard/internal/model"
	"github.com/nvelasco/trendboard/internal/theme"
)

// Model is the overview dashboard.
type Model struct {
	products []model.Product
	recent   []model.Notification
	unread   int
	loading  bool
	width    int
	height   int
}

// New creates a new dashboard model.
func New(width, height int) Model {
	return Model{width: width, height: height}
}

// SetProducts replaces the product snapshot backing the stat cards.
func (m *Model) SetProducts(products []model.Product, loading bool) {
	m.products = products
	m.loading = loading
}

// SetActivity replaces the recent-activity feed.
func (m *Model) SetActivity(recent []model.Notification, unread int) {
	if len(recent) > 5 {
		recent = recent[:5]
	}
	m.recent = recent
	m.unread = unread
}

// Update handles messages for the dashboard. The dashboard is a
// read-only surface, so navigation is left to the app.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the stat cards and recent activity.
func (m Model) View() string {
	title := theme.HeaderStyle.Render("Dashboard")

	trending := 0
	for _, p := range m.products {
		if p.IsTrend {
			trending++
		}
	}

	cards := lipgloss.JoinHorizontal(
		lipgloss.Top,
		card("Products", fmt.Sprintf("%d", len(m.products))),
		card("Trending", fmt.Sprintf("%d", trending)),
		card("Unread", fmt.Sprintf("%d", m.unread)),
	)

	var status string
	if m.loading {
		status = theme.HelpStyle.Render("refreshing catalog...")
	}

	activity := []string{theme.TrendStyle.Render("Recent activity")}
	if len(m.recent) == 0 {
		activity = append(activity, theme.HelpStyle.Render("  nothing yet"))
	}
	for _, n := range m.recent {
		marker := "  "
		if !n.Read {
			marker = theme.UnreadStyle.Render("● ")
		}
		activity = append(activity, fmt.Sprintf("%s%s — %s", marker, n.Title, n.Message))
	}

	parts := []string{title, "", cards}
	if status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, "", lipgloss.JoinVertical(lipgloss.Left, activity...))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func card(label, value string) string {
	return theme.PanelStyle.Render(lipgloss.JoinVertical(
		lipgloss.Center,
		theme.HelpStyle.Render(label),
		theme.TrendStyle.Render(value),
	))
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
