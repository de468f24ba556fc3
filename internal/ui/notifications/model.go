package notifications

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvelasco/trendboard/internal/model"
	"github.com/nvelasco/trendboard/internal/theme"
)

// MarkReadMsg asks the app to mark a single notification as read.
type MarkReadMsg struct {
	ID string
}

// MarkAllReadMsg asks the app to mark the whole feed as read.
type MarkAllReadMsg struct{}

// DeleteMsg asks the app to delete a notification.
type DeleteMsg struct {
	ID string
}

// ClearAllMsg asks the app to empty the feed.
type ClearAllMsg struct{}

// SimulateMsg asks the app to generate a random demo notification.
type SimulateMsg struct{}

// Model is the notification feed view.
type Model struct {
	items  []model.Notification
	unread int
	cursor int
	width  int
	height int
}

// New creates a new notifications model.
func New(width, height int) Model {
	return Model{width: width, height: height}
}

// SetNotifications replaces the displayed feed.
func (m *Model) SetNotifications(items []model.Notification, unread int) {
	m.items = items
	m.unread = unread
	if m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Selected returns the notification under the cursor, or nil.
func (m Model) Selected() *model.Notification {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	n := m.items[m.cursor]
	return &n
}

// Update handles messages for the notifications view.
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
	case "enter":
		if n := m.Selected(); n != nil && !n.Read {
			id := n.ID
			return m, func() tea.Msg { return MarkReadMsg{ID: id} }
		}
	case "x":
		if n := m.Selected(); n != nil {
			id := n.ID
			return m, func() tea.Msg { return DeleteMsg{ID: id} }
		}
	case "m":
		return m, func() tea.Msg { return MarkAllReadMsg{} }
	case "X":
		return m, func() tea.Msg { return ClearAllMsg{} }
	case "S":
		return m, func() tea.Msg { return SimulateMsg{} }
	}

	return m, nil
}

// View renders the notification feed.
func (m Model) View() string {
	header := theme.HeaderStyle.Render(
		fmt.Sprintf("Notifications (%d unread)", m.unread),
	)

	if len(m.items) == 0 {
		empty := theme.HelpStyle.Render("No notifications. Press S to simulate one.")
		return lipgloss.JoinVertical(lipgloss.Left, header, "", empty)
	}

	visible := m.height - 4
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.items) {
		end = len(m.items)
	}

	lines := make([]string, 0, end-start+2)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderItem(i))
	}

	help := theme.HelpStyle.Render(
		"enter mark read • x delete • m mark all • X clear • S simulate",
	)
	parts := append([]string{header, ""}, lines...)
	parts = append(parts, "", help)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderItem(i int) string {
	n := m.items[i]

	marker := "  "
	if !n.Read {
		marker = theme.UnreadStyle.Render("● ")
	}
	badge := theme.NotificationStyle(string(n.Type)).Render(string(n.Type))
	line := fmt.Sprintf("%s%-9s %s — %s %s",
		marker, badge, n.Title, n.Message,
		theme.HelpStyle.Render(relativeTime(n.CreatedAt)),
	)

	if i == m.cursor {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
