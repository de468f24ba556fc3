package settings

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvelasco/trendboard/internal/model"
	"github.com/nvelasco/trendboard/internal/theme"
)

// SavedMsg carries the toggles the user confirmed.
type SavedMsg struct {
	Patch model.SettingsPatch
}

// CancelMsg is dispatched when the user abandons the form.
type CancelMsg struct{}

// formBindings lives on the heap so huh field pointers stay valid
// across bubbletea model copies.
type formBindings struct {
	emailNotifications bool
	pushNotifications  bool
	trendAlerts        bool
	campaignUpdates    bool
	productUpdates     bool
	systemUpdates      bool
}

// Model is the notification settings view.
type Model struct {
	form     *huh.Form
	bindings *formBindings
	width    int
	height   int
}

// New creates a new settings model.
func New(width, height int) Model {
	return Model{width: width, height: height}
}

// Start builds a fresh form seeded with the current settings.
func (m *Model) Start(current model.NotificationSettings) tea.Cmd {
	m.bindings = &formBindings{
		emailNotifications: current.EmailNotifications,
		pushNotifications:  current.PushNotifications,
		trendAlerts:        current.TrendAlerts,
		campaignUpdates:    current.CampaignUpdates,
		productUpdates:     current.ProductUpdates,
		systemUpdates:      current.SystemUpdates,
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Email notifications").
				Value(&m.bindings.emailNotifications),
			huh.NewConfirm().
				Title("Push notifications").
				Value(&m.bindings.pushNotifications),
			huh.NewConfirm().
				Title("Trend alerts").
				Description("Notify when a product starts trending").
				Value(&m.bindings.trendAlerts),
			huh.NewConfirm().
				Title("Campaign updates").
				Description("Notify on campaign status changes").
				Value(&m.bindings.campaignUpdates),
			huh.NewConfirm().
				Title("Product updates").
				Value(&m.bindings.productUpdates),
			huh.NewConfirm().
				Title("System updates").
				Value(&m.bindings.systemUpdates),
		),
	).WithWidth(m.width - 4).WithShowHelp(true)

	return m.form.Init()
}

// Update handles messages for the settings view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		b := m.bindings
		patch := model.SettingsPatch{
			EmailNotifications: &b.emailNotifications,
			PushNotifications:  &b.pushNotifications,
			TrendAlerts:        &b.trendAlerts,
			CampaignUpdates:    &b.campaignUpdates,
			ProductUpdates:     &b.productUpdates,
			SystemUpdates:      &b.systemUpdates,
		}
		m.form = nil
		return m, func() tea.Msg { return SavedMsg{Patch: patch} }
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the settings form.
func (m Model) View() string {
	title := theme.HeaderStyle.Render("Notification Settings")
	if m.form == nil {
		return title
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
