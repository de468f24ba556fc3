package importurl

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvelasco/trendboard/internal/extract"
	"github.com/nvelasco/trendboard/internal/model"
	"github.com/nvelasco/trendboard/internal/theme"
)

// ExtractedMsg carries product data pulled from a URL, ready to
// prefill the product form.
type ExtractedMsg struct {
	Input model.ProductInput
}

// CancelMsg is dispatched when the user leaves the URL import view.
type CancelMsg struct{}

// Model is the URL import view.
type Model struct {
	urlInput   textinput.Model
	extractErr string
	width      int
	height     int
}

// New creates a new URL import model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "https://www.amazon.com/dp/B0..."
	ti.Prompt = "URL: "
	ti.Width = width - 10

	return Model{
		urlInput: ti,
		width:    width,
		height:   height,
	}
}

// Start resets the view and focuses the URL input.
func (m *Model) Start() tea.Cmd {
	m.extractErr = ""
	m.urlInput.Reset()
	return m.urlInput.Focus()
}

// Update handles messages for the URL import view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			extracted, err := extract.FromURL(m.urlInput.Value())
			if err != nil {
				m.extractErr = err.Error()
				return m, nil
			}
			input := extracted.Input()
			return m, func() tea.Msg { return ExtractedMsg{Input: input} }
		case "esc":
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}

	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

// View renders the URL import view.
func (m Model) View() string {
	title := theme.HeaderStyle.Render("Import Product from URL")

	supported := "Supported: "
	for i, d := range extract.SupportedDomains {
		if i > 0 {
			supported += ", "
		}
		supported += d
	}

	parts := []string{title, "", m.urlInput.View(), "", theme.HelpStyle.Render(supported)}
	if m.extractErr != "" {
		parts = append(parts, "", theme.ErrorBannerStyle.Render(m.extractErr))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.urlInput.Width = width - 10
}
