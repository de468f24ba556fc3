package importcsv

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvelasco/trendboard/internal/csvimport"
	"github.com/nvelasco/trendboard/internal/theme"
)

// ImportRequestedMsg asks the app to run the batch import.
type ImportRequestedMsg struct {
	Rows []csvimport.Row
}

// CancelMsg is dispatched when the user leaves the import view.
type CancelMsg struct{}

// parsedMsg carries the outcome of parsing the CSV file.
type parsedMsg struct {
	rows []csvimport.Row
	err  error
}

// phase tracks the import flow state.
type phase int

const (
	phasePath phase = iota
	phasePreview
	phaseRunning
	phaseDone
)

// Model is the CSV import view.
type Model struct {
	pathInput textinput.Model
	phase     phase
	rows      []csvimport.Row
	parseErr  string
	result    *csvimport.Result
	width     int
	height    int
}

// New creates a new CSV import model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "/path/to/products.csv"
	ti.Prompt = "File: "
	ti.Width = width - 10

	return Model{
		pathInput: ti,
		width:     width,
		height:    height,
	}
}

// Start resets the view and focuses the path input.
func (m *Model) Start() tea.Cmd {
	m.phase = phasePath
	m.rows = nil
	m.parseErr = ""
	m.result = nil
	m.pathInput.Reset()
	return m.pathInput.Focus()
}

// SetResult records the aggregate import outcome for display.
func (m *Model) SetResult(result csvimport.Result) {
	m.result = &result
	m.phase = phaseDone
}

// Update handles messages for the CSV import view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case parsedMsg:
		if msg.err != nil {
			m.parseErr = msg.err.Error()
			m.phase = phasePath
			return m, nil
		}
		m.rows = msg.rows
		m.parseErr = ""
		m.phase = phasePreview
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

// handleKeys routes key input by phase.
func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.phase {
	case phasePath:
		switch msg.String() {
		case "enter":
			path := m.pathInput.Value()
			return m, parseFile(path)
		case "esc":
			return m, func() tea.Msg { return CancelMsg{} }
		}
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd

	case phasePreview:
		switch msg.String() {
		case "enter":
			rows := m.rows
			m.phase = phaseRunning
			return m, func() tea.Msg { return ImportRequestedMsg{Rows: rows} }
		case "esc":
			return m, func() tea.Msg { return CancelMsg{} }
		}

	case phaseDone:
		switch msg.String() {
		case "enter", "esc":
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}

	return m, nil
}

// parseFile reads and parses the CSV file off the UI goroutine.
func parseFile(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parsedMsg{err: fmt.Errorf("opening %s: %w", path, err)}
		}
		defer f.Close()

		rows, err := csvimport.Parse(f)
		if err != nil {
			return parsedMsg{err: err}
		}
		if len(rows) == 0 {
			return parsedMsg{err: fmt.Errorf("no data rows found in %s", path)}
		}
		return parsedMsg{rows: rows}
	}
}

// View renders the CSV import view.
func (m Model) View() string {
	title := theme.HeaderStyle.Render("Import Products from CSV")

	var body string
	switch m.phase {
	case phasePath:
		hint := theme.HelpStyle.Render(
			"Required columns: name, description, category, price, imageUrl",
		)
		body = lipgloss.JoinVertical(
			lipgloss.Left, m.pathInput.View(), "", hint,
		)
		if m.parseErr != "" {
			body = lipgloss.JoinVertical(
				lipgloss.Left,
				theme.ErrorBannerStyle.Render(m.parseErr), "", body,
			)
		}

	case phasePreview:
		preview := fmt.Sprintf("Found %d products. Press enter to import.", len(m.rows))
		var lines []string
		limit := len(m.rows)
		if limit > 10 {
			limit = 10
		}
		for _, row := range m.rows[:limit] {
			lines = append(lines, fmt.Sprintf(
				"  %-30s %-20s %8s", row.Name, row.Category, row.Price,
			))
		}
		if len(m.rows) > 10 {
			lines = append(lines, theme.HelpStyle.Render(
				fmt.Sprintf("  ... and %d more", len(m.rows)-10),
			))
		}
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			append([]string{preview, ""}, lines...)...,
		)

	case phaseRunning:
		body = fmt.Sprintf("Importing %d products...", len(m.rows))

	case phaseDone:
		lines := []string{
			fmt.Sprintf("%d successful, %d failed", m.result.Successful, m.result.Failed),
		}
		for _, e := range m.result.Errors {
			lines = append(lines, theme.ErrorBannerStyle.Render("• "+e))
		}
		lines = append(lines, "", theme.HelpStyle.Render("press enter to return"))
		body = lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, "", body)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.pathInput.Width = width - 10
}
