package products

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvelasco/trendboard/internal/keys"
	"github.com/nvelasco/trendboard/internal/model"
	"github.com/nvelasco/trendboard/internal/theme"
)

// EditRequestedMsg asks the app to open the edit form for a product.
type EditRequestedMsg struct {
	Product model.Product
}

// DeleteRequestedMsg asks the app to delete a product.
type DeleteRequestedMsg struct {
	ProductID string
	Name      string
}

// GenerateRequestedMsg asks the app to open the campaign generator.
type GenerateRequestedMsg struct {
	Product model.Product
}

// Model is the product list view.
type Model struct {
	list        list.Model
	keys        *keys.KeyMap
	products    []model.Product
	query       string
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new product list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, Delegate{}, width, height-2)
	l.Title = "Products"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search products..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetProducts replaces the displayed collection, reapplying the active
// search query.
func (m *Model) SetProducts(products []model.Product) tea.Cmd {
	m.products = products
	return m.applyFilter()
}

// Searching reports whether the search input currently has focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// Selected returns the currently focused product, if any.
func (m Model) Selected() (model.Product, bool) {
	item, ok := m.list.SelectedItem().(Item)
	if !ok {
		return model.Product{}, false
	}
	return item.Product, true
}

// Update handles messages for the product list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.searchMode {
			return m.handleSearchKeys(keyMsg)
		}
		return m.handleNormalKeys(keyMsg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.query = m.searchInput.Value()
		return m, m.applyFilter()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.query = ""
		return m, m.applyFilter()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Edit):
		if p, ok := m.Selected(); ok {
			return m, func() tea.Msg { return EditRequestedMsg{Product: p} }
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if p, ok := m.Selected(); ok {
			return m, func() tea.Msg {
				return DeleteRequestedMsg{ProductID: p.ID, Name: p.Name}
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Generate):
		if p, ok := m.Selected(); ok {
			return m, func() tea.Msg { return GenerateRequestedMsg{Product: p} }
		}
		return m, nil
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// applyFilter rebuilds the list items from the collection and query.
func (m *Model) applyFilter() tea.Cmd {
	q := strings.ToLower(m.query)

	var items []list.Item
	for _, p := range m.products {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			continue
		}
		items = append(items, Item{Product: p})
	}
	return m.list.SetItems(items)
}

// View renders the product list.
func (m Model) View() string {
	if m.searchMode {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			m.searchInput.View(),
			m.list.View(),
		)
	}
	return m.list.View()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
