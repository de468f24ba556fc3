package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Search
	Search key.Binding

	// Help toggle
	Help key.Binding

	// Manual refresh
	Refresh key.Binding

	// Views
	Dashboard     key.Binding
	Products      key.Binding
	Trends        key.Binding
	Notifications key.Binding
	Settings      key.Binding

	// Product actions
	Add       key.Binding
	ImportCSV key.Binding
	ImportURL key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Generate  key.Binding

	// Notification actions
	MarkAllRead key.Binding
	ClearAll    key.Binding
	Simulate    key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "dashboard"),
		),
		Products: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "products"),
		),
		Trends: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "trends"),
		),
		Notifications: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "notifications"),
		),
		Settings: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "settings"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add product"),
		),
		ImportCSV: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "import CSV"),
		),
		ImportURL: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "import from URL"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
		),
		Generate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "generate campaign"),
		),
		MarkAllRead: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark all read"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear all"),
		),
		Simulate: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "simulate"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help, k.Refresh,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.Dashboard, k.Products, k.Trends, k.Notifications, k.Settings},
		{k.Add, k.ImportCSV, k.ImportURL, k.Edit, k.Delete, k.Generate},
		{k.Search, k.Help, k.Refresh, k.MarkAllRead, k.ClearAll, k.Simulate},
	}
}
