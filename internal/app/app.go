package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvelasco/trendboard/internal/csvimport"
	"github.com/nvelasco/trendboard/internal/keys"
	"github.com/nvelasco/trendboard/internal/model"
	"github.com/nvelasco/trendboard/internal/refresh"
	"github.com/nvelasco/trendboard/internal/store"
	"github.com/nvelasco/trendboard/internal/trends"
	"github.com/nvelasco/trendboard/internal/ui"
	"github.com/nvelasco/trendboard/internal/ui/dashboard"
	"github.com/nvelasco/trendboard/internal/ui/generator"
	helpview "github.com/nvelasco/trendboard/internal/ui/help"
	"github.com/nvelasco/trendboard/internal/ui/importcsv"
	"github.com/nvelasco/trendboard/internal/ui/importurl"
	"github.com/nvelasco/trendboard/internal/ui/notifications"
	"github.com/nvelasco/trendboard/internal/ui/productform"
	"github.com/nvelasco/trendboard/internal/ui/products"
	"github.com/nvelasco/trendboard/internal/ui/settings"
	"github.com/nvelasco/trendboard/internal/ui/trendsview"
)

// productAddedMsg reports the outcome of an async product creation.
type productAddedMsg struct {
	name   string
	method string
	err    error
}

// productUpdatedMsg reports the outcome of an async product edit.
type productUpdatedMsg struct {
	name string
	err  error
}

// productDeletedMsg reports the outcome of an async product delete.
type productDeletedMsg struct {
	err error
}

// csvImportedMsg carries the aggregate result of a batch import.
type csvImportedMsg struct {
	result csvimport.Result
}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewProducts
	ViewTrends
	ViewNotifications
	ViewSettings
	ViewHelp
	ViewProductForm
	ViewImportCSV
	ViewImportURL
	ViewGenerator
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the stores.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap

	products      *store.ProductStore
	notifications *store.NotificationStore
	refresher     *refresh.Refresher

	dashboardView dashboard.Model
	productsView  products.Model
	trendsView    trendsview.Model
	notifsView    notifications.Model
	settingsView  settings.Model
	helpView      helpview.Model
	formView      productform.Model
	csvView       importcsv.Model
	urlView       importurl.Model
	generatorView generator.Model

	// addMethod is how the product being created arrived: manual, csv
	// or url. It feeds the "product added" notification.
	addMethod string

	ready       bool
	errorBanner string
}

// New creates the root application model over the two stores and the
// background refresher.
func New(
	ps *store.ProductStore,
	ns *store.NotificationStore,
	r *refresh.Refresher,
) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView:   ViewDashboard,
		keys:          k,
		products:      ps,
		notifications: ns,
		refresher:     r,
		dashboardView: dashboard.New(80, 24),
		productsView:  products.New(k, 80, 24),
		trendsView:    trendsview.New(80, 24),
		notifsView:    notifications.New(80, 24),
		settingsView:  settings.New(80, 24),
		helpView:      helpview.New(k, 80, 24),
		formView:      productform.New(80, 24),
		csvView:       importcsv.New(80, 24),
		urlView:       importurl.New(80, 24),
		generatorView: generator.New(80, 24),
	}
}

// Init starts the background refresher. The first cycle runs
// immediately, so the catalog loads without user action.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.refresher.Start(),
		m.syncFromStores(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.dashboardView.SetSize(w, h)
		m.productsView.SetSize(w, h)
		m.trendsView.SetSize(w, h)
		m.notifsView.SetSize(w, h)
		m.settingsView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.formView.SetSize(w, h)
		m.csvView.SetSize(w, h)
		m.urlView.SetSize(w, h)
		m.generatorView.SetSize(w, h)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case refresh.ResultMsg:
		m.errorBanner = msg.Err
		return m, tea.Batch(
			m.syncFromStores(),
			m.refresher.WaitForNextResult(),
		)

	case products.EditRequestedMsg:
		m.previousView = m.currentView
		m.currentView = ViewProductForm
		return m, m.formView.StartEdit(msg.Product)

	case products.DeleteRequestedMsg:
		return m, m.deleteProduct(msg.ProductID)

	case products.GenerateRequestedMsg:
		m.previousView = m.currentView
		m.currentView = ViewGenerator
		m.generatorView.Start(msg.Product)
		return m, nil

	case productform.CreatedMsg:
		m.currentView = ViewProducts
		method := m.addMethod
		if method == "" {
			method = "manual"
		}
		return m, m.addProduct(msg.Input, method)

	case productform.UpdatedMsg:
		m.currentView = ViewProducts
		return m, m.updateProduct(msg.ProductID, msg.Patch)

	case productform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case productAddedMsg:
		if msg.err != nil {
			m.errorBanner = msg.err.Error()
			return m, m.syncFromStores()
		}
		m.errorBanner = ""
		m.notifications.NotifyProductAdded(msg.name, msg.method)
		return m, m.syncFromStores()

	case productUpdatedMsg:
		if msg.err != nil {
			m.errorBanner = msg.err.Error()
			return m, m.syncFromStores()
		}
		m.errorBanner = ""
		m.notifications.NotifyProductUpdated(msg.name)
		return m, m.syncFromStores()

	case productDeletedMsg:
		if msg.err != nil {
			m.errorBanner = msg.err.Error()
		} else {
			m.errorBanner = ""
		}
		return m, m.syncFromStores()

	case importcsv.ImportRequestedMsg:
		return m, m.runImport(msg.Rows)

	case importcsv.CancelMsg:
		m.currentView = ViewProducts
		return m, m.syncFromStores()

	case csvImportedMsg:
		m.csvView.SetResult(msg.result)
		if msg.result.Successful > 0 {
			m.notifications.NotifyBulkProductsImported(msg.result.Successful)
		}
		return m, m.syncFromStores()

	case importurl.ExtractedMsg:
		m.addMethod = "url"
		m.currentView = ViewProductForm
		input := msg.Input
		return m, m.formView.StartCreate(&input)

	case importurl.CancelMsg:
		m.currentView = ViewProducts
		return m, nil

	case notifications.MarkReadMsg:
		m.notifications.MarkAsRead(msg.ID)
		return m, m.syncFromStores()

	case notifications.MarkAllReadMsg:
		m.notifications.MarkAllAsRead()
		return m, m.syncFromStores()

	case notifications.DeleteMsg:
		m.notifications.DeleteNotification(msg.ID)
		return m, m.syncFromStores()

	case notifications.ClearAllMsg:
		m.notifications.ClearAll()
		return m, m.syncFromStores()

	case notifications.SimulateMsg:
		m.notifications.Simulate()
		return m, m.syncFromStores()

	case settings.SavedMsg:
		m.notifications.UpdateSettings(msg.Patch)
		m.currentView = ViewNotifications
		return m, m.syncFromStores()

	case settings.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case generator.CampaignApprovedMsg:
		m.products.SetGenerationProgress(nil)
		m.notifications.NotifyCampaignStatusChange(
			msg.Campaign.Name, msg.Campaign.Status,
		)
		m.currentView = ViewProducts
		return m, m.syncFromStores()

	case generator.CancelMsg:
		m.products.SetGenerationProgress(nil)
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		if handled, next, cmd := m.handleGlobalKeys(msg); handled {
			return next, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// browseView reports whether the current view is a read-only surface
// where single-letter shortcuts are safe to intercept.
func (m Model) browseView() bool {
	switch m.currentView {
	case ViewDashboard, ViewProducts, ViewTrends, ViewNotifications, ViewHelp:
		return true
	}
	return false
}

// handleGlobalKeys processes keys that work across views. The boolean
// reports whether the key was consumed.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	// ctrl+c always quits, even with a form focused.
	if msg.String() == "ctrl+c" {
		m.refresher.Stop()
		return true, m, tea.Quit
	}

	if !m.browseView() {
		return false, m, nil
	}

	// The products view owns its own single-letter keys while searching.
	if m.currentView == ViewProducts && m.productsView.Searching() {
		return false, m, nil
	}

	switch msg.String() {
	case "q":
		m.refresher.Stop()
		return true, m, tea.Quit

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case "1":
		m.currentView = ViewDashboard
		return true, m, m.syncFromStores()

	case "2":
		m.currentView = ViewProducts
		return true, m, m.syncFromStores()

	case "3":
		m.currentView = ViewTrends
		return true, m, m.syncFromStores()

	case "4":
		m.currentView = ViewNotifications
		return true, m, m.syncFromStores()

	case "5":
		m.previousView = m.currentView
		m.currentView = ViewSettings
		return true, m, m.settingsView.Start(m.notifications.Settings())

	case "r":
		return true, m, m.refresher.Refresh()

	case "a":
		m.previousView = m.currentView
		m.currentView = ViewProductForm
		m.addMethod = "manual"
		return true, m, m.formView.StartCreate(nil)

	case "i":
		m.previousView = m.currentView
		m.currentView = ViewImportCSV
		m.addMethod = "csv"
		return true, m, m.csvView.Start()

	case "u":
		m.previousView = m.currentView
		m.currentView = ViewImportURL
		m.addMethod = "url"
		return true, m, m.urlView.Start()
	}

	return false, m, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewDashboard:
		m.dashboardView, cmd = m.dashboardView.Update(msg)
	case ViewProducts:
		m.productsView, cmd = m.productsView.Update(msg)
	case ViewTrends:
		m.trendsView, cmd = m.trendsView.Update(msg)
	case ViewNotifications:
		m.notifsView, cmd = m.notifsView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewProductForm:
		m.formView, cmd = m.formView.Update(msg)
	case ViewImportCSV:
		m.csvView, cmd = m.csvView.Update(msg)
	case ViewImportURL:
		m.urlView, cmd = m.urlView.Update(msg)
	case ViewGenerator:
		m.generatorView, cmd = m.generatorView.Update(msg)
		// Mirror pipeline progress into the store so other surfaces
		// can show the generation state.
		if p := m.generatorView.Progress(); p.TotalSteps > 0 {
			progress := p
			m.products.SetGenerationProgress(&progress)
		}
	}

	return m, cmd
}

// syncFromStores refreshes every read-only view from the stores.
func (m *Model) syncFromStores() tea.Cmd {
	catalog := m.products.Products()
	feed := m.notifications.Notifications()
	unread := m.notifications.UnreadCount()

	m.dashboardView.SetProducts(catalog, m.products.IsLoading())
	m.dashboardView.SetActivity(feed, unread)
	m.notifsView.SetNotifications(feed, unread)

	signals := trends.ForProducts(catalog)
	if len(signals) == 0 {
		signals = trends.All()
	}
	m.trendsView.SetTrends(signals)

	return m.productsView.SetProducts(catalog)
}

// addProduct creates the product through the store off the UI goroutine.
func (m Model) addProduct(input model.ProductInput, method string) tea.Cmd {
	ps := m.products
	return func() tea.Msg {
		created, err := ps.AddProduct(context.Background(), input)
		return productAddedMsg{name: created.Name, method: method, err: err}
	}
}

// updateProduct applies the patch through the store.
func (m Model) updateProduct(id string, patch model.ProductPatch) tea.Cmd {
	ps := m.products
	return func() tea.Msg {
		updated, err := ps.UpdateProduct(context.Background(), id, patch)
		return productUpdatedMsg{name: updated.Name, err: err}
	}
}

// deleteProduct removes the product through the store.
func (m Model) deleteProduct(id string) tea.Cmd {
	ps := m.products
	return func() tea.Msg {
		err := ps.DeleteProduct(context.Background(), id)
		return productDeletedMsg{err: err}
	}
}

// runImport executes the batch import off the UI goroutine.
func (m Model) runImport(rows []csvimport.Row) tea.Cmd {
	ps := m.products
	return func() tea.Msg {
		result := csvimport.Import(context.Background(), ps, rows)
		return csvImportedMsg{result: result}
	}
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	headerTitle := "Trendboard"
	if unread := m.notifications.UnreadCount(); unread > 0 {
		headerTitle = fmt.Sprintf("Trendboard [%d unread]", unread)
	}
	header := m.layout.RenderHeader(headerTitle, m.refreshStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewProducts:
		return m.productsView.View()
	case ViewTrends:
		return m.trendsView.View()
	case ViewNotifications:
		return m.notifsView.View()
	case ViewSettings:
		return m.settingsView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewProductForm:
		return m.formView.View()
	case ViewImportCSV:
		return m.csvView.View()
	case ViewImportURL:
		return m.urlView.View()
	case ViewGenerator:
		return m.generatorView.View()
	default:
		return ""
	}
}

// refreshStatus returns a short string describing the catalog state.
func (m Model) refreshStatus() string {
	if m.products.IsLoading() {
		return "refreshing"
	}
	if m.errorBanner != "" {
		return "offline — showing cached data"
	}
	return "idle"
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.errorBanner != "" && m.browseView() {
		return m.errorBanner
	}

	switch m.currentView {
	case ViewProducts:
		return "a add | e edit | x delete | g campaign | i csv | u url | / search | ? help"
	case ViewTrends:
		return "j/k navigate | 1-5 views | ? help"
	case ViewNotifications:
		return "enter read | m mark all | X clear | S simulate | 5 settings"
	case ViewSettings, ViewProductForm:
		return "enter submit | esc cancel"
	case ViewImportCSV, ViewImportURL:
		return "enter confirm | esc cancel"
	case ViewGenerator:
		return "space toggle | enter confirm | r regenerate | esc cancel"
	case ViewHelp:
		return "? close help"
	default:
		return "q quit | ? help | 1-5 views | r refresh | a add product"
	}
}
